// Package textutil holds the display-independent string formatting used for cards and labels.
package textutil

import (
	"strings"
	"unicode"
)

// LabelStyle selects how a store identifier is turned into a title.
type LabelStyle string

const (
	// LabelSpaced splits camel case and word starts with spaces: "foodCity" -> "Food City".
	LabelSpaced LabelStyle = "spaced"
	// LabelTitle title-cases words separated by whitespace, '-' or '_': "food-city" -> "Food City".
	LabelTitle LabelStyle = "title"
)

// ParseLabelStyle returns the style named by s and whether it is known.
func ParseLabelStyle(s string) (LabelStyle, bool) {
	switch style := LabelStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case LabelSpaced, LabelTitle:
		return style, true
	default:
		return "", false
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// TitleWords upper-cases the first rune and lower-cases the rest of every token
// that starts at a word character and runs to the next whitespace.
// Leading punctuation is left untouched: "(ACME)" -> "(Acme)", "coca-cola" -> "Coca-cola".
func TitleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inToken := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			inToken = false
			b.WriteRune(r)
		case inToken:
			b.WriteRune(unicode.ToLower(r))
		case isWordRune(r):
			inToken = true
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// StoreLabel formats a store identifier for the title region.
func StoreLabel(id string, style LabelStyle) string {
	if style == LabelTitle {
		return TitleWords(strings.Join(strings.FieldsFunc(id, func(r rune) bool {
			return r == '-' || r == '_' || unicode.IsSpace(r)
		}), " "))
	}

	return spacedLabel(id)
}

func spacedLabel(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 4)

	prevWord := false
	for i, r := range id {
		word := isWordRune(r)
		switch {
		case i == 0 && word:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r), word && !prevWord:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		prevWord = word
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
