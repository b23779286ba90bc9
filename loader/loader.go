// Package loader turns a store identifier into a rendered view of its offer cards.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"couponview/appcontext"
	"couponview/csv"
	"couponview/offers"
	"couponview/sheets"
	"couponview/textutil"
)

const (
	sheetPrefix    = "stores/"
	sheetExt       = ".csv"
	matchupsSuffix = "-matchups"
)

var errInvalidStore = errors.New("invalid store identifier")

// InvalidStoreError is returned for identifiers that cannot name a sheet.
func InvalidStoreError(store string) error {
	return fmt.Errorf("%w, %q", errInvalidStore, store)
}

// MatchupsPosition fixes where matchup cards go relative to the base sheet's cards.
type MatchupsPosition string

const (
	// MatchupsFirst renders matchup cards before the base sheet's cards.
	MatchupsFirst MatchupsPosition = "first"
	// MatchupsLast renders matchup cards after the base sheet's cards.
	MatchupsLast MatchupsPosition = "last"
)

// ParseMatchupsPosition returns the position named by s and whether it is known.
func ParseMatchupsPosition(s string) (MatchupsPosition, bool) {
	switch pos := MatchupsPosition(strings.ToLower(strings.TrimSpace(s))); pos {
	case MatchupsFirst, MatchupsLast:
		return pos, true
	default:
		return "", false
	}
}

// SheetPaths returns the base and matchups resource names for a store.
func SheetPaths(store string) (base, matchups string) {
	id := strings.ToLower(store)
	return sheetPrefix + id + sheetExt, sheetPrefix + id + matchupsSuffix + sheetExt
}

// ValidateStore rejects identifiers that are empty or could address another path.
func ValidateStore(store string) error {
	if strings.TrimSpace(store) == "" || strings.ContainsAny(store, `/\`) || strings.Contains(store, "..") {
		return InvalidStoreError(store)
	}
	return nil
}

// View is everything the display needs for one store: the title label and either
// the cards or a single error notice.
type View struct {
	Store string        `json:"store"`
	Label string        `json:"label"`
	Cards []offers.Card `json:"cards"`
	Error string        `json:"error,omitempty"`

	err error
}

// Failed reports whether the base sheet could not be loaded.
func (v *View) Failed() bool {
	return v.err != nil
}

// Err returns the base sheet failure, if any.
func (v *View) Err() error {
	return v.err
}

// ErrorNotice formats the message shown in place of the cards.
func ErrorNotice(err error) string {
	return "Error loading sheet: " + err.Error()
}

// Options configures a Loader.
type Options struct {
	Matchups   MatchupsPosition
	LabelStyle textutil.LabelStyle
}

// Loader fetches, parses and renders a store's sheets.
type Loader struct {
	source sheets.Source
	parser csv.Parser
	opts   Options
}

// New creates a new Loader. Zero options fall back to matchups first and spaced labels.
func New(source sheets.Source, parser csv.Parser, opts Options) *Loader {
	if opts.Matchups == "" {
		opts.Matchups = MatchupsFirst
	}
	if opts.LabelStyle == "" {
		opts.LabelStyle = textutil.LabelSpaced
	}
	return &Loader{source: source, parser: parser, opts: opts}
}

// Load builds the view for store. Both sheets are fetched concurrently into their
// own buffers and joined in the configured order, so the card order never depends
// on which fetch finishes first. A missing or broken matchups sheet is only logged;
// a base sheet failure replaces all cards with the error notice.
func (l *Loader) Load(ctx context.Context, store string) *View {
	ctx = appcontext.WithStore(ctx, store)
	logger := appcontext.LoggerFromContext(ctx)

	view := &View{
		Store: store,
		Label: textutil.StoreLabel(store, l.opts.LabelStyle),
	}
	stats := NewStats()

	if err := ValidateStore(store); err != nil {
		logger.WarnContext(ctx, "Rejected store identifier", "error", err)
		view.err = err
		view.Error = ErrorNotice(err)
		return view
	}

	basePath, matchupsPath := SheetPaths(store)
	var baseCards, matchupCards []offers.Card

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cards, err := l.loadSheet(gctx, matchupsPath, true)
		if err != nil {
			stats.AddFailure(matchupsPath, err.Error())
			if errors.Is(err, sheets.ErrNotFound) {
				logger.InfoContext(ctx, "No matchups sheet found", "sheet", matchupsPath)
			} else {
				logger.WarnContext(ctx, "Skipping matchups sheet", "sheet", matchupsPath, "error", err)
			}
			return nil
		}
		stats.AddLoaded(len(cards), true)
		matchupCards = cards
		return nil
	})
	g.Go(func() error {
		cards, err := l.loadSheet(gctx, basePath, false)
		if err != nil {
			stats.AddFailure(basePath, err.Error())
			return err
		}
		stats.AddLoaded(len(cards), false)
		baseCards = cards
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Failed to load store sheet", "sheet", basePath, "error", err)
		view.err = err
		view.Error = ErrorNotice(err)
		stats.Log(ctx, logger)
		return view
	}

	view.Cards = make([]offers.Card, 0, len(baseCards)+len(matchupCards))
	if l.opts.Matchups == MatchupsLast {
		view.Cards = append(append(view.Cards, baseCards...), matchupCards...)
	} else {
		view.Cards = append(append(view.Cards, matchupCards...), baseCards...)
	}

	stats.Log(ctx, logger)
	return view
}

func (l *Loader) loadSheet(ctx context.Context, name string, isMatchup bool) ([]offers.Card, error) {
	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}

	rows, err := l.parser.Parse(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return offers.Render(make([]offers.Card, 0, len(rows)), rows, isMatchup), nil
}
