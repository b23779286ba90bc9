package offers

import (
	"couponview/csv"
	"couponview/textutil"
)

// NewCard applies the card rules to a single offer.
func NewCard(o Offer, isMatchup bool) Card {
	header := DefaultHeader
	candidate := o.ProductName
	if o.hasBrand() {
		candidate = o.BrandName
	}
	if candidate.Truthy() {
		header = textutil.TitleWords(candidate.Text())
	}

	var product string
	if o.hasBrand() && o.ProductName.Truthy() {
		product = o.ProductName.Text()
	}

	// A column that literally says "None" is not a name.
	if header == noneHeader {
		header = product
	}

	card := Card{
		IsMatchup:    isMatchup,
		Header:       header,
		SubProduct:   product,
		ValidFrom:    o.ValidFrom.Text(),
		ValidTo:      o.ValidTo.Text(),
		RequiresCard: o.RequiresStoreCard.IsNumber(1),
	}
	if o.Description.Truthy() {
		card.Description = o.Description.Text()
	}
	if o.ProductVariety.Truthy() {
		card.Variety = o.ProductVariety.Text()
	}
	if o.Price.Truthy() {
		card.Price = o.Price.Text()
	}

	return card
}

// Render appends one card per row to dst, in row order, and returns the extended slice.
func Render(dst []Card, rows []csv.Row, isMatchup bool) []Card {
	for _, row := range rows {
		dst = append(dst, NewCard(OfferFromRow(row), isMatchup))
	}
	return dst
}
