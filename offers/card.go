// Package offers turns parsed offer rows into display cards.
package offers

import (
	"fmt"
	"io"
	"strings"

	"couponview/csv"
)

// Recognized sheet columns. Any other column is ignored.
const (
	ColumnBrandName         = "brand_name"
	ColumnProductName       = "product_name"
	ColumnDescription       = "description"
	ColumnProductVariety    = "product_variety"
	ColumnPrice             = "price"
	ColumnValidFrom         = "valid_from"
	ColumnValidTo           = "valid_to"
	ColumnRequiresStoreCard = "requires_store_card"
)

const (
	// BrandNotApplicable is the placeholder brand meaning "no brand", not a missing value.
	BrandNotApplicable = "N/A"
	// DefaultHeader is shown when neither brand nor product name is usable.
	DefaultHeader = "Product Offer"
	// MatchupTag marks cards that come from a matchups sheet.
	MatchupTag = "Matchup"
	// StoreCardNotice is shown on offers that need a store loyalty card.
	StoreCardNotice = "Requires Store Card"

	noneHeader = "None"
)

// Offer is one sheet row with every recognized column held as an optional value.
type Offer struct {
	BrandName         csv.Value
	ProductName       csv.Value
	Description       csv.Value
	ProductVariety    csv.Value
	Price             csv.Value
	ValidFrom         csv.Value
	ValidTo           csv.Value
	RequiresStoreCard csv.Value
}

// OfferFromRow picks the recognized columns out of a parsed row.
func OfferFromRow(row csv.Row) Offer {
	return Offer{
		BrandName:         row.Get(ColumnBrandName),
		ProductName:       row.Get(ColumnProductName),
		Description:       row.Get(ColumnDescription),
		ProductVariety:    row.Get(ColumnProductVariety),
		Price:             row.Get(ColumnPrice),
		ValidFrom:         row.Get(ColumnValidFrom),
		ValidTo:           row.Get(ColumnValidTo),
		RequiresStoreCard: row.Get(ColumnRequiresStoreCard),
	}
}

// hasBrand reports whether the brand column holds a real brand.
func (o Offer) hasBrand() bool {
	return o.BrandName.Truthy() && !o.BrandName.IsString(BrandNotApplicable)
}

// Card is the display unit for one offer. Empty strings are omitted segments.
type Card struct {
	IsMatchup    bool   `json:"isMatchup"`
	Header       string `json:"header"`
	SubProduct   string `json:"subProduct,omitempty"`
	Description  string `json:"description,omitempty"`
	Variety      string `json:"variety,omitempty"`
	Price        string `json:"price,omitempty"`
	ValidFrom    string `json:"validFrom"`
	ValidTo      string `json:"validTo"`
	RequiresCard bool   `json:"requiresCard"`
}

// ShowSubProduct reports whether the subtitle adds anything over the header.
func (c Card) ShowSubProduct() bool {
	return c.SubProduct != "" && c.SubProduct != c.Header
}

// PriceText returns the price with its currency symbol, or "" when there is no price.
func (c Card) PriceText() string {
	if c.Price == "" {
		return ""
	}
	return "$" + c.Price
}

// Validity returns the always-shown validity range.
func (c Card) Validity() string {
	return fmt.Sprintf("%s to %s", c.ValidFrom, c.ValidTo)
}

// WriteText writes the card as a plain-text block, one line per shown segment.
func (c Card) WriteText(w io.Writer) error {
	var b strings.Builder
	if c.IsMatchup {
		fmt.Fprintf(&b, "[%s]\n", MatchupTag)
	}
	fmt.Fprintln(&b, c.Header)
	if c.ShowSubProduct() {
		fmt.Fprintf(&b, "  %s\n", c.SubProduct)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	if c.Variety != "" {
		fmt.Fprintf(&b, "Variety: %s\n", c.Variety)
	}
	if c.Price != "" {
		fmt.Fprintf(&b, "Price/Savings: %s\n", c.PriceText())
	}
	fmt.Fprintf(&b, "Valid: %s\n", c.Validity())
	if c.RequiresCard {
		fmt.Fprintln(&b, StoreCardNotice)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write card: %w", err)
	}
	return nil
}
