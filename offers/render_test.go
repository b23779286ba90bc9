package offers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"couponview/csv"
	"couponview/offers"
)

func row(cells map[string]string) csv.Row {
	r := make(csv.Row, len(cells))
	for k, v := range cells {
		r[k] = csv.Infer(v)
	}
	return r
}

func TestNewCard_BrandAndProduct(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "ACME",
		"product_name": "Widget",
	})), false)

	assert.Equal(t, "Acme", card.Header)
	assert.Equal(t, "Widget", card.SubProduct)
	assert.True(t, card.ShowSubProduct())
}

func TestNewCard_BrandNotApplicable(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "N/A",
		"product_name": "widget deluxe",
	})), false)

	assert.Equal(t, "Widget Deluxe", card.Header)
	assert.Empty(t, card.SubProduct)
	assert.False(t, card.ShowSubProduct())
}

func TestNewCard_BrandAbsent(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"product_name": "PAPER towels",
	})), false)

	assert.Equal(t, "Paper Towels", card.Header)
	assert.Empty(t, card.SubProduct)
}

func TestNewCard_SubProductMatchingHeaderHidden(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "Tide",
		"product_name": "Tide",
	})), false)

	assert.Equal(t, "Tide", card.Header)
	assert.Equal(t, "Tide", card.SubProduct)
	assert.False(t, card.ShowSubProduct())
}

func TestNewCard_NoneHeaderReplacedByProduct(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "None",
		"product_name": "Greek Yogurt",
	})), false)

	assert.Equal(t, "Greek Yogurt", card.Header)
	assert.False(t, card.ShowSubProduct())
}

func TestNewCard_NoneHeaderWithoutBrand(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "N/A",
		"product_name": "none",
	})), false)

	assert.Empty(t, card.Header)
	assert.False(t, card.ShowSubProduct())
}

func TestNewCard_EmptyRow(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(csv.Row{}), false)

	assert.Equal(t, offers.Card{Header: offers.DefaultHeader}, card)
	assert.Equal(t, " to ", card.Validity())
}

func TestNewCard_OptionalSegments(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":      "ACME",
		"description":     "Buy one get one",
		"product_variety": "Select varieties",
		"price":           "2.50",
		"valid_from":      "01/01/2025",
		"valid_to":        "01/07/2025",
	})), false)

	assert.Equal(t, "Buy one get one", card.Description)
	assert.Equal(t, "Select varieties", card.Variety)
	assert.Equal(t, "2.5", card.Price)
	assert.Equal(t, "$2.5", card.PriceText())
	assert.Equal(t, "01/01/2025 to 01/07/2025", card.Validity())
}

func TestNewCard_ZeroPriceOmitted(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{"price": "0"})), false)

	assert.Empty(t, card.Price)
	assert.Empty(t, card.PriceText())
}

func TestNewCard_RequiresStoreCard(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"1.0", true},
		{"0", false},
		{"", false},
		{"true", false},
		{"yes", false},
		{"2", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
				"requires_store_card": tt.value,
			})), false)
			assert.Equal(t, tt.want, card.RequiresCard)
		})
	}
}

func TestNewCard_NumericBrand(t *testing.T) {
	card := offers.NewCard(offers.OfferFromRow(row(map[string]string{
		"brand_name":   "7",
		"product_name": "Up",
	})), false)

	assert.Equal(t, "7", card.Header)
	assert.Equal(t, "Up", card.SubProduct)
}

func TestRender_PreservesOrderAndCount(t *testing.T) {
	content := `brand_name,product_name,valid_from,valid_to
ACME,Widget,01/01,01/07
N/A,soap,01/02,01/08
,,,
Tide,Pods,01/03,01/09
`
	rows, err := csv.NewParser().Parse(context.Background(), "stores/test.csv", []byte(content))
	require.NoError(t, err)

	cards := offers.Render(nil, rows, true)
	require.Len(t, cards, len(rows))

	headers := make([]string, 0, len(cards))
	for _, c := range cards {
		assert.True(t, c.IsMatchup)
		headers = append(headers, c.Header)
	}
	assert.Equal(t, []string{"Acme", "Soap", offers.DefaultHeader, "Tide"}, headers)
}

func TestRender_AppendsToExisting(t *testing.T) {
	existing := []offers.Card{{Header: "First"}}
	cards := offers.Render(existing, []csv.Row{row(map[string]string{"product_name": "second"})}, false)

	require.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Header)
	assert.Equal(t, "Second", cards[1].Header)
}

func TestCard_WriteText(t *testing.T) {
	card := offers.Card{
		IsMatchup:    true,
		Header:       "Acme",
		SubProduct:   "Widget",
		Price:        "1.99",
		ValidFrom:    "01/01",
		ValidTo:      "01/07",
		RequiresCard: true,
	}

	var b strings.Builder
	require.NoError(t, card.WriteText(&b))

	want := "[Matchup]\nAcme\n  Widget\nPrice/Savings: $1.99\nValid: 01/01 to 01/07\nRequires Store Card\n"
	assert.Equal(t, want, b.String())
}
