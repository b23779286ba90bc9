// Package synthetic writes sample store sheets for local viewing and tests.
package synthetic

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Header is the full column set the flyer pipeline writes. The viewer only reads
// some of these; the rest are carried so sample sheets look like real ones.
var Header = []string{
	"brand_name",
	"product_name",
	"product_variety",
	"description",
	"required_purchase_quantity",
	"required_purchase_price",
	"price",
	"sale_price",
	"sale_amount_off",
	"sale_percent_off",
	"quantity_at_sale_price",
	"quantity_at_amount_off",
	"quantity_get_free",
	"quantity_at_percent_off",
	"deal_type",
	"valid_from",
	"valid_to",
	"requires_store_card",
}

var (
	brands    = []string{"ACME", "tide", "General Mills", "N/A", "N/A", "kellogg's", ""}
	products  = []string{"widget deluxe", "Laundry Pods", "CHEERIOS", "bananas", "Paper Towels", "greek yogurt"}
	varieties = []string{"", "Select varieties", "Family size", "12 oz"}
	deals     = []string{"", "BOGO", "Buy 2 get $1 off", "Digital coupon"}
)

// SheetPaths returns where the base and matchups sheets for store are written under dir.
func SheetPaths(dir, store string) (base, matchups string) {
	storesDir := filepath.Join(dir, "stores")
	return filepath.Join(storesDir, store+".csv"), filepath.Join(storesDir, store+"-matchups.csv")
}

// GenerateSyntheticData writes a base sheet with rows offers and a matchups sheet
// with a third as many for store under dir/stores.
func GenerateSyntheticData(rows int, dir, store string) error {
	basePath, matchupsPath := SheetPaths(dir, store)
	if err := os.MkdirAll(filepath.Dir(basePath), 0o750); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", filepath.Dir(basePath), err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := writeSheet(basePath, rows, rng); err != nil {
		return err
	}
	return writeSheet(matchupsPath, (rows+2)/3, rng)
}

func writeSheet(filePath string, rows int, rng *rand.Rand) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	validFrom := time.Now().Truncate(24 * time.Hour)
	for i := 0; i < rows; i++ {
		if err := writer.Write(randomOffer(rng, validFrom)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush '%s': %w", filePath, err)
	}
	return nil
}

func randomOffer(rng *rand.Rand, validFrom time.Time) []string {
	offer := make(map[string]string, len(Header))
	offer["brand_name"] = pick(rng, brands)
	offer["product_name"] = pick(rng, products)
	offer["product_variety"] = pick(rng, varieties)
	offer["deal_type"] = pick(rng, deals)
	if rng.Intn(2) == 0 {
		offer["description"] = fmt.Sprintf("Save on %s", offer["product_name"])
	}
	if rng.Intn(4) != 0 {
		offer["price"] = fmt.Sprintf("%.2f", 0.5+rng.Float64()*20)
	}
	offer["valid_from"] = validFrom.Format("01/02/2006")
	offer["valid_to"] = validFrom.AddDate(0, 0, 6).Format("01/02/2006")
	offer["requires_store_card"] = strconv.Itoa(rng.Intn(2))

	record := make([]string, len(Header))
	for i, col := range Header {
		record[i] = offer[col]
	}
	return record
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
