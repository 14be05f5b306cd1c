package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSamplePromoCodes writes a gzipped CSV import file for local runs.
// Load it at start-up with PROMO_IMPORT_FILE=data/promo-codes/sample.csv.gz.
// Amounts are in kopiyky.
func main() {
	dataDir := "data/promo-codes"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := [][]string{
		{"code", "discount_type", "discount_value", "min_order_amount", "max_uses"},
		{"WELCOME10", "percentage", "10", "0", "0"},      // unlimited 10% off
		{"SPRING15", "percentage", "15", "1500000", "0"}, // from 15 000.00
		{"MINUS500", "fixed", "50000", "1000000", "100"}, // 500.00 off, 100 uses
		{"VIP25", "percentage", "25", "0", "1"},          // single use
	}

	filePath := filepath.Join(dataDir, "sample.csv.gz")
	if err := writePromoFile(filePath, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d promo codes\n", filePath, len(rows)-1)
}

func writePromoFile(filePath string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	w := csv.NewWriter(gzipWriter)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write promo codes: %w", err)
	}

	return nil
}
