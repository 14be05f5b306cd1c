package promo

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// csvColumns is the column layout of a promo code import file. A header row
// with these names is optional.
var csvColumns = []string{"code", "discount_type", "discount_value", "min_order_amount", "max_uses"}

// fileLoader implements Loader for reading gzipped CSV files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based promo code loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a gzipped CSV file and returns the promo codes it contains.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.PromoCode, error) {
	l.logger.Info().Str("file", filePath).Msg("loading promo code file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open promo code file")
		return nil, fmt.Errorf("failed to open promo code file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	codes, err := parseCSV(ctx, gzipReader, time.Now())
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading promo code file")
		return nil, fmt.Errorf("error reading promo code file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", len(codes)).
		Msg("promo code file loaded successfully")

	return codes, nil
}

// parseCSV decodes promo code rows. Blank lines are skipped, codes are
// trimmed and upper-cased, and a later row for the same code replaces an
// earlier one.
func parseCSV(ctx context.Context, r io.Reader, now time.Time) ([]model.PromoCode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)
	reader.TrimLeadingSpace = true

	codes := []model.PromoCode{}
	index := map[string]int{}

	for line := 1; ; line++ {
		if line%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), csvColumns[0]) {
			continue
		}

		p, err := parseRecord(record, now)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if i, ok := index[p.Code]; ok {
			codes[i] = p
			continue
		}
		index[p.Code] = len(codes)
		codes = append(codes, p)
	}

	return codes, nil
}

func parseRecord(record []string, now time.Time) (model.PromoCode, error) {
	code := strings.ToUpper(strings.TrimSpace(record[0]))
	if code == "" {
		return model.PromoCode{}, errors.New("code is empty")
	}

	discountType := model.DiscountType(strings.ToLower(strings.TrimSpace(record[1])))
	if !discountType.Valid() {
		return model.PromoCode{}, fmt.Errorf("unknown discount type %q", record[1])
	}

	nums := make([]int64, 3)
	for i, raw := range record[2:] {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n < 0 {
			return model.PromoCode{}, fmt.Errorf("invalid %s %q", csvColumns[i+2], raw)
		}
		nums[i] = n
	}

	p := model.PromoCode{
		ID:             uuid.New(),
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  nums[0],
		MinOrderAmount: nums[1],
		MaxUses:        int(nums[2]),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := p.ValidateTerms(); err != nil {
		return model.PromoCode{}, err
	}

	return p, nil
}
