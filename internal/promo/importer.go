package promo

import (
	"context"
	"fmt"

	"mattress-shop/internal/repository"

	"github.com/rs/zerolog"
)

// ImportResult summarises a bulk import run.
type ImportResult struct {
	Loaded   int
	Upserted int
	Failed   int
}

// Import loads promo codes from path and upserts each into the repository.
// Rows that fail to upsert are logged and counted; the run continues.
func Import(ctx context.Context, loader Loader, path string, repo repository.PromoCodeRepository, logger zerolog.Logger) (ImportResult, error) {
	logger = logger.With().Str("component", "promo-import").Logger()

	codes, err := loader.Load(ctx, path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load promo codes: %w", err)
	}

	result := ImportResult{Loaded: len(codes)}
	for i := range codes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := repo.Upsert(ctx, &codes[i]); err != nil {
			logger.Warn().Err(err).Str("code", codes[i].Code).Msg("failed to import promo code")
			result.Failed++
			continue
		}
		result.Upserted++
	}

	logger.Info().
		Str("path", path).
		Int("loaded", result.Loaded).
		Int("upserted", result.Upserted).
		Int("failed", result.Failed).
		Msg("promo code import finished")

	return result, nil
}
