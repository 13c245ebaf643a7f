package config

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"anchor/internal/promotion"
)

// WatchCatalog reloads the promotions catalog when its file changes and calls
// onUpdate with the latest version. It performs an initial load before
// entering the watch loop, so callers always start with a catalog.
func WatchCatalog(ctx context.Context, path string, interval time.Duration, logger *zerolog.Logger, onUpdate func(*promotion.Catalog)) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	catalog, err := promotion.Load(path, logger)
	if err != nil {
		return err
	}
	if onUpdate != nil {
		onUpdate(catalog)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	lastMod := info.ModTime()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil {
					continue // transient errors
				}
				if !info.ModTime().After(lastMod) {
					continue
				}
				catalog, err := promotion.Load(path, logger)
				if err != nil {
					logger.Error().Err(err).Msg("promotions catalog reload failed")
					continue
				}
				lastMod = info.ModTime()
				logger.Info().
					Int("promotions", len(catalog.Promotions)).
					Int("invalid", len(catalog.Invalid)).
					Msg("promotions catalog reloaded")
				if onUpdate != nil {
					onUpdate(catalog)
				}
			}
		}
	}()

	return nil
}
