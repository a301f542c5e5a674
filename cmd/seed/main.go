// Package main implements the story seeding tool. It loads the
// authored postcards into the store; re-running it is safe because the
// repository refuses to overwrite an existing slug.
package main

import (
	"context"
	"errors"
	"log"

	"postcards/domain/core/entities"
	"postcards/domain/narrative"
	"postcards/infrastructure/config"
	"postcards/infrastructure/di"
	pkgerrors "postcards/pkg/errors"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	var seeded, skipped int
	for _, card := range narrative.SeedCards {
		postcard, err := entities.NewSeedPostcard(card)
		if err != nil {
			logger.Fatal("Invalid seed card",
				zap.String("slugId", card.SlugID),
				zap.Error(err),
			)
		}

		if err := container.PostcardRepo.Save(ctx, postcard); err != nil {
			if errors.Is(err, pkgerrors.ErrSlugTaken) {
				skipped++
				logger.Debug("Seed card already present", zap.String("slugId", card.SlugID))
				continue
			}
			logger.Fatal("Failed to seed card",
				zap.String("slugId", card.SlugID),
				zap.Error(err),
			)
		}
		seeded++
	}

	logger.Info("Seeding complete",
		zap.Int("seeded", seeded),
		zap.Int("skipped", skipped),
		zap.Int("total", len(narrative.SeedCards)),
	)
}
