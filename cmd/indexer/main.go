package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/adapters/database"
	"github.com/knowhealth/backend/internal/adapters/search"
	"github.com/knowhealth/backend/internal/domain/repositories"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	"github.com/knowhealth/backend/internal/infrastructure/clients/typesense"
	"github.com/knowhealth/backend/internal/infrastructure/observability"
	"github.com/knowhealth/backend/pkg/config"
)

const indexBatchSize = 1000

// The indexer backfills the search collection from the database. Run it
// once after restoring a database, or on an interval as a safety net for
// index writes the API dropped while the search engine was down.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing directory collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("knowhealth-indexer", os.Getenv("APP_ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		parsed, err := time.ParseDuration(intervalValue)
		if err != nil || parsed <= 0 {
			log.Fatal().Str("interval", intervalValue).Msg("invalid reindex interval")
		}
		interval = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("interval", interval).Msg("reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			log.Info().Msg("indexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	if pgClient == nil {
		log.Warn().Msg("no database configured, nothing to index")
		return nil
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.DirectoryCollection).Msg("deleting collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.DirectoryCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)
	providerRepo := database.NewProviderAdapter(pgClient)
	facilityRepo := database.NewFacilityAdapter(pgClient)

	indexed := 0

	for offset := 0; ; offset += indexBatchSize {
		providers, err := providerRepo.List(ctx, repositories.ProviderFilter{Limit: indexBatchSize, Offset: offset})
		if err != nil {
			return err
		}
		for _, p := range providers {
			if p == nil {
				continue
			}
			if err := searchRepo.IndexProvider(ctx, p); err != nil {
				log.Warn().Err(err).Str("provider_id", p.ID).Msg("failed to index provider")
				continue
			}
			indexed++
		}
		if len(providers) < indexBatchSize {
			break
		}
	}

	for offset := 0; ; offset += indexBatchSize {
		facilities, err := facilityRepo.List(ctx, repositories.FacilityFilter{Limit: indexBatchSize, Offset: offset})
		if err != nil {
			return err
		}
		for _, f := range facilities {
			if f == nil {
				continue
			}
			if err := searchRepo.IndexFacility(ctx, f); err != nil {
				log.Warn().Err(err).Str("facility_id", f.ID).Msg("failed to index facility")
				continue
			}
			indexed++
		}
		if len(facilities) < indexBatchSize {
			break
		}
	}

	log.Info().Int("documents", indexed).Msg("directory reindex finished")
	return nil
}
