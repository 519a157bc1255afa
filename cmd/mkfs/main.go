// Command mkfs formats a fresh OSPFS image and writes it to a file, or
// to a configured snapshot store.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/marmos91/ospfs/internal/config"
	"github.com/marmos91/ospfs/internal/logger"
	"github.com/marmos91/ospfs/internal/ospfs"
	"github.com/marmos91/ospfs/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search XDG config dir)")
	out := flag.String("out", "", "Path to write the formatted image file (overrides snapshot.type)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.Logging.Level)

	logger.Info("Formatting image: %d blocks, %d inodes", cfg.Image.NBlocks, cfg.Image.NInodes)

	img, err := ospfs.NewImage(cfg.Image.NBlocks, cfg.Image.NInodes)
	if err != nil {
		log.Fatalf("Failed to format image: %v", err)
	}

	if *out != "" {
		if err := os.WriteFile(*out, img.Bytes(), 0644); err != nil {
			log.Fatalf("Failed to write image file %s: %v", *out, err)
		}
		logger.Info("Image written to %s", *out)
		return
	}

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()

	if err := store.Save(context.Background(), img.Bytes()); err != nil {
		log.Fatalf("Failed to save image snapshot: %v", err)
	}
	logger.Info("Image saved to %s snapshot store", cfg.Snapshot.Type)
}

func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Type {
	case "badger":
		tuning, err := config.DecodeBadgerTuning(cfg)
		if err != nil {
			return nil, err
		}
		return snapshot.NewBadgerStore(snapshot.BadgerStoreConfig{
			Dir:              cfg.Snapshot.Badger.Dir,
			Key:              cfg.Snapshot.Badger.Key,
			BlockCacheSizeMB: tuning.BlockCacheSizeMB,
			IndexCacheSizeMB: tuning.IndexCacheSizeMB,
		})
	case "s3":
		return snapshot.NewS3Store(ctx, snapshot.S3StoreConfig{
			Bucket: cfg.Snapshot.S3.Bucket,
			Key:    cfg.Snapshot.S3.Key,
			Region: cfg.Snapshot.S3.Region,
		})
	default:
		log.Fatalf("mkfs: -out is required when snapshot.type is %q", cfg.Snapshot.Type)
		return nil, nil
	}
}
