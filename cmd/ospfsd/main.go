// Command ospfsd is a demo host adapter: it formats or loads an OSPFS
// image, seeds a small initial file tree through the Engine façade the
// same way a real kernel VFS shim or FUSE loop would, and then keeps the
// process alive until an interrupt, snapshotting the image on shutdown
// if a snapshot store is configured.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/ospfs/internal/config"
	"github.com/marmos91/ospfs/internal/logger"
	"github.com/marmos91/ospfs/internal/ospfs"
	"github.com/marmos91/ospfs/internal/snapshot"
)

// copyIn and copyOut stand in for the real user-memory or kernel-buffer
// copy a host would perform; here both sides already live in the Go
// heap, so they are plain byte-slice copies.
func copyIn(dst, src []byte) (int, error)  { return copy(dst, src), nil }
func copyOut(dst, src []byte) (int, error) { return copy(dst, src), nil }

// createInitialStructure seeds a handful of files under the image root,
// mirroring the teacher's createInitialStructure demo content but driven
// entirely through the Engine's Create/Write entry points instead of a
// metadata repository.
func createInitialStructure(eng *ospfs.Engine) error {
	files := []struct {
		name    string
		content string
	}{
		{"readme.txt", "This is a README file.\nWelcome to OSPFS!\n"},
		{"notes.txt", "Some notes about this filesystem image.\n"},
	}

	for _, f := range files {
		ino, err := eng.Create(ospfs.RootIno, f.name, 0644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.name, err)
		}
		data := []byte(f.content)
		if _, err := eng.Write(ino, 0, uint32(len(data)), data, copyIn, false); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	if _, err := eng.Create(ospfs.RootIno, "empty-dir-placeholder", 0644); err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}

	return nil
}

func listRoot(eng *ospfs.Engine) {
	_, _, err := eng.Readdir(ospfs.RootIno, ospfs.RootIno, 0, func(name string, ino uint32) bool {
		logger.Info("  %s -> inode %d", name, ino)
		return true
	})
	if err != nil {
		logger.Warn("readdir failed: %v", err)
	}
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
		return nil, nil
	}
}

func loadOrFormat(ctx context.Context, cfg *config.Config, store snapshot.Store) (*ospfs.Image, error) {
	if store != nil {
		buf, err := store.Load(ctx)
		if err == nil {
			logger.Info("Loaded existing image from %s snapshot store", cfg.Snapshot.Type)
			return ospfs.Load(buf)
		}
		if !errors.Is(err, snapshot.ErrNotFound) {
			return nil, err
		}
		logger.Info("No existing snapshot found, formatting a fresh image")
	}

	return ospfs.NewImage(cfg.Image.NBlocks, cfg.Image.NInodes)
}

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search XDG config dir)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Println("OSPFS - In-Memory File System Engine")
	logger.Info("Log level set to: %s", cfg.Logging.Level)
	logger.Info("Image geometry: %d blocks, %d inodes", cfg.Image.NBlocks, cfg.Image.NInodes)

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	img, err := loadOrFormat(ctx, cfg, store)
	if err != nil {
		log.Fatalf("Failed to obtain image: %v", err)
	}

	eng := ospfs.NewEngine(img)

	if _, found := eng.Lookup(ospfs.RootIno, "readme.txt"); !found {
		if err := createInitialStructure(eng); err != nil {
			log.Fatalf("Failed to create initial structure: %v", err)
		}
		logger.Info("Initial file structure created")
	}

	logger.Info("Root directory contents:")
	listRoot(eng)

	var buf bytes.Buffer
	if ino, found := eng.Lookup(ospfs.RootIno, "readme.txt"); found {
		out := make([]byte, 4096)
		n, err := eng.Read(ino, 0, uint32(len(out)), out, copyOut)
		if err != nil {
			logger.Warn("read readme.txt failed: %v", err)
		} else {
			buf.Write(out[:n])
			logger.Info("readme.txt contents:\n%s", buf.String())
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Engine is running with an in-memory image. Press Ctrl+C to stop.")
	<-sigChan
	logger.Info("Shutdown signal received")
	cancel()

	if store != nil {
		if err := store.Save(context.Background(), img.Bytes()); err != nil {
			logger.Error("Failed to save image snapshot: %v", err)
			os.Exit(1)
		}
		logger.Info("Image snapshot saved")
	}
}
