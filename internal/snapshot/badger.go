package snapshot

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// BadgerStore persists a single image blob in an embedded BadgerDB
// database, keyed by a single fixed key.
type BadgerStore struct {
	db  *badger.DB
	key []byte
}

// BadgerStoreConfig configures a BadgerStore.
type BadgerStoreConfig struct {
	// Dir is the BadgerDB data directory.
	Dir string

	// Key is the key the image blob is stored under.
	Key string

	// BlockCacheSizeMB and IndexCacheSizeMB override BadgerDB's default
	// cache sizes; zero keeps BadgerDB's own defaults. An image blob is
	// a single value, so the default caches are already generous, but a
	// deployment tuning many small ospfsd instances on one host may want
	// to shrink them.
	BlockCacheSizeMB int
	IndexCacheSizeMB int
}

// NewBadgerStore opens (or creates) the BadgerDB database at cfg.Dir.
func NewBadgerStore(cfg BadgerStoreConfig) (*BadgerStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger snapshot: dir is required")
	}
	if cfg.Key == "" {
		cfg.Key = "ospfs-image"
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts = opts.WithLoggingLevel(badger.WARNING)
	opts = opts.WithCompression(options.None)
	if cfg.BlockCacheSizeMB > 0 {
		opts = opts.WithBlockCacheSize(int64(cfg.BlockCacheSizeMB) << 20)
	}
	if cfg.IndexCacheSizeMB > 0 {
		opts = opts.WithIndexCacheSize(int64(cfg.IndexCacheSizeMB) << 20)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %s: %w", cfg.Dir, err)
	}

	return &BadgerStore{db: db, key: []byte(cfg.Key)}, nil
}

// Load returns the previously saved image bytes.
func (s *BadgerStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			buf = append([]byte(nil), val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger snapshot load: %w", err)
	}
	return buf, nil
}

// Save persists buf under the configured key, overwriting any previous
// value.
func (s *BadgerStore) Save(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, buf)
	})
	if err != nil {
		return fmt.Errorf("badger snapshot save: %w", err)
	}
	return nil
}

// Close closes the underlying BadgerDB handle.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
