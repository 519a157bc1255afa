package config

import "strings"

// ApplyDefaults fills in unspecified configuration fields with sensible
// defaults. Called after unmarshaling and before Validate.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyImageDefaults(&cfg.Image)
	applySnapshotDefaults(&cfg.Snapshot)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyImageDefaults picks a modest default geometry: enough blocks for
// the boot block, superblock, bitmap, inode table and a working data
// region. The data region stays well under MaxFileBlocks, so no single
// file can reach the addressing limit; a file larger than
// NDirect+NIndirect blocks still uses the doubly-indirect region.
func applyImageDefaults(cfg *ImageConfig) {
	if cfg.NBlocks == 0 {
		cfg.NBlocks = 4096
	}
	if cfg.NInodes == 0 {
		cfg.NInodes = 512
	}
}

func applySnapshotDefaults(cfg *SnapshotConfig) {
	if cfg.Type == "" {
		cfg.Type = "none"
	}
	if cfg.Badger.Key == "" {
		cfg.Badger.Key = "ospfs-image"
	}
	if cfg.S3.Key == "" {
		cfg.S3.Key = "ospfs-image"
	}
}
