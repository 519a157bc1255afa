// Package config loads OSPFS engine configuration from file, environment,
// and defaults, following the same viper-backed precedence chain the
// teacher's server config uses.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete configuration for a running OSPFS host.
//
// Configuration sources, highest precedence first:
//  1. Environment variables (OSPFS_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging"`

	// Image describes the geometry of the image to format or load.
	Image ImageConfig `mapstructure:"image"`

	// Snapshot selects where the engine's image bytes are persisted
	// between process restarts, entirely outside the engine itself.
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format names the log output format.
	// Valid values: text, json. The value is validated but not applied:
	// internal/logger always writes plain text lines.
	Format string `mapstructure:"format" validate:"required,oneof=text json"`

	// Output names where logs are written.
	// Valid values: stdout, stderr, or a file path. The value is validated
	// but not applied: internal/logger always writes to stdout.
	Output string `mapstructure:"output" validate:"required"`
}

// ImageConfig describes the block-layout parameters used to format a
// fresh image. An image loaded from a snapshot keeps its own geometry
// and is not checked against these values.
type ImageConfig struct {
	// NBlocks is the total number of BlockSize blocks in the image,
	// including the boot block, superblock, bitmap and inode regions.
	NBlocks int `mapstructure:"nblocks" validate:"required,gt=2"`

	// NInodes is the size of the inode table, in entries.
	NInodes int `mapstructure:"ninodes" validate:"required,gt=0"`
}

// SnapshotConfig selects the optional store used to load an image at
// startup and persist it at shutdown or on demand.
type SnapshotConfig struct {
	// Type selects the snapshot store implementation.
	// Valid values: none, badger, s3.
	Type string `mapstructure:"type" validate:"required,oneof=none badger s3"`

	// Badger holds settings used when Type == "badger".
	Badger BadgerSnapshotConfig `mapstructure:"badger"`

	// S3 holds settings used when Type == "s3".
	S3 S3SnapshotConfig `mapstructure:"s3"`
}

// BadgerSnapshotConfig configures the on-disk BadgerDB snapshot store.
type BadgerSnapshotConfig struct {
	// Dir is the BadgerDB data directory.
	Dir string `mapstructure:"dir"`

	// Key is the key the image blob is stored under.
	Key string `mapstructure:"key"`

	// Extra carries BadgerDB tuning knobs (see BadgerTuning) that most
	// deployments never need to touch, decoded on demand by
	// DecodeBadgerTuning rather than being given their own top-level
	// fields, the same map[string]any escape hatch the teacher's store
	// configs use for backend-specific options.
	Extra map[string]any `mapstructure:"extra"`
}

// BadgerTuning holds the BadgerDB cache-sizing knobs a deployment can
// set under snapshot.badger.extra.
type BadgerTuning struct {
	BlockCacheSizeMB int `mapstructure:"block_cache_size_mb"`
	IndexCacheSizeMB int `mapstructure:"index_cache_size_mb"`
}

// S3SnapshotConfig configures the S3 snapshot store.
type S3SnapshotConfig struct {
	// Bucket is the S3 bucket holding the image blob.
	Bucket string `mapstructure:"bucket"`

	// Key is the object key the image blob is stored under.
	Key string `mapstructure:"key"`

	// Region is the AWS region to use, overriding the default chain.
	Region string `mapstructure:"region"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: path to a config file, empty string uses the default
//     search location.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper wires up environment-variable overrides and config-file
// discovery.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("OSPFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if it exists; a missing
// file is not an error, since defaults cover every field.
func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory: $XDG_CONFIG_HOME,
// falling back to ~/.config, falling back to the current directory.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ospfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ospfs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
