package config

import (
	"strings"
	"testing"
)

func defaultConfig() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

func TestValidateDefaultConfigPasses(t *testing.T) {
	cfg := defaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected default config to pass validation, got: %v", err)
	}
}

func TestValidateRejectsInvalidLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "VERBOSE"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidateRejectsInvalidLogFormat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid log format")
	}
}

func TestValidateRejectsTooFewBlocks(t *testing.T) {
	cfg := defaultConfig()
	cfg.Image.NBlocks = 2

	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for nblocks <= 2")
	}
}

func TestValidateRejectsBadgerWithoutDir(t *testing.T) {
	cfg := defaultConfig()
	cfg.Snapshot.Type = "badger"
	cfg.Snapshot.Badger.Dir = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for badger snapshot missing dir")
	}
	if !strings.Contains(err.Error(), "badger.dir") {
		t.Errorf("expected error mentioning badger.dir, got: %v", err)
	}
}

func TestValidateRejectsS3WithoutBucket(t *testing.T) {
	cfg := defaultConfig()
	cfg.Snapshot.Type = "s3"
	cfg.Snapshot.S3.Bucket = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for s3 snapshot missing bucket")
	}
	if !strings.Contains(err.Error(), "s3.bucket") {
		t.Errorf("expected error mentioning s3.bucket, got: %v", err)
	}
}

func TestValidateAcceptsBadgerWithDir(t *testing.T) {
	cfg := defaultConfig()
	cfg.Snapshot.Type = "badger"
	cfg.Snapshot.Badger.Dir = "/tmp/ospfs-snapshot"

	if err := Validate(cfg); err != nil {
		t.Errorf("expected badger snapshot with dir to pass validation, got: %v", err)
	}
}
