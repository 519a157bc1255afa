package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the configuration using struct tags plus the custom
// rules struct tags can't express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

// validateCustomRules checks the snapshot store's own required fields,
// which only apply once its type has been selected.
func validateCustomRules(cfg *Config) error {
	switch cfg.Snapshot.Type {
	case "badger":
		if cfg.Snapshot.Badger.Dir == "" {
			return fmt.Errorf("snapshot.badger.dir is required when snapshot.type is badger")
		}
	case "s3":
		if cfg.Snapshot.S3.Bucket == "" {
			return fmt.Errorf("snapshot.s3.bucket is required when snapshot.type is s3")
		}
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
