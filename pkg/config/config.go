package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/tags"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Environment  string `mapstructure:"environment" validate:"required,oneof=development staging production"`
	AccountID    string `mapstructure:"account_id"`
	Region       string `mapstructure:"aws_region"`
	Partition    string `mapstructure:"arn_partition" validate:"required"`
	TagCacheSize int    `mapstructure:"tag_cache_size" validate:"gt=0"`
	LogLevel     string `mapstructure:"log_level"`

	FirehoseARN string `mapstructure:"firehose_arn"`
	RoleARN     string `mapstructure:"role_arn"`

	ServerHost string `mapstructure:"server_host"`
	ServerPort string `mapstructure:"server_port"`
}

var defaults = map[string]any{
	"environment":    "",
	"account_id":     "",
	"aws_region":     "",
	"arn_partition":  tags.DefaultPartition,
	"tag_cache_size": tags.DefaultCacheSize,
	"log_level":      "info",
	"firehose_arn":   "",
	"role_arn":       "",
	"server_host":    "",
	"server_port":    "",
}

// Load reads the configuration from environment variables named after the
// upper-cased keys, e.g. ENVIRONMENT or TAG_CACHE_SIZE.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &domain.ConfigurationError{Reason: "failed to parse configuration", Err: err}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.ToUpper(field.Tag.Get("mapstructure"))
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ConfigurationError{
			Key:    fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: fmt.Sprintf("failed %q validation", fe.Tag()),
		}
	}
	return &domain.ConfigurationError{Reason: "invalid configuration", Err: err}
}

// RequireAccountID is checked by variants that cannot fall back to an
// account id carried by the records themselves.
func (c *Config) RequireAccountID() error {
	if c.AccountID == "" {
		return &domain.ConfigurationError{Key: "ACCOUNT_ID", Reason: "ACCOUNT_ID environment variable is required"}
	}
	return nil
}

func (c *Config) RequireSubscription() error {
	if c.FirehoseARN == "" {
		return &domain.ConfigurationError{Key: "FIREHOSE_ARN", Reason: "FIREHOSE_ARN environment variable is required"}
	}
	if c.RoleARN == "" {
		return &domain.ConfigurationError{Key: "ROLE_ARN", Reason: "ROLE_ARN environment variable is required"}
	}
	return nil
}

func (c *Config) LookupContext() tags.LookupContext {
	return tags.LookupContext{
		Partition: c.Partition,
		Region:    c.Region,
		AccountID: c.AccountID,
	}
}
