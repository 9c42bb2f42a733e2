package domain

import "fmt"

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Environments lists every deployment environment the transformers accept.
var Environments = []Environment{
	EnvironmentDevelopment,
	EnvironmentStaging,
	EnvironmentProduction,
}

func ParseEnvironment(value string) (Environment, error) {
	if value == "" {
		return "", &ConfigurationError{Key: "ENVIRONMENT", Reason: "environment is required"}
	}
	for _, env := range Environments {
		if Environment(value) == env {
			return env, nil
		}
	}
	return "", &ConfigurationError{
		Key:    "ENVIRONMENT",
		Value:  value,
		Reason: "environment is invalid",
	}
}

// ConfigurationError is fatal for an invocation: nothing is transformed and
// the upstream retries the whole batch.
type ConfigurationError struct {
	Key    string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error: %s", e.Reason)
	if e.Key != "" {
		msg = fmt.Sprintf("%s (%s", msg, e.Key)
		if e.Value != "" {
			msg = fmt.Sprintf("%s=%q", msg, e.Value)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
