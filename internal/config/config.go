// Package config loads the runtime configuration from the process
// environment, optionally seeded by a .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	APIKeyVariable         = "API_KEY_SEARCH_GOOGLE"
	SearchEngineIDVariable = "SEARCH_ENGINE_ID"
)

var ErrConfiguration = errors.New("configuration error")

type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Variable == "" {
		return e.Reason
	}

	return fmt.Sprintf("environment variable '%s' %s", e.Variable, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

type Config struct {
	APIKey         string
	SearchEngineID string
	Endpoint       string `env:"SEARCH_ENDPOINT" envDefault:"https://www.googleapis.com/"`
}

type Options struct {
	DotEnvFiles []string
}

type OptionFunc func(opts *Options)

// WithDotEnvFiles sets the dotenv files to load before reading the
// environment. Calling it without arguments disables dotenv loading.
func WithDotEnvFiles(files ...string) OptionFunc {
	return func(opts *Options) {
		opts.DotEnvFiles = files
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		DotEnvFiles: []string{".env"},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// RequiredVariable returns the value of the named environment variable.
// It fails with a *ConfigurationError if the variable is unset or empty.
func RequiredVariable(name string) (string, error) {
	value, exists := os.LookupEnv(name)
	if !exists {
		return "", errors.WithStack(&ConfigurationError{Variable: name, Reason: "is not defined"})
	}

	if value == "" {
		return "", errors.WithStack(&ConfigurationError{Variable: name, Reason: "is empty"})
	}

	return value, nil
}

// Load reads the configuration. Every missing required variable is reported.
func Load(funcs ...OptionFunc) (*Config, error) {
	opts := NewOptions(funcs...)

	if err := loadDotEnv(opts.DotEnvFiles...); err != nil {
		return nil, errors.WithStack(err)
	}

	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		return nil, errors.WithStack(&ConfigurationError{Reason: err.Error()})
	}

	var merr *multierror.Error

	apiKey, err := RequiredVariable(APIKeyVariable)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	searchEngineID, err := RequiredVariable(SearchEngineIDVariable)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		merr.ErrorFormat = formatErrors
		return nil, merr
	}

	conf.APIKey = apiKey
	conf.SearchEngineID = searchEngineID

	return conf, nil
}

// loadDotEnv loads the existing files among the given ones. Variables
// already present in the environment are left untouched.
func loadDotEnv(files ...string) error {
	existing := make([]string, 0, len(files))

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return errors.WithStack(&ConfigurationError{Reason: fmt.Sprintf("could not stat dotenv file '%s': %s", f, err)})
		}

		existing = append(existing, f)
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return errors.WithStack(&ConfigurationError{Reason: fmt.Sprintf("could not load dotenv files: %s", err)})
	}

	return nil
}

func formatErrors(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "; ")
}
