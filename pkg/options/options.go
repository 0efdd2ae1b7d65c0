// Package options provides the configuration of the uniqview verification and benchmark harness.
package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Options holds configuration values for the harness, loaded from environment variables or JSON.
type Options struct {
	DiscordWebhookID           snowflake.ID `env:"UNIQVIEW_DISCORD_WEBHOOK_ID" json:",omitempty"`
	DiscordWebhookToken        string       `env:"UNIQVIEW_DISCORD_WEBHOOK_TOKEN" json:",omitempty"`
	DiscordWebhookURL          string       `env:"UNIQVIEW_DISCORD_WEBHOOK_URL" json:",omitempty"`
	NumberOfLinesToEmbedOutput int          `env:"UNIQVIEW_NUMBER_OF_LINES_TO_EMBED_OUTPUT" json:","`
	Parallelism                int          `env:"UNIQVIEW_PARALLELISM" json:","`
	Repeats                    []float64    `env:"UNIQVIEW_REPEATS" json:","`
	RestTimeoutSeconds         int          `env:"UNIQVIEW_REST_TIMEOUT_SECONDS" json:","`
	Rounds                     int          `env:"UNIQVIEW_ROUNDS" json:","`
	Sizes                      []int        `env:"UNIQVIEW_SIZES" json:","`
	TimeoutSeconds             int          `env:"UNIQVIEW_TIMEOUT_SECONDS" json:","`
}

var snowflakeType = reflect.TypeFor[snowflake.ID]()

// defaultOptions creates a new Options instance with default values.
func defaultOptions() *Options {
	return &Options{
		NumberOfLinesToEmbedOutput: 40,
		Repeats:                    []float64{0.0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0},
		RestTimeoutSeconds:         10,
		Rounds:                     10,
		Sizes:                      []int{10000, 100000, 1000000},
		TimeoutSeconds:             300,
	}
}

// Default returns the default Options.
func Default() *Options {
	return defaultOptions()
}

// FromEnv populates Options from environment variables dynamically.
// List values are separated by whitespace or commas.
// Returns an Options pointer or an error if a value is invalid.
func FromEnv() (*Options, error) {
	options := defaultOptions()
	v := reflect.ValueOf(options).Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		envKey := fieldType.Tag.Get("env")
		if envKey == "" {
			continue
		}

		envValue, exists := os.LookupEnv(envKey)
		if !exists {
			continue
		}

		if err := setField(field, envValue); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", envKey, err)
		}

		// Remove the environment variable after reading it
		if err := os.Unsetenv(envKey); err != nil {
			return nil, fmt.Errorf("failed to unset environment variable %s: %w", envKey, err)
		}
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// setField parses s according to the kind of field and stores the result.
func setField(field reflect.Value, s string) error {
	if field.Type() == snowflakeType {
		id, err := snowflake.Parse(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(id))
		return nil
	}

	switch field.Kind() {
	case reflect.Slice:
		words := splitList(s)
		slice := reflect.MakeSlice(field.Type(), len(words), len(words))
		for i, word := range words {
			if err := setField(slice.Index(i), word); err != nil {
				return err
			}
		}
		field.Set(slice)
	case reflect.String:
		field.SetString(s)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}

// splitList splits s on whitespace and commas.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// FromStdin reads JSON from standard input and populates Options.
func FromStdin() (*Options, error) {
	return FromReader(os.Stdin)
}

// FromReader reads JSON from r and populates Options. Fields missing from the JSON keep their defaults.
func FromReader(r io.Reader) (*Options, error) {
	options := defaultOptions()
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// ErrInvalidOptions is wrapped by all errors returned from Validate.
var ErrInvalidOptions = errors.New("invalid options")

// Validate checks that the options describe a runnable harness configuration.
func (o *Options) Validate() error {
	var errs []error
	for _, size := range o.Sizes {
		if size < 0 {
			errs = append(errs, fmt.Errorf("size %d is negative", size))
		}
	}
	for _, r := range o.Repeats {
		if r < 0 || r > 1 {
			errs = append(errs, fmt.Errorf("repeats %g is not in [0, 1]", r))
		}
	}
	if o.Rounds <= 0 {
		errs = append(errs, fmt.Errorf("rounds %d is not positive", o.Rounds))
	}
	if o.DiscordWebhookID != 0 && o.DiscordWebhookToken == "" {
		errs = append(errs, errors.New("`UNIQVIEW_DISCORD_WEBHOOK_TOKEN` is missing"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// HasWebhook reports whether results should be posted to a Discord webhook.
func (o *Options) HasWebhook() bool {
	return o.DiscordWebhookURL != "" || o.DiscordWebhookID != 0
}

// ContextWithRestTimeout creates a context with the REST timeout duration.
// This context can be used to enforce a timeout for webhook calls.
func (o *Options) ContextWithRestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := o.RestTimeoutSeconds
	if timeout <= 0 {
		timeout = defaultOptions().RestTimeoutSeconds
	}
	return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
}

// ContextWithTimeout creates a context with the timeout duration of a whole harness run.
func (o *Options) ContextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := o.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultOptions().TimeoutSeconds
	}
	return context.WithTimeoutCause(ctx, time.Duration(timeout)*time.Second, fmt.Errorf("harness stopped due to timeout of %d seconds", timeout))
}
