/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"dirpx.dev/apierr/code"
	"dirpx.dev/apierr/logx"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment override, e.g. APIERR_HTTP_ADDR.
const EnvPrefix = "APIERR"

// Config is the full configuration of a service using the error layer.
type Config struct {
	Service string       `mapstructure:"service"`
	HTTP    HTTPConfig   `mapstructure:"http"`
	GRPC    GRPCConfig   `mapstructure:"grpc"`
	Errors  ErrorsConfig `mapstructure:"errors"`
	Log     logx.Config  `mapstructure:"log"`
	Auth    AuthConfig   `mapstructure:"auth"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
	// Domain is reported as errdetails.ErrorInfo domain.
	Domain string `mapstructure:"domain"`
}

// ErrorsConfig configures classification and catalog loading.
type ErrorsConfig struct {
	KeyPrefix     string       `mapstructure:"key_prefix"`
	DefaultLocale language.Tag `mapstructure:"default_locale"`
	// CatalogDir holds "<lang>.yaml" files layered over the built-in messages.
	CatalogDir      string `mapstructure:"catalog_dir"`
	AssignIDs       bool   `mapstructure:"assign_ids"`
	LocaleMeta      bool   `mapstructure:"locale_meta"`
	RequestIDHeader string `mapstructure:"request_id_header"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

var defaults = map[string]any{
	"service": "apierr",

	"http.addr":             ":8080",
	"http.shutdown_timeout": "10s",
	"http.max_body_bytes":   1 << 20,

	"grpc.addr":   "",
	"grpc.domain": "",

	"errors.key_prefix":        code.DefaultPrefix,
	"errors.default_locale":    "en",
	"errors.catalog_dir":       "",
	"errors.assign_ids":        false,
	"errors.locale_meta":       false,
	"errors.request_id_header": "X-Request-ID",

	"log.name":        "",
	"log.level":       "info",
	"log.file":        "",
	"log.max_size":    100,
	"log.max_backups": 3,
	"log.max_age":     28,
	"log.compress":    false,
	"log.dev":         false,

	"auth.secret":   "",
	"auth.issuer":   "",
	"auth.audience": "",
}

// flagKeys maps the flags registered by BindFlags to configuration keys.
var flagKeys = map[string]string{
	"http-addr":      "http.addr",
	"grpc-addr":      "grpc.addr",
	"log-level":      "log.level",
	"log-file":       "log.file",
	"log-dev":        "log.dev",
	"default-locale": "errors.default_locale",
	"catalog-dir":    "errors.catalog_dir",
}

// BindFlags registers the command-line flags Load understands on flags.
func BindFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "path to a YAML configuration file")
	flags.String("http-addr", ":8080", "HTTP listen address")
	flags.String("grpc-addr", "", "gRPC listen address (empty disables gRPC)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "rotated JSON log file")
	flags.Bool("log-dev", false, "development logging")
	flags.String("default-locale", "en", "default response language")
	flags.String("catalog-dir", "", "directory of message catalog files")
}

// Load reads the configuration. Sources, lowest to highest precedence:
// built-in defaults, the YAML file at path (optional), a ".env" file in the
// working directory (optional), APIERR_* environment variables and the flags
// registered by BindFlags that were set on the command line.
//
// When path is empty and flags carries a "config" flag, its value is used.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if path == "" {
			if f := flags.Lookup("config"); f != nil {
				path = f.Value.String()
			}
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(DecodeHook())); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DecodeHook converts strings into durations, slices and any type that
// implements encoding.TextUnmarshaler (language.Tag, zapcore.Level).
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("config: http.addr is required")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes)
	}
	if err := code.Validate(code.Key(c.Errors.KeyPrefix, 500, code.Internal)); err != nil {
		return fmt.Errorf("config: errors.key_prefix %q: %w", c.Errors.KeyPrefix, err)
	}
	if c.Errors.DefaultLocale == language.Und {
		return errors.New("config: errors.default_locale is required")
	}
	if c.GRPC.Addr != "" && c.GRPC.Domain == "" {
		return errors.New("config: grpc.domain is required when grpc.addr is set")
	}
	return nil
}
