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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, "errors", cfg.Errors.KeyPrefix)
	assert.Equal(t, language.English, cfg.Errors.DefaultLocale)
	assert.Equal(t, "X-Request-ID", cfg.Errors.RequestIDHeader)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
	assert.Equal(t, 100, cfg.Log.MaxSize)
}

func TestLoad_FileEnvFlagPrecedence(t *testing.T) {
	path := writeFile(t, t.TempDir(), "apierr.yaml", `
service: theatre
http:
  addr: ":8081"
  shutdown_timeout: 3s
errors:
  key_prefix: movie-theatre
  default_locale: fr
  assign_ids: true
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "theatre", cfg.Service)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "movie-theatre", cfg.Errors.KeyPrefix)
	assert.Equal(t, language.French, cfg.Errors.DefaultLocale)
	assert.True(t, cfg.Errors.AssignIDs)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)

	t.Setenv("APIERR_HTTP_ADDR", ":9090")
	t.Setenv("APIERR_LOG_LEVEL", "warn")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, zapcore.WarnLevel, cfg.Log.Level)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", path, "--http-addr=:7070"}))
	cfg, err = Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr, "flag beats env")
	assert.Equal(t, zapcore.WarnLevel, cfg.Log.Level, "unset flag keeps env")
	assert.Equal(t, "theatre", cfg.Service, "config flag selects the file")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "APIERR_SERVICE=from-dotenv\n")
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("APIERR_SERVICE") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Service)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
	})
	t.Run("bad locale", func(t *testing.T) {
		t.Setenv("APIERR_ERRORS_DEFAULT_LOCALE", "not a tag!!")
		_, err := Load("", nil)
		require.Error(t, err)
	})
	t.Run("bad prefix", func(t *testing.T) {
		t.Setenv("APIERR_ERRORS_KEY_PREFIX", "9bad")
		_, err := Load("", nil)
		require.ErrorContains(t, err, "key_prefix")
	})
	t.Run("grpc without domain", func(t *testing.T) {
		t.Setenv("APIERR_GRPC_ADDR", ":9000")
		_, err := Load("", nil)
		require.ErrorContains(t, err, "grpc.domain")
	})
}

func TestValidate(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	bad := cfg
	bad.HTTP.Addr = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.HTTP.MaxBodyBytes = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Errors.DefaultLocale = language.Und
	assert.Error(t, bad.Validate())
}
