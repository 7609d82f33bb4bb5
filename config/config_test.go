package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "student-directory", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, ',', cfg.Import.DelimiterRune())
	assert.Equal(t, rune(0), cfg.Import.CommentRune())
	assert.Equal(t, 100, cfg.Import.MaxReportedFailures)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
	assert.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
import:
  delimiter: ";"
  comment: "#"
observability:
  log_level: info
  metrics_enabled: true
`)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("IMPORT_MAX_REPORTED_FAILURES", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Environment)
	assert.Equal(t, ';', cfg.Import.DelimiterRune())
	assert.Equal(t, '#', cfg.Import.CommentRune())
	assert.Equal(t, 5, cfg.Import.MaxReportedFailures)
	assert.Equal(t, "debug", cfg.Observability.LogLevel, "environment wins over the file")
	assert.Equal(t, "text", cfg.Observability.LogFormat, "unset keys keep their defaults")
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = Load(writeConfig(t, "import:\n  delimeter: \";\"\n"))
	assert.ErrorContains(t, err, "parse config file")

	_, err = Load(writeConfig(t, "app: [not, a, map]\n"))
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.App.Environment = "qa"
	cfg.Import.Delimiter = ",,"
	cfg.Import.MaxReportedFailures = 0
	cfg.Observability.LogLevel = "loud"
	cfg.Observability.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "IMPORT_DELIMITER")
	assert.Contains(t, err.Error(), "IMPORT_MAX_REPORTED_FAILURES")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestValidate_CommentMustDifferFromDelimiter(t *testing.T) {
	cfg := Default()
	cfg.Import.Comment = ","

	assert.ErrorContains(t, cfg.Validate(), "IMPORT_COMMENT")
}

func TestValidate_RejectsSeparatorsCSVCannotUse(t *testing.T) {
	for _, sep := range []string{`"`, "\r", "\n"} {
		t.Run("delimiter "+strconv.Quote(sep), func(t *testing.T) {
			cfg := Default()
			cfg.Import.Delimiter = sep
			assert.ErrorContains(t, cfg.Validate(), "IMPORT_DELIMITER")
		})
		t.Run("comment "+strconv.Quote(sep), func(t *testing.T) {
			cfg := Default()
			cfg.Import.Comment = sep
			assert.ErrorContains(t, cfg.Validate(), "IMPORT_COMMENT")
		})
	}

	cfg := Default()
	cfg.Import.Delimiter = "\t"
	assert.NoError(t, cfg.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_BOOL", "yes-ish")
	t.Setenv("CFG_TEST_INT", "12")

	assert.True(t, getEnvBool("CFG_TEST_BOOL", true), "unparsable values fall back")
	assert.Equal(t, 12, getEnvInt("CFG_TEST_INT", 1))
	assert.Equal(t, "fallback", getEnv("CFG_TEST_UNSET", "fallback"))
}
