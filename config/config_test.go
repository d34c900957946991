package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const fullConfig = `
app:
  base_url: "http://app.example:8080"
  startup_timeout: 5s
browser:
  driver: static
  headless: false
  action_timeout: 2s
  viewport_width: 1280
  viewport_height: 800
globals:
  admin_user: admin
  admin_pass: hunter2
`

func TestLoadReadsAllValuesFromFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://app.example:8080", cfg.App.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.App.StartupTimeout)
	assert.Equal(t, "static", cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 2*time.Second, cfg.Browser.ActionTimeout)
	assert.Equal(t, "admin", cfg.Globals.AdminUser)
	assert.Equal(t, "hunter2", cfg.Globals.AdminPass)

	require.True(t, cfg.Browser.ViewportWidth.IsDefined())
	assert.Equal(t, 1280, cfg.Browser.ViewportWidth.IntValue())
	require.True(t, cfg.Browser.ViewportHeight.IsDefined())
	assert.Equal(t, 800, cfg.Browser.ViewportHeight.IntValue())
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
globals:
  admin_user: admin
  admin_pass: hunter2
`))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.App.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.App.StartupTimeout)
	assert.Equal(t, "chrome", cfg.Browser.Driver)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 5*time.Second, cfg.Browser.ActionTimeout)
	assert.False(t, cfg.Browser.ViewportWidth.IsDefined())
	assert.False(t, cfg.Browser.ViewportHeight.IsDefined())
}

func TestEnvironmentVariablesOverrideFile(t *testing.T) {
	t.Setenv("LOGINTESTS_GLOBALS_ADMIN_PASS", "from-environment")
	t.Setenv("LOGINTESTS_BROWSER_DRIVER", "chrome")

	cfg, err := Load(writeConfigFile(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-environment", cfg.Globals.AdminPass)
	assert.Equal(t, "chrome", cfg.Browser.Driver)
	// Values without an env override keep the file's setting.
	assert.Equal(t, "admin", cfg.Globals.AdminUser)
}

func TestEnvironmentAloneIsEnough(t *testing.T) {
	t.Setenv("LOGINTESTS_GLOBALS_ADMIN_USER", "admin")
	t.Setenv("LOGINTESTS_GLOBALS_ADMIN_PASS", "hunter2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	// A named file that does not exist is still an error; only the
	// default lookup tolerates absence.
	require.Error(t, err)

	withDefaultLookup := func() (Config, error) {
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		defer func() { _ = os.Chdir(cwd) }()
		return Load("")
	}
	cfg, err = withDefaultLookup()
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Globals.AdminUser)
	assert.Equal(t, "hunter2", cfg.Globals.AdminPass)
}

func TestMissingAdminCredentialsIsAnError(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
globals:
  admin_user: admin
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestUnknownDriverIsAnError(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
browser:
  driver: firefox
globals:
  admin_user: admin
  admin_pass: hunter2
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestMalformedBaseURLIsAnError(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
app:
  base_url: "not a url"
globals:
  admin_user: admin
  admin_pass: hunter2
`))
	require.Error(t, err)
}
