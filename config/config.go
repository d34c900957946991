// Package config defines the suite-wide configuration values that test
// cases receive read-only, such as the application URL and the admin
// credentials used by the login test.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Config is the full configuration for one suite run. It is loaded once at
// startup and must not be mutated by test cases.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Browser BrowserConfig `mapstructure:"browser"`
	Globals Globals       `mapstructure:"globals"`
}

// AppConfig describes the application under test.
type AppConfig struct {
	// BaseURL is the externally hosted application to test. Empty means
	// the harness starts its own embedded copy of the login app.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// Port is the listen port for the embedded app when BaseURL is empty.
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
	// StartupTimeout bounds how long the harness waits for the app to
	// answer its readiness probe.
	StartupTimeout time.Duration `mapstructure:"startup_timeout" validate:"gt=0"`
}

// BrowserConfig selects and tunes the browser driver.
type BrowserConfig struct {
	// Driver is the driver name: "chrome" or "static".
	Driver   string `mapstructure:"driver" validate:"oneof=chrome static"`
	Headless bool   `mapstructure:"headless"`
	// ActionTimeout bounds every individual driver action (navigate,
	// click, fill, read). A timeout is reported as an action failure,
	// not an assertion failure.
	ActionTimeout  time.Duration `mapstructure:"action_timeout" validate:"gt=0"`
	ViewportWidth  ldvalue.OptionalInt
	ViewportHeight ldvalue.OptionalInt
}

// Globals is the configuration bag that test cases may read, equivalent to
// per-environment test data. Cases receive it read-only.
type Globals struct {
	AdminUser string `mapstructure:"admin_user" validate:"required"`
	AdminPass string `mapstructure:"admin_pass" validate:"required"`
}

const envPrefix = "LOGINTESTS"

// Load reads configuration from the given YAML file (or from a config.yml
// in the working directory if path is empty), applies environment variable
// overrides, and validates the result. Missing file is not an error as long
// as the required values arrive from the environment.
func Load(path string) (Config, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("config")
		vip.AddConfigPath(".")
	}
	vip.SetConfigType("yaml")

	vip.SetEnvPrefix(envPrefix)
	vip.AutomaticEnv()
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	vip.SetDefault("app.port", 8666)
	vip.SetDefault("app.startup_timeout", "10s")
	vip.SetDefault("browser.driver", "chrome")
	vip.SetDefault("browser.headless", true)
	vip.SetDefault("browser.action_timeout", "5s")

	// Binding makes the env overrides visible even when the key is absent
	// from the config file.
	for _, key := range []string{
		"app.base_url", "app.port", "app.startup_timeout",
		"browser.driver", "browser.headless", "browser.action_timeout",
		"browser.viewport_width", "browser.viewport_height",
		"globals.admin_user", "globals.admin_pass",
	} {
		_ = vip.BindEnv(key)
	}

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if vip.IsSet("browser.viewport_width") {
		cfg.Browser.ViewportWidth = ldvalue.NewOptionalInt(vip.GetInt("browser.viewport_width"))
	}
	if vip.IsSet("browser.viewport_height") {
		cfg.Browser.ViewportHeight = ldvalue.NewOptionalInt(vip.GetInt("browser.viewport_height"))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct-level constraints. It is exposed separately so
// that command-line overrides applied after Load can be re-checked.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
