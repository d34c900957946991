// Command login-acceptance-tests runs the login page acceptance suite
// against a web application, using either a real Chrome browser or the
// built-in simulated browser. When no application URL is given it hosts
// its own copy of the demo login app, so the suite can run hermetically.
package main

import (
	"fmt"
	"os"

	"github.com/formlab/login-acceptance-tests/browser"
	"github.com/formlab/login-acceptance-tests/browser/chrome"
	"github.com/formlab/login-acceptance-tests/browser/static"
	"github.com/formlab/login-acceptance-tests/config"
	"github.com/formlab/login-acceptance-tests/framework"
	"github.com/formlab/login-acceptance-tests/logintests"
	"github.com/formlab/login-acceptance-tests/webapp"
)

func main() {
	os.Exit(run())
}

func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}
	applyOverrides(&cfg, params)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}

	appURL := cfg.App.BaseURL
	if appURL == "" {
		app := webapp.NewApp(cfg.Globals.AdminUser, cfg.Globals.AdminPass)
		server, err := webapp.StartServer(app, cfg.App.Port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot start embedded app: %s\n", err)
			return 1
		}
		defer server.Close()
		appURL = server.URL
		fmt.Printf("Started embedded login app at %s\n", appURL)
	}

	if err := webapp.WaitReady(appURL+"/login", cfg.App.StartupTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Application under test is not responding: %s\n", err)
		return 1
	}

	driver, err := makeDriver(cfg.Browser.Driver)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	harness := &logintests.Harness{
		Config: cfg,
		Driver: driver,
		AppURL: appURL,
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, logintests.AllCapabilities, harness.HasCapability)

	fmt.Println("Running test suite")

	testLogger := ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := logintests.RunTestSuite(harness, params.filters.AsFilter, &testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", rerunCommand(params, results.Failures))
		return 1
	}
	return 0
}

func applyOverrides(cfg *config.Config, params commandParams) {
	if params.appURL != "" {
		cfg.App.BaseURL = params.appURL
	}
	if params.driverName != "" {
		cfg.Browser.Driver = params.driverName
	}
	if params.headful {
		cfg.Browser.Headless = false
	}
	if params.port != 0 {
		cfg.App.Port = params.port
	}
}

func makeDriver(name string) (browser.Driver, error) {
	switch name {
	case "chrome":
		return chrome.NewDriver(), nil
	case "static":
		return static.NewDriver(), nil
	default:
		return nil, fmt.Errorf("unknown browser driver %q", name)
	}
}
