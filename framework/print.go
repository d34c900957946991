package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
)

// PrintFilterDescription explains, before the run starts, which tests will
// be left out: either because of -run/-skip patterns or because the browser
// driver is missing capabilities that some tests require.
func PrintFilterDescription(filters RegexFilters, allCapabilities []string, hasCapability func(string) bool) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}

	var missingCapabilities []string
	for _, c := range allCapabilities {
		if !hasCapability(c) {
			missingCapabilities = append(missingCapabilities, c)
		}
	}
	if len(missingCapabilities) > 0 {
		fmt.Println("Some tests may be skipped because the browser driver does not support the following capabilities:")
		fmt.Printf("  %s\n", strings.Join(missingCapabilities, ", "))
		fmt.Println()
	}
}

// PrintResults writes the end-of-run summary to standard output.
func PrintResults(results Results) {
	executed, failedCount, skipped := results.Counts()
	if results.OK() {
		passColor.Printf("All tests passed (%d executed, %d skipped)\n", executed, skipped)
		return
	}

	failColor.Printf("FAILED: %d tests failed out of %d executed (%d skipped)\n",
		failedCount, executed, skipped)
	fmt.Println()
	for _, f := range results.Failures {
		failColor.Printf("  [%s]\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}
