package preflight

import (
	"bdmenu/internal/config"
	"bdmenu/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory and tool checks for the given config.
// outputDir is the directory that will receive the authored files; it is
// skipped when empty.
func RunAll(cfg *config.Config, locator *deps.Locator, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if outputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", outputDir))
	}
	results = append(results, CheckTools(locator)...)
	return results
}

// CheckTools resolves every required external tool through the locator.
func CheckTools(locator *deps.Locator) []Result {
	statuses := deps.CheckBinaries(locator, deps.DefaultRequirements())
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional}
		if status.Available {
			result.Detail = status.Command
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
