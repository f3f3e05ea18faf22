// Package ui holds the terminal formatting helpers shared by the ccasp
// subcommands. Styling is applied only when stdout is a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/ccasp/ccasp/pkg/types"
)

// Bold returns the string formatted as bold using pterm
func Bold(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// Section prints a bold section header
func Section(title string) {
	fmt.Println(Bold(title))
}

// PrintCompile prints a compile result
func PrintCompile(res *types.CompileResult) {
	if res.Skipped {
		fmt.Printf("Cache already up to date (%s)\n", res.Reason)
		return
	}
	fmt.Printf("Compiled %d file(s)\n", res.FileCount)
	for name, count := range res.Categories {
		fmt.Printf("  %-10s %d\n", name, count.Compiled)
	}
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s: %s\n", w.RelPath, w.Message)
	}
}

// PrintPlan prints a dry-run plan
func PrintPlan(plan *types.Plan) {
	Section("Would create:")
	if len(plan.ToCreate) == 0 {
		fmt.Println("  (nothing)")
	}
	for _, item := range plan.ToCreate {
		fmt.Printf("  + %s\n", item.RelPath)
	}
	PrintSkips(plan.ToSkip)
	PrintErrors(plan.ToError)
}

// PrintApply prints the outcome of an applied plan
func PrintApply(res *types.ApplyResult) {
	if res.FallbackToCopy {
		fmt.Println("Symlinks unsupported on this system, files were copied instead")
	}
	fmt.Printf("Created %d, skipped %d, errors %d (method: %s)\n",
		len(res.Created), len(res.Skipped), len(res.Errors), res.Method)
	PrintSkips(res.Skipped)
	PrintErrors(res.Errors)
}

// PrintSkips lists skipped paths with their reasons
func PrintSkips(skips []types.SkipItem) {
	for _, skip := range skips {
		fmt.Printf("  - %s: %s\n", skip.RelPath, skip.Reason)
	}
}

// PrintErrors lists per-file errors
func PrintErrors(errs []types.ErrorItem) {
	for _, e := range errs {
		if e.RelPath != "" {
			fmt.Printf("  ! %s: %s\n", e.RelPath, e.Message)
			continue
		}
		fmt.Printf("  ! %s\n", e.Message)
	}
}

// PrintStatus prints the consolidated health view
func PrintStatus(status *types.SyncStatus) {
	Section("Sync status")
	fmt.Printf("  enabled:          %v\n", status.Enabled)
	fmt.Printf("  method:           %s\n", status.Method)
	fmt.Printf("  cached:           %v\n", status.Cached)
	if status.Cached {
		fmt.Printf("  tool version:     %s\n", status.ToolVersion)
		fmt.Printf("  compiled at:      %s\n", status.CompiledAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("  needs recompile:  %v\n", status.NeedsRecompile)
	fmt.Printf("  symlinks:         %d\n", status.SymlinkCount)
	fmt.Printf("  real files:       %d\n", status.RealFileCount)
	fmt.Printf("  broken symlinks:  %d\n", status.BrokenSymlinks)
	fmt.Printf("  custom files:     %d\n", status.CustomFileCount)
	if status.MissingCount > 0 {
		fmt.Printf("  missing:          %d\n", status.MissingCount)
	}
	for _, orphan := range status.OrphanedLinks {
		fmt.Printf("  orphaned link:    %s\n", orphan)
	}
}
