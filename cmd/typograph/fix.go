package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typograph/internal/diag"
	"typograph/internal/driver"
	"typograph/internal/fix"
	"typograph/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply typography fixes to source files",
	Long:  "Run the checker, collect the suggested replacements, and write them back to the affected files.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().String("id", "", "apply only fixes with this identifier or diagnostic code (e.g. TYP1004)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	fixCmd.Flags().String("config", "", "explicit config file (default: walk up for typograph.toml)")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	mode := fix.ApplyModeAll
	if targetID != "" {
		mode = fix.ApplyModeID
	}
	applyOpts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	checkOpts := driver.CheckOptions{MaxDiagnostics: maxDiag, Jobs: jobs}
	checkOpts.Engine, err = loadEngineOptions(target, configPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var fileSet *source.FileSet
	var results []driver.CheckDirResult
	if info.IsDir() {
		fileSet, results, err = driver.CheckDir(cmd.Context(), target, checkOpts)
	} else {
		var result driver.CheckDirResult
		fileSet, result, err = driver.CheckFile(target, checkOpts)
		results = []driver.CheckDirResult{result}
	}
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	diagnostics := make([]diag.Diagnostic, 0)
	for _, r := range results {
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	result, applyErr := fix.Apply(fileSet, diagnostics, applyOpts)
	return reportApplyResult(cmd.Context(), result, applyErr, dryRun, quiet)
}

func reportApplyResult(_ context.Context, result *fix.ApplyResult, applyErr error, dryRun, quiet bool) error {
	if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
		return applyErr
	}

	if !quiet {
		for _, applied := range result.Applied {
			fmt.Fprintf(os.Stdout, "applied %s: %s (%s)\n", applied.ID, applied.Title, applied.PrimaryPath)
		}
		for _, skipped := range result.Skipped {
			fmt.Fprintf(os.Stdout, "skipped %s: %s\n", skipped.ID, skipped.Reason)
		}
	}

	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	for _, change := range result.FileChanges {
		fmt.Fprintf(os.Stdout, "%s %s (%d edit(s))\n", verb, change.Path, change.EditCount)
	}

	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(os.Stdout, "nothing to fix")
	}
	return nil
}
