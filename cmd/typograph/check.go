package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"typograph/internal/config"
	"typograph/internal/diag"
	"typograph/internal/diagfmt"
	"typograph/internal/driver"
	"typograph/internal/engine"
	"typograph/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Report typography issues in source files",
	Long:  `Scan JS/JSX sources for ASCII approximations of typographic characters and report replacement suggestions without modifying anything.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "off", "interactive progress for directories (auto|on|off)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse results for unchanged files across runs")
	checkCmd.Flags().Bool("with-fixes", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "include before/after previews (json only)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("config", "", "explicit config file (default: walk up for typograph.toml)")
}

type checkFlags struct {
	format    string
	jobs      int
	ui        uiMode
	diskCache bool
	withFixes bool
	preview   bool
	fullPath  bool
	config    string
	quiet     bool
	maxDiag   int
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error

	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	if f.format != "pretty" && f.format != "json" {
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiStr); err != nil {
		return f, err
	}
	if f.diskCache, err = cmd.Flags().GetBool("disk-cache"); err != nil {
		return f, err
	}
	if f.withFixes, err = cmd.Flags().GetBool("with-fixes"); err != nil {
		return f, err
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, err
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, err
	}
	if f.config, err = cmd.Flags().GetString("config"); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}
	if f.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	return f, nil
}

// loadEngineOptions reads an explicit config file or walks up from the
// target looking for typograph.toml, falling back to the defaults.
func loadEngineOptions(target, configPath string) (engine.Options, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	startDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	opts, _, err := config.Discover(startDir)
	return opts, err
}

// buildCheckOptions discovers the scope config for the target and wires the
// optional disk cache.
func buildCheckOptions(target string, f checkFlags) (driver.CheckOptions, error) {
	var opts driver.CheckOptions
	var err error
	opts.Engine, err = loadEngineOptions(target, f.config)
	if err != nil {
		return opts, err
	}

	opts.MaxDiagnostics = f.maxDiag
	opts.Jobs = f.jobs
	opts.ConfigDigest = config.Digest(opts.Engine)
	if f.diskCache {
		opts.Cache, err = driver.OpenDiskCache("typograph")
		if err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	f, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := buildCheckOptions(target, f)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var fileSet *source.FileSet
	var results []driver.CheckDirResult

	if info.IsDir() {
		if shouldUseTUI(f.ui) && f.format == "pretty" {
			files, listErr := driver.ListSourceFiles(target)
			if listErr != nil {
				return listErr
			}
			fileSet, results, err = runCheckDirWithUI(cmd.Context(), "checking "+target, target, files, opts)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		var result driver.CheckDirResult
		fileSet, result, err = driver.CheckFile(target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		results = []driver.CheckDirResult{result}
	}

	total := diag.NewBag(0)
	for _, r := range results {
		total.Merge(r.Bag)
	}
	findings := total.Len()

	pathMode := diagfmt.PathModeAuto
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch f.format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			PathMode:  pathMode,
			ShowNotes: true,
			ShowFixes: f.withFixes,
		}
		for _, r := range results {
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
		}
		if !f.quiet {
			fmt.Fprintf(os.Stdout, "%d file(s) checked, %d finding(s)\n", len(results), findings)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
			IncludeFixes:     f.withFixes || f.preview,
			IncludePreviews:  f.preview,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[displayPath(fileSet, r, f.fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if code := checkExitCode(total); code != 0 {
		os.Exit(code)
	}
	return nil
}

// checkExitCode maps the aggregated diagnostics to a process exit code:
// 2 when any file failed to load, 1 when there are findings, 0 otherwise.
func checkExitCode(total *diag.Bag) int {
	switch {
	case total.HasErrors():
		return 2
	case total.HasWarnings():
		return 1
	}
	return 0
}

func displayPath(fs *source.FileSet, r driver.CheckDirResult, fullPath bool) string {
	// Files that failed to load keep the zero FileID; show their raw path.
	if id, ok := fs.Lookup(r.Path); !ok || id != r.FileID {
		return r.Path
	}
	file := fs.Get(r.FileID)
	if file == nil {
		return r.Path
	}
	mode := "auto"
	if fullPath {
		mode = "absolute"
	}
	return file.FormatPath(mode, fs.BaseDir())
}
