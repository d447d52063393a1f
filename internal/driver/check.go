// Package driver runs the extraction/evaluation pipeline over files and
// directories, turning accepted edits into diagnostics with attached fixes.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"typograph/internal/diag"
	"typograph/internal/engine"
	"typograph/internal/extract"
	"typograph/internal/source"
	"typograph/internal/typo"
)

// checkedExtensions are the file suffixes a directory walk picks up.
var checkedExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// CheckOptions configures a check run.
type CheckOptions struct {
	Engine         engine.Options
	MaxDiagnostics int
	Jobs           int   // 0 = GOMAXPROCS
	Cache          *DiskCache
	ConfigDigest   [32]byte // pairs with Cache
	Progress       Sink
}

// CheckDirResult holds one file's diagnostics within a directory check.
type CheckDirResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
}

func codeFor(kind typo.Kind) diag.Code {
	switch kind {
	case typo.Ellipsis:
		return diag.TypoEllipsis
	case typo.Emdash:
		return diag.TypoEmdash
	case typo.Endash:
		return diag.TypoEndash
	case typo.Quote:
		return diag.TypoQuote
	case typo.Apostrophe:
		return diag.TypoApostrophe
	case typo.Prime:
		return diag.TypoPrime
	}
	return diag.UnknownCode
}

func messageFor(edit typo.Edit, old string) string {
	return fmt.Sprintf("use %q instead of %q", edit.Replacement, old)
}

// CheckFileID evaluates one already-loaded file into a fresh Bag.
// Extractor warnings land in the same bag as typography findings.
func CheckFileID(fileSet *source.FileSet, id source.FileID, opts engine.Options, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	file := fileSet.Get(id)

	spans := extract.File(file, diag.BagReporter{Bag: bag})
	for _, sp := range spans {
		if bag.Len() >= int(bag.Cap()) {
			break
		}
		edits := engine.Evaluate(engine.Span{
			Kind: sp.Kind,
			Text: sp.Text,
			Base: sp.Base,
		}, opts, &sp.Facts)

		for _, edit := range edits {
			span := source.Span{File: id, Start: edit.Start, End: edit.End}
			old := string(file.Content[edit.Start:edit.End])
			d := diag.NewWarning(codeFor(edit.Kind), span, messageFor(edit, old)).
				WithFix(fmt.Sprintf("replace %q with %q", old, edit.Replacement), diag.TextEdit{
					Span:    span,
					NewText: edit.Replacement,
					OldText: old,
				})
			bag.Add(d)
		}
	}

	bag.Sort()
	return bag
}

// CheckFile loads and evaluates a single file.
func CheckFile(path string, opts CheckOptions) (*source.FileSet, CheckDirResult, error) {
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, CheckDirResult{}, err
	}
	bag := CheckFileID(fileSet, id, opts.Engine, maxDiag(opts))
	return fileSet, CheckDirResult{Path: path, FileID: id, Bag: bag}, nil
}

// ListSourceFiles returns every checkable file under dir, sorted for a
// deterministic processing order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == "node_modules" || strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range checkedExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func maxDiag(opts CheckOptions) int {
	if opts.MaxDiagnostics <= 0 {
		return 100
	}
	return opts.MaxDiagnostics
}

// CheckDir evaluates every checkable file under dir in parallel. Results
// come back in path order regardless of completion order.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload everything up front: FileSet mutation is not goroutine-safe,
	// workers only read from it.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CheckDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			send(opts.Progress, Event{Kind: EventFileStart, Path: path})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(maxDiag(opts))
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = CheckDirResult{Path: path, Bag: bag}
				send(opts.Progress, Event{Kind: EventFileDone, Path: path, Findings: bag.Len()})
				return nil
			}

			id := fileIDs[path]
			file := fileSet.Get(id)

			if cached, ok := opts.Cache.Get(opts.ConfigDigest, file); ok {
				bag := cached.toBag(id, maxDiag(opts))
				results[i] = CheckDirResult{Path: path, FileID: id, Bag: bag}
				send(opts.Progress, Event{Kind: EventFileDone, Path: path, Findings: bag.Len(), Cached: true})
				return nil
			}

			bag := CheckFileID(fileSet, id, opts.Engine, maxDiag(opts))
			opts.Cache.Put(opts.ConfigDigest, file, bag)

			results[i] = CheckDirResult{Path: path, FileID: id, Bag: bag}
			send(opts.Progress, Event{Kind: EventFileDone, Path: path, Findings: bag.Len()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}
