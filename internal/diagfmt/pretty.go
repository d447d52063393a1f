package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"typograph/internal/diag"
	"typograph/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.FgMagenta)
	fixColor     = color.New(color.FgGreen)
	gutterColor  = color.New(color.FgBlue)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Pretty renders diagnostics for terminals. Expects bag.Sort() upfront.
// For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline, then notes and,
// when ShowFixes is set, the suggested replacements.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeadline(w, fs, d.Primary, opts,
			paint(opts.Color, severityColor(d.Severity), d.Severity.String())+" "+
				paint(opts.Color, codeColor, d.Code.ID())+": "+d.Message)
		printContext(w, fs, d.Primary, opts)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				printHeadline(w, fs, note.Span, opts, "note: "+note.Msg)
				printContext(w, fs, note.Span, opts)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", paint(opts.Color, fixColor, "fix:"), fix.Title)
			}
		}
	}
}

func printHeadline(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, rest string) {
	f := fs.Get(span.File)
	if f == nil {
		fmt.Fprintf(w, "<unknown>: %s\n", rest)
		return
	}
	start, _ := fs.Resolve(span)
	path := f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())
	fmt.Fprintf(w, "%s:%d:%d: %s\n", path, start.Line, start.Col, rest)
}

// printContext shows the first line the span touches with an underline.
// The caret column accounts for the display width of tabs and wide runes.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil || span.Empty() {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\n")

	prefix := sliceCols(line, 1, start.Col)
	marked := line
	if end.Line == start.Line {
		marked = sliceCols(line, start.Col, end.Col)
	} else {
		marked = sliceCols(line, start.Col, 0)
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix)))
	markWidth := runewidth.StringWidth(expandTabs(marked))
	if markWidth < 1 {
		markWidth = 1
	}
	underline := "^" + strings.Repeat("~", markWidth-1)

	gutter := fmt.Sprintf("%5d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", paint(opts.Color, gutterColor, gutter), expandTabs(line))
	fmt.Fprintf(w, "%s%s%s\n",
		paint(opts.Color, gutterColor, strings.Repeat(" ", len(gutter)-2)+"| "),
		pad,
		paint(opts.Color, errorColor, underline))
}

// sliceCols cuts a line between 1-based byte columns. endCol of 0 means
// to the end of the line.
func sliceCols(line string, startCol, endCol uint32) string {
	s := int(startCol) - 1
	if s < 0 {
		s = 0
	}
	if s > len(line) {
		s = len(line)
	}
	e := len(line)
	if endCol > 0 && int(endCol)-1 < e {
		e = int(endCol) - 1
	}
	if e < s {
		e = s
	}
	return line[s:e]
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
