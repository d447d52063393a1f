package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typograph/internal/diag"
	"typograph/internal/extract"
	"typograph/internal/source"
)

var spansCmd = &cobra.Command{
	Use:   "spans [flags] <file>",
	Short: "Dump the checkable spans extracted from a file",
	Long:  "Show the string, template, attribute and text spans the checker would evaluate, with their gate facts. Mainly a debugging aid for scope configuration.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpans,
}

// spanJSON mirrors extract.Span for output.
type spanJSON struct {
	Kind      string   `json:"kind"`
	Base      uint32   `json:"base"`
	Line      uint32   `json:"line"`
	Col       uint32   `json:"col"`
	Text      string   `json:"text"`
	Calls     []string `json:"calls,omitempty"`
	Elements  []string `json:"elements,omitempty"`
	Tagged    bool     `json:"tagged,omitempty"`
	Tag       string   `json:"tag,omitempty"`
	Attribute string   `json:"attribute,omitempty"`
}

type spansOutput struct {
	File     string     `json:"file"`
	Spans    []spanJSON `json:"spans"`
	Warnings []string   `json:"warnings,omitempty"`
}

func runSpans(cmd *cobra.Command, args []string) error {
	path := args[0]

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fileSet.Get(id)

	bag := diag.NewBag(100)
	spans := extract.File(file, diag.BagReporter{Bag: bag})

	output := spansOutput{
		File:  path,
		Spans: make([]spanJSON, 0, len(spans)),
	}
	for _, sp := range spans {
		pos, _ := fileSet.Resolve(source.Span{File: id, Start: sp.Base, End: sp.Base})
		output.Spans = append(output.Spans, spanJSON{
			Kind:      sp.Kind.String(),
			Base:      sp.Base,
			Line:      pos.Line,
			Col:       pos.Col,
			Text:      sp.Text,
			Calls:     sp.Facts.Calls,
			Elements:  sp.Facts.Elements,
			Tagged:    sp.Facts.Tagged,
			Tag:       sp.Facts.Tag,
			Attribute: sp.Facts.Attribute,
		})
	}
	for _, d := range bag.Items() {
		output.Warnings = append(output.Warnings, fmt.Sprintf("%s: %s", d.Code.ID(), d.Message))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
