package diag

// Reporter is the minimal contract for receiving diagnostics from the
// pipeline stages. Implementations: BagReporter (stores into a Bag),
// NopReporter (drops everything).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores reported diagnostics in a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter ignores everything passed to it.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
