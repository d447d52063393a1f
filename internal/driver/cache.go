package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"typograph/internal/diag"
	"typograph/internal/source"
)

// Bump when cachedFile's layout changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists per-file diagnostics keyed by content hash and config
// digest, so re-checking an unchanged tree is mostly cache reads.
// A nil *DiskCache is a valid always-miss cache. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedEdit is one fix edit with file-relative offsets.
type cachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// cachedDiag is a Diagnostic flattened for serialization. Spans lose their
// FileID; toBag re-binds them to the freshly loaded file.
type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	FixTitle string
	Edits    []cachedEdit
}

type cachedFile struct {
	Schema uint16
	Diags  []cachedDiag
}

// OpenDiskCache initializes the cache under XDG_CACHE_HOME (or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "checks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache in an explicit directory (tests).
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(configDigest [32]byte, contentHash [32]byte) string {
	h := sha256.New()
	h.Write(configDigest[:])
	h.Write(contentHash[:])
	return filepath.Join(c.dir, hex.EncodeToString(h.Sum(nil))+".mp")
}

// Put serializes a bag's diagnostics for the file. Errors are swallowed:
// a broken cache write must never fail a check.
func (c *DiskCache) Put(configDigest [32]byte, file *source.File, bag *diag.Bag) {
	if c == nil || file.Flags&source.FileVirtual != 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachedFile{Schema: diskCacheSchemaVersion}
	for _, d := range bag.Items() {
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if len(d.Fixes) > 0 {
			cd.FixTitle = d.Fixes[0].Title
			for _, e := range d.Fixes[0].Edits {
				cd.Edits = append(cd.Edits, cachedEdit{
					Start:   e.Span.Start,
					End:     e.Span.End,
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
		}
		payload.Diags = append(payload.Diags, cd)
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return
	}

	p := c.pathFor(configDigest, file.Hash)
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return
	}
	if err := tmp.Close(); err != nil {
		return
	}
	_ = os.Rename(tmp.Name(), p)
}

// Get looks up cached diagnostics for the file's current content.
func (c *DiskCache) Get(configDigest [32]byte, file *source.File) (*cachedFile, bool) {
	if c == nil || file.Flags&source.FileVirtual != 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(configDigest, file.Hash))
	if err != nil {
		return nil, false
	}
	var payload cachedFile
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}
	return &payload, true
}

// toBag rebuilds diagnostics against the given file ID.
func (p *cachedFile) toBag(id source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diags {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: id, Start: cd.Start, End: cd.End}, cd.Message)
		if len(cd.Edits) > 0 {
			edits := make([]diag.TextEdit, 0, len(cd.Edits))
			for _, e := range cd.Edits {
				edits = append(edits, diag.TextEdit{
					Span:    source.Span{File: id, Start: e.Start, End: e.End},
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			d = d.WithFix(cd.FixTitle, edits...)
		}
		bag.Add(d)
	}
	return bag
}
