package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"provcheck/internal/analysis"
	"provcheck/internal/diag"
	"provcheck/internal/source"
	"provcheck/internal/syntax"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache stores per-file analysis results on disk, keyed by content
// hash, rule digest and schema version. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of analysing one file.
type DiskPayload struct {
	Schema       uint16
	Path         string
	ConfigDigest string

	// Failure is set instead of Diagnostics when the file was unparsable.
	// It carries no path: the key does not include one.
	Failure     *CachedFailure
	Diagnostics []CachedDiagnostic
}

// CachedFailure is a syntax error without the file it came from.
type CachedFailure struct {
	Kind  string
	Start uint32
	End   uint32
	Msg   string
}

type CachedDiagnostic struct {
	Severity   uint8
	Code       uint16
	Message    string
	Line       uint32
	Start      uint32
	End        uint32
	Fixability uint8
	Notes      []CachedNote
	Fixes      []CachedFix
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type CachedFix struct {
	ID            string
	Title         string
	Kind          uint8
	Applicability uint8
	IsPreferred   bool
	Edits         []CachedEdit
}

type CachedEdit struct {
	Start   uint32
	End     uint32
	Line    uint32
	NewText string
	OldText string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache. The file is
// written to a temporary name and renamed into place.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload of
// another schema version counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func diagnosticsToPayload(path, configDigest string, diags []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		Path:         path,
		ConfigDigest: configDigest,
		Diagnostics:  make([]CachedDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		cd := CachedDiagnostic{
			Severity:   uint8(d.Severity),
			Code:       uint16(d.Code),
			Message:    d.Message,
			Line:       d.Line,
			Start:      d.Primary.Start,
			End:        d.Primary.End,
			Fixability: uint8(d.Fixability),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{
				ID:            f.ID,
				Title:         f.Title,
				Kind:          uint8(f.Kind),
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
				Edits:         make([]CachedEdit, 0, len(f.Edits)),
			}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{
					Start:   e.Span.Start,
					End:     e.Span.End,
					Line:    e.Line,
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToDiagnostics rebuilds diagnostics with spans pointing into file.
func payloadToDiagnostics(payload *DiskPayload, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity:   diag.Severity(cd.Severity),
			Code:       diag.Code(cd.Code),
			Message:    cd.Message,
			Line:       cd.Line,
			Primary:    source.Span{File: file, Start: cd.Start, End: cd.End},
			Fixability: diag.Fixability(cd.Fixability),
		}
		for _, cn := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: file, Start: cn.Start, End: cn.End}, Msg: cn.Msg})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
			}
			for _, ce := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{
					Span:    source.Span{File: file, Start: ce.Start, End: ce.End},
					Line:    ce.Line,
					NewText: ce.NewText,
					OldText: ce.OldText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		out = append(out, d)
	}
	return out
}

func failureToPayload(path, configDigest string, se *syntax.Error) *DiskPayload {
	return &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		Path:         path,
		ConfigDigest: configDigest,
		Failure:      &CachedFailure{Kind: se.Kind, Start: se.Span.Start, End: se.Span.End, Msg: se.Msg},
	}
}

// payloadToFailure rebuilds the error analysis.Run would have returned
// for file.
func payloadToFailure(payload *DiskPayload, file *source.File) error {
	cf := payload.Failure
	se := &syntax.Error{Kind: cf.Kind, Span: source.Span{File: file.ID, Start: cf.Start, End: cf.End}, Msg: cf.Msg}
	return analysis.FileError(file, se)
}
