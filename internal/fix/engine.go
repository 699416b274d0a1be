package fix

import (
	"errors"
	"fmt"
	"sort"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// AllowUnsafe lets Once and All pick fixes that need manual review.
	AllowUnsafe bool
	// DryRun computes the new contents without writing them.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Line          uint32
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix is a fix that was not applied, with the reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one modified file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(f diag.Fix, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics according to opts and applies them
// line by line. A fix is applied entirely or not at all: if any of its lines
// was already rewritten by another fix, or no longer holds the text the fix
// was planned against, the fix is skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].diag, candidates[j].diag
		if a.Primary.File != b.Primary.File {
			return a.Primary.File < b.Primary.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return candidates[i].order < candidates[j].order
	})

	selected := selectCandidates(candidates, opts, result)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	files := make(map[source.FileID]*fileState)
	for _, cand := range selected {
		if reason := stage(fs, files, cand, opts.DryRun); reason != "" {
			result.skip(cand.fix, reason)
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Line:          cand.diag.Line,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   primaryPath(fs, cand.diag.Primary.File),
			EditCount:     len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for _, st := range files {
		if st.edits == 0 {
			continue
		}
		content := st.content()
		if !opts.DryRun {
			if err := writeFile(st.file, content); err != nil {
				return result, err
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      st.file.FormatPath("relative", fs.BaseDir()),
			EditCount: st.edits,
			Content:   content,
		})
	}
	sort.Slice(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	return result, nil
}

// gatherCandidates turns every fix with edits into a candidate. Fixes
// without an ID get one derived from the code, file and line; a repeated ID
// is skipped.
func gatherCandidates(diagnostics []diag.Diagnostic, result *ApplyResult) []candidate {
	var cands []candidate
	seen := make(map[string]bool)
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			switch {
			case len(f.Edits) == 0:
				result.skip(f, "fix has no edits")
				continue
			case f.ID == "":
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Line, idx)
			}
			if seen[f.ID] {
				result.skip(f, "duplicate fix id")
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands
}

func allowed(f diag.Fix, opts ApplyOptions) bool {
	return f.Applicability == diag.FixApplicabilityAlwaysSafe || opts.AllowUnsafe
}

func selectCandidates(candidates []candidate, opts ApplyOptions, result *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}
			}
		}
		result.Skipped = append(result.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
	case ApplyModeAll:
		var selected []candidate
		for _, cand := range candidates {
			if allowed(cand.fix, opts) {
				selected = append(selected, cand)
			} else {
				result.skip(cand.fix, "applicability is "+cand.fix.Applicability.String())
			}
		}
		return selected
	case ApplyModeOnce:
		for _, cand := range candidates {
			if allowed(cand.fix, opts) {
				return []candidate{cand}
			}
		}
		result.Skipped = append(result.Skipped, SkippedFix{Reason: "only fixes that need manual review are available"})
	}
	return nil
}

// stage validates every edit of cand against the files it touches and, when
// all pass, commits them. It returns the skip reason otherwise.
func stage(fs *source.FileSet, files map[source.FileID]*fileState, cand candidate, dryRun bool) string {
	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range cand.fix.Edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	for id, edits := range byFile {
		st, ok := files[id]
		if !ok {
			file := fs.Get(id)
			if file == nil {
				return "unknown file"
			}
			st = newFileState(file)
			files[id] = st
		}
		if st.file.Flags&source.FileVirtual != 0 && !dryRun {
			return "target file is virtual"
		}
		if reason := st.check(edits, fs.BaseDir()); reason != "" {
			return reason
		}
	}
	for id, edits := range byFile {
		files[id].commit(cand.fix.ID, edits)
	}
	return ""
}

func primaryPath(fs *source.FileSet, id source.FileID) string {
	file := fs.Get(id)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
