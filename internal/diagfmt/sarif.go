package diagfmt

import (
	"io"
	"strings"

	"provcheck/internal/diag"
	"provcheck/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

// Sarif writes diagnostics as a SARIF 2.1.0 log with one run. Paths are
// relative to the FileSet base directory.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	rules := make([]sarifRule, 0)
	for _, c := range diag.Codes() {
		if c == diag.UnknownCode || c == diag.TagInfo || c == diag.ProvInfo {
			continue
		}
		rules = append(rules, sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}})
	}

	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: physical(d.Primary, d.Line, fs)}},
		}
		for _, fix := range d.Fixes {
			res.Fixes = append(res.Fixes, sarifFixOf(fix, fs))
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			CommandLine:         strings.Join(meta.InvocationArgs, " "),
			ExecutionSuccessful: true,
		}}
	}
	return EncodeJSON(w, sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}})
}

func sarifLevel(sev diag.Severity) string {
	if sev == diag.SevError {
		return "error"
	}
	return "warning"
}

func physical(span source.Span, line uint32, fs *source.FileSet) sarifPhysical {
	ph := sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: spanPath(span, fs, PathModeRelative)},
		Region:           sarifRegion{StartLine: line},
	}
	if fs.Get(span.File) == nil {
		return ph
	}
	start, end := fs.Resolve(span)
	if start.Line == line {
		ph.Region.StartColumn = start.Col
		ph.Region.EndLine = end.Line
		ph.Region.EndColumn = end.Col
	}
	return ph
}

func sarifFixOf(fix diag.Fix, fs *source.FileSet) sarifFix {
	out := sarifFix{Description: sarifMessage{Text: fix.Title}}
	byFile := map[string]int{}
	for _, edit := range fix.Edits {
		uri := spanPath(edit.Span, fs, PathModeRelative)
		idx, ok := byFile[uri]
		if !ok {
			idx = len(out.ArtifactChanges)
			byFile[uri] = idx
			out.ArtifactChanges = append(out.ArtifactChanges, sarifArtifactChange{ArtifactLocation: sarifArtifact{URI: uri}})
		}
		region := sarifRegion{StartLine: edit.Line}
		if fs.Get(edit.Span.File) != nil {
			start, end := fs.Resolve(edit.Span)
			region = sarifRegion{StartLine: start.Line, StartColumn: start.Col, EndLine: end.Line, EndColumn: end.Col}
		}
		out.ArtifactChanges[idx].Replacements = append(out.ArtifactChanges[idx].Replacements, sarifReplacement{
			DeletedRegion:   region,
			InsertedContent: sarifMessage{Text: edit.NewText},
		})
	}
	return out
}
