package diag

import "strings"

// Severity ranks diagnostics; higher is worse.
type Severity uint8

const (
	// SevWarning is for forward-compatibility and style advisories.
	SevWarning Severity = iota + 1
	// SevError is for contract violations the author must fix.
	SevError
)

var severityLabels = [...]string{SevWarning: "warning", SevError: "error"}

// Label is the lower-case form used by short and machine-readable output.
func (s Severity) Label() string {
	if int(s) < len(severityLabels) && severityLabels[s] != "" {
		return severityLabels[s]
	}
	return "unknown"
}

func (s Severity) String() string { return strings.ToUpper(s.Label()) }
