package diagfmt

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context is the number of source lines shown around the primary line.
	Context int8
	// Width truncates source lines; 0 leaves them whole.
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output. Max trims what is written, not the Bag.
type JSONOpts struct {
	PathMode         PathMode
	Max              int
	IncludePositions bool
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}
