package shared

// CopiedMsg reports a clipboard write attempt for a named payload.
type CopiedMsg struct {
	Label string
	Err   error
}

// ClipboardReadMsg carries pasted text for the diagnostics parser.
type ClipboardReadMsg struct {
	Text string
	Err  error
}

// EvidenceLoadedMsg carries one attachment read from disk.
type EvidenceLoadedMsg struct {
	CaseKey string
	Name    string
	Payload string // data: URI
	Size    int
	Err     error
}

// ExportDoneMsg reports a finished artifact write.
type ExportDoneMsg struct {
	Label string
	Path  string
	Err   error
}

// CloseDetailMsg returns from the case detail editor to the list.
type CloseDetailMsg struct{}

// CloseEnvMsg returns from the environment pane to the list.
type CloseEnvMsg struct{}
