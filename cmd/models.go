package cmd

// DiagnosticInfo is the external, JSON-facing shape of one diagnostic.
// Lines and columns are 1-based here; the pipeline's 0-based coordinates are
// an internal concern.
type DiagnosticInfo struct {
	File      string `json:"file"`
	Severity  string `json:"severity"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	Message   string `json:"message"`
	Rule      string `json:"rule"`
}

// CheckResult is the JSON envelope of a check run.
type CheckResult struct {
	Issues []DiagnosticInfo `json:"issues"`
	Count  int              `json:"count"`
}

type RuleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type ObjectFieldInfo struct {
	Object string `json:"object"`
	Field  string `json:"field"`
	Type   string `json:"type"`
}
