package diagnostics

// Key identifies a diagnostic that is reported at most once per instance
type Key string

const (
	// KeyUndeclaredTextFilter: default substring filter used on candidates
	// that were not declared textual and have no filter or field selector.
	KeyUndeclaredTextFilter Key = "undeclared-text-filter"
	// KeyUnboundValue: the committed-value write channel was never supplied.
	KeyUnboundValue Key = "unbound-value"
)

// DiagnosticEvent is published the first time a diagnostic fires
type DiagnosticEvent struct {
	Key     Key
	Source  string
	Message string
}
