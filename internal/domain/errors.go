package domain

// DomainError reports a violated domain invariant, such as an assessment
// whose category does not match its populated payload. Parse-time and
// schema-load failures use their own error types in the parser and
// schema packages.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }
