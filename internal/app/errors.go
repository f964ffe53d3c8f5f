package app

// UsageError marks a request that is syntactically valid but semantically
// wrong for the selected mode, such as asking graph mode to render an
// artifact. The CLI maps it onto the usage exit code.
type UsageError struct {
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}
