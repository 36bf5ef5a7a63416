package ports

// Console is the line-oriented terminal the operator types into.
type Console interface {
	// ReadLine blocks for the next input line, without its line terminator.
	// Failures that may succeed on retry wrap domain.ErrTransientIO; end of
	// input is domain.ErrInputClosed.
	ReadLine() (string, error)
	// Write prints s as-is.
	Write(s string) error
}
