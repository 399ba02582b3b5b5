package parser

import "fmt"

// ParseError reports a statement field that could not be converted into a
// normalized value. It is absorbed per line: the offending line is dropped
// and processing continues.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}
