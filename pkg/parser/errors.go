package parser

import "fmt"

// LexError reports a malformed token. The position anchors the start of the
// offending construct, not the character the scanner gave up on.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// ParseError reports an unexpected token or an unsupported construct.
// Expected describes what the grammar wanted at that position.
type ParseError struct {
	Expected string
	Found    string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s, found %q",
		e.Line, e.Column, e.Expected, e.Found)
}
