package script

import "fmt"

// SyntaxError reports source text that does not conform to the
// supported grammar. Line and Col are 1-based; Col may be 0 when the
// underlying parser did not provide one.
type SyntaxError struct {
	Path string
	Line int32
	Col  int32
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Path, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s: syntax error: %s", e.Path, e.Msg)
}

// UnsupportedStatementError reports a structurally valid statement
// with no translation rule.
type UnsupportedStatementError struct {
	Kind string
	At   Position
}

func (e *UnsupportedStatementError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported statement: %s", e.At.Line, e.At.Col, e.Kind)
}

// UnsupportedExpressionError reports a structurally valid expression
// with no rendering rule.
type UnsupportedExpressionError struct {
	Kind string
	At   Position
}

func (e *UnsupportedExpressionError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported expression: %s", e.At.Line, e.At.Col, e.Kind)
}
