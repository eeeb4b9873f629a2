package calccore

import "fmt"

// ParserError covers lexical and syntactic failures, a formula cell with
// no formula text, and unexpected panics recovered during evaluation
// (spec.md §7). Position is a byte offset into the formula source, or -1
// when the failure has no single source location (e.g. a missing formula).
type ParserError struct {
	Message  string
	Position int
}

func (e *ParserError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("parser error: %s", e.Message)
	}
	return fmt.Sprintf("parser error at %d: %s", e.Position, e.Message)
}

func newParserError(pos int, format string, args ...any) *ParserError {
	return &ParserError{Message: fmt.Sprintf(format, args...), Position: pos}
}

// CompilationError covers semantic failures discovered while lowering an
// AST to a CompiledFormula: a Range reached outside a function argument,
// a SheetRef, or any other construct the compiler rejects (spec.md §4.3).
type CompilationError struct {
	Message string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error: %s", e.Message)
}

func newCompilationError(format string, args ...any) *CompilationError {
	return &CompilationError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedFunctionError reports a function name absent from the
// registry at compile time.
type UnsupportedFunctionError struct {
	Name string
}

func (e *UnsupportedFunctionError) Error() string {
	return fmt.Sprintf("unsupported function: %s", e.Name)
}

// CircularReferenceError carries the first detected dependency cycle as
// a chain of cell references where the last entry equals the first.
type CircularReferenceError struct {
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference: %v", e.Chain)
}

// InvalidReferenceError reports a malformed cell reference encountered
// at runtime (as opposed to a parse-time token error).
type InvalidReferenceError struct {
	Reference string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference: %s", e.Reference)
}
