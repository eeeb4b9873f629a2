package calccore

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foldCase = cases.Fold()

// ValueKind tags the variant held by a CellValue.
type ValueKind uint8

const (
	ValueEmpty ValueKind = iota
	ValueNumber
	ValueText
	ValueBool
	ValueErrorKind
)

// CellValue is the typed result of evaluating any sub-expression: an
// immutable tagged union over Empty/Number/Text/Bool/Error (spec.md §3).
// The zero value is Empty.
type CellValue struct {
	kind   ValueKind
	number float64
	text   string
	b      bool
	err    ErrorCode
}

// Empty is the CellValue held by a blank cell.
var Empty = CellValue{kind: ValueEmpty}

// Number constructs a numeric CellValue.
func Number(v float64) CellValue { return CellValue{kind: ValueNumber, number: v} }

// Text constructs a string CellValue.
func Text(v string) CellValue { return CellValue{kind: ValueText, text: v} }

// Bool constructs a boolean CellValue.
func Bool(v bool) CellValue { return CellValue{kind: ValueBool, b: v} }

// Err constructs an error CellValue carrying the given standard code.
func Err(code ErrorCode) CellValue { return CellValue{kind: ValueErrorKind, err: code} }

// Kind reports which variant this value holds.
func (v CellValue) Kind() ValueKind { return v.kind }

// IsError reports whether v holds an error code.
func (v CellValue) IsError() bool { return v.kind == ValueErrorKind }

// ErrorCode returns the carried error code; only meaningful when IsError().
func (v CellValue) ErrorCode() ErrorCode { return v.err }

// RawNumber returns the numeric payload; only meaningful when Kind() == ValueNumber.
func (v CellValue) RawNumber() float64 { return v.number }

// RawText returns the text payload; only meaningful when Kind() == ValueText.
func (v CellValue) RawText() string { return v.text }

// RawBool returns the boolean payload; only meaningful when Kind() == ValueBool.
func (v CellValue) RawBool() bool { return v.b }

// Equal reports value equality between two CellValues, following the
// same variant and payload.
func (v CellValue) Equal(other CellValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueEmpty:
		return true
	case ValueNumber:
		return v.number == other.number
	case ValueText:
		return v.text == other.text
	case ValueBool:
		return v.b == other.b
	case ValueErrorKind:
		return v.err == other.err
	}
	return false
}

// ToNumber projects a CellValue to float64 for arithmetic (spec.md §4.3):
// Number -> itself, Empty -> 0, Bool -> 0/1, Text -> parsed or #VALUE!,
// Error -> propagated.
func (v CellValue) ToNumber() (float64, *CellValue) {
	switch v.kind {
	case ValueNumber:
		return v.number, nil
	case ValueEmpty:
		return 0, nil
	case ValueBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case ValueText:
		trimmed := strings.TrimSpace(v.text)
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			errVal := Err(ErrValue)
			return 0, &errVal
		}
		return n, nil
	case ValueErrorKind:
		errVal := v
		return 0, &errVal
	}
	errVal := Err(ErrValue)
	return 0, &errVal
}

// ToText projects a CellValue to its canonical display string for the
// concat operator (spec.md §4.3): Empty -> "", Number -> canonical
// decimal, Bool -> TRUE/FALSE, Text -> itself, Error -> propagated.
func (v CellValue) ToText() (string, *CellValue) {
	switch v.kind {
	case ValueEmpty:
		return "", nil
	case ValueNumber:
		return formatNumber(v.number), nil
	case ValueText:
		return v.text, nil
	case ValueBool:
		if v.b {
			return "TRUE", nil
		}
		return "FALSE", nil
	case ValueErrorKind:
		errVal := v
		return "", &errVal
	}
	errVal := Err(ErrValue)
	return "", &errVal
}

// parseFormulaNumber parses a lexed numeric literal (§4.1 grammar:
// "[0-9]+(\.[0-9]+)?" or a leading ".") into a float64.
func parseFormulaNumber(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}

// formatNumber renders a float64 the way a spreadsheet cell would:
// integral values with no trailing decimal point, otherwise the shortest
// round-tripping decimal representation.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// caseFold returns the Unicode case-folded form of s, used for
// case-insensitive text comparison (spec.md §4.3 "case-insensitive
// collation") and for canonicalizing boolean/function-name literals.
func caseFold(s string) string {
	return foldCase.String(s)
}

// upperInvariant renders TRUE/FALSE and similar literals in the
// spreadsheet's canonical upper-case form, independent of locale.
func upperInvariant(s string) string {
	return cases.Upper(language.Und).String(s)
}
