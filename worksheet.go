package calccore

// CellDataType tags the on-disk representation of a cell's raw value
// (spec.md §6), distinct from CellValue which is the typed result of
// formula evaluation.
type CellDataType uint8

const (
	CellTypeEmpty CellDataType = iota
	CellTypeNumber
	CellTypeText
	CellTypeSharedString
	CellTypeInlineString
	CellTypeBoolean
	CellTypeError
)

// CellRecord is the worksheet cursor's view of one cell (spec.md §6).
// FormulaText is nil for a cell with no formula; an empty-but-non-nil
// string distinguishes "=" (a formula with no body) from "no formula at
// all" (spec.md §8 boundary behaviors).
type CellRecord struct {
	Ref         string
	DataType    CellDataType
	RawText     string
	FormulaText *string
}

// Worksheet is the external collaborator contract this core consumes
// (spec.md §6): enumerate cells, read their typed raw value and formula
// text, and accept evaluated write-back. The core never owns worksheet
// storage; the xlsx/ods reader/writer that materializes one is named
// out of scope by spec.md §1.
type Worksheet interface {
	// Cells enumerates every populated cell, in the worksheet's own
	// stable order.
	Cells() []CellRecord
	// Cell resolves a single reference, reporting false if the cell has
	// never been populated.
	Cell(ref string) (CellRecord, bool)
	// WriteBack stores an evaluated result using the mapping of
	// spec.md §6 ("Write-back"); callers pre-convert via WriteBackRecord.
	WriteBack(ref string, record CellRecord) error
}

// SharedStringResolver resolves a shared-string table index to its text
// (spec.md §6). Implementations decide how an out-of-range index behaves;
// this core treats it as Empty (spec.md §9 open question), never as raw
// index text.
type SharedStringResolver interface {
	Resolve(index int) (string, bool)
}

// WriteBackRecord converts an evaluated CellValue to the CellRecord a
// Worksheet should persist, following spec.md §6's mapping exactly.
// Empty results in the zero CellRecord with DataType CellTypeEmpty; the
// caller's WriteBack is expected to treat that as a no-op, per spec.
func WriteBackRecord(v CellValue) CellRecord {
	switch v.Kind() {
	case ValueNumber:
		return CellRecord{DataType: CellTypeNumber, RawText: formatNumber(v.RawNumber())}
	case ValueText:
		return CellRecord{DataType: CellTypeText, RawText: v.RawText()}
	case ValueBool:
		if v.RawBool() {
			return CellRecord{DataType: CellTypeBoolean, RawText: "1"}
		}
		return CellRecord{DataType: CellTypeBoolean, RawText: "0"}
	case ValueErrorKind:
		return CellRecord{DataType: CellTypeError, RawText: v.ErrorCode().String()}
	}
	return CellRecord{DataType: CellTypeEmpty}
}
