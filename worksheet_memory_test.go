package calccore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryWorksheetSetAndCell(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetNumber("A1", 5)
	record, ok := ws.Cell("A1")
	assert.True(t, ok)
	assert.Equal(t, CellTypeNumber, record.DataType)
	assert.Equal(t, "5", record.RawText)
}

func TestMemoryWorksheetMissingCell(t *testing.T) {
	ws := NewMemoryWorksheet()
	_, ok := ws.Cell("Z9")
	assert.False(t, ok)
}

func TestMemoryWorksheetFormulaTextDistinguishesNoFormula(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetNumber("A1", 1)
	ws.SetFormula("B1", "=")

	a1, _ := ws.Cell("A1")
	b1, _ := ws.Cell("B1")
	assert.Nil(t, a1.FormulaText)
	assert.NotNil(t, b1.FormulaText)
	assert.Equal(t, "", *b1.FormulaText)
}

func TestMemoryWorksheetWriteBackPreservesFormula(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetFormula("A1", "=1+1")
	err := ws.WriteBack("A1", WriteBackRecord(Number(2)))
	assert.NoError(t, err)

	record, ok := ws.Cell("A1")
	assert.True(t, ok)
	assert.NotNil(t, record.FormulaText)
	assert.Equal(t, "2", record.RawText)
}

func TestMemorySharedStrings(t *testing.T) {
	s := &MemorySharedStrings{Strings: []string{"a", "b"}}
	v, ok := s.Resolve(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = s.Resolve(5)
	assert.False(t, ok)
}

func TestMemoryWorksheetCellsEnumeratesAll(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetNumber("A1", 1)
	ws.SetNumber("B1", 2)
	cells := ws.Cells()
	assert.Len(t, cells, 2)
}
