package calccore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalContextGetCellMissingIsEmpty(t *testing.T) {
	ws := NewMemoryWorksheet()
	ctx := newEvalContext(ws, nil, defaultRangeCacheSize)
	assert.Equal(t, Empty, ctx.GetCell("A1"))
}

func TestEvalContextGetCellStripsAbsoluteMarkers(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetNumber("A1", 7)
	ctx := newEvalContext(ws, nil, defaultRangeCacheSize)
	assert.Equal(t, 7.0, ctx.GetCell("$A$1").RawNumber())
}

func TestEvalContextGetRangeRowMajor(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetNumber("A1", 1)
	ws.SetNumber("B1", 2)
	ws.SetNumber("A2", 3)
	ws.SetNumber("B2", 4)
	ctx := newEvalContext(ws, nil, defaultRangeCacheSize)
	values := ctx.GetRange("A1", "B2")
	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = v.RawNumber()
	}
	assert.Equal(t, []float64{1, 2, 3, 4}, nums)
}

func TestEvalContextSharedString(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.set("A1", CellRecord{DataType: CellTypeSharedString, RawText: "0"})
	strings := &MemorySharedStrings{Strings: []string{"hello"}}
	ctx := newEvalContext(ws, strings, defaultRangeCacheSize)
	v := ctx.GetCell("A1")
	assert.Equal(t, ValueText, v.Kind())
	assert.Equal(t, "hello", v.RawText())
}

func TestEvalContextSharedStringOutOfRangeIsEmpty(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.set("A1", CellRecord{DataType: CellTypeSharedString, RawText: "5"})
	strings := &MemorySharedStrings{Strings: []string{"hello"}}
	ctx := newEvalContext(ws, strings, defaultRangeCacheSize)
	assert.Equal(t, Empty, ctx.GetCell("A1"))
}

func TestEvalContextBoolean(t *testing.T) {
	ws := NewMemoryWorksheet()
	ws.SetBool("A1", true)
	ctx := newEvalContext(ws, nil, defaultRangeCacheSize)
	assert.True(t, ctx.GetCell("A1").RawBool())
}
