package calccore

import "strconv"

// CellContext is the read interface a CompiledFormula evaluates against
// (spec.md §3): resolve a single cell, or enumerate a rectangular range
// in row-major order. Implementations must yield Empty for missing
// cells within a range rather than skipping them, preserving
// cardinality (spec.md §9).
type CellContext interface {
	GetCell(ref string) CellValue
	GetRange(start, end string) []CellValue
}

const defaultRangeCacheSize = 256

// evalContext is the default CellContext: a read-through view over one
// Worksheet and optional SharedStringResolver, scoped to a single
// top-level evaluation (spec.md §3's "bound to the lifetime of a single
// evaluator invocation"). Its cell cache stabilizes repeated reads of the
// same reference within one evaluation; its range cache (an lruCache,
// adapted from the teacher's lru_cache.go) bounds memory when a formula
// touches many distinct ranges.
type evalContext struct {
	ws      Worksheet
	strings SharedStringResolver
	cells   map[string]CellValue
	ranges  *lruCache
}

// newEvalContext creates a fresh per-evaluation context. strings may be
// nil when the worksheet has no shared-string table.
func newEvalContext(ws Worksheet, strings SharedStringResolver, rangeCacheSize int) *evalContext {
	if rangeCacheSize <= 0 {
		rangeCacheSize = defaultRangeCacheSize
	}
	return &evalContext{
		ws:      ws,
		strings: strings,
		cells:   make(map[string]CellValue),
		ranges:  newLRUCache(rangeCacheSize),
	}
}

// GetCell resolves a single-cell reference to its typed value,
// stabilizing the result across repeated reads within this evaluation.
func (c *evalContext) GetCell(ref string) CellValue {
	key, ok := normalizeRef(ref)
	if !ok {
		return Err(ErrRef)
	}
	if v, hit := c.cells[key]; hit {
		return v
	}
	v := c.readCell(key)
	c.cells[key] = v
	return v
}

// GetRange yields values across the inclusive rectangle [start, end] in
// row-major order (spec.md §4.3, §8 boundary behaviors: "A1:A1" and
// "A1:B2" both valid).
func (c *evalContext) GetRange(start, end string) []CellValue {
	cacheKey := start + ":" + end
	if v, hit := c.ranges.Load(cacheKey); hit {
		return v
	}
	refs, ok := expandRange(start, end)
	if !ok {
		return []CellValue{Err(ErrRef)}
	}
	values := make([]CellValue, len(refs))
	for i, ref := range refs {
		values[i] = c.GetCell(ref)
	}
	c.ranges.Store(cacheKey, values)
	return values
}

func (c *evalContext) readCell(ref string) CellValue {
	record, ok := c.ws.Cell(ref)
	if !ok {
		return Empty
	}
	return cellRecordToValue(record, c.strings)
}

// normalizeRef validates a reference and strips its absolute markers,
// producing the canonical key used for both the read-through cache and
// the underlying Worksheet lookup.
func normalizeRef(ref string) (string, bool) {
	coord, ok := parseCellRef(ref)
	if !ok {
		return "", false
	}
	return cellRefText(coord), true
}

// cellRecordToValue converts a Worksheet's on-disk representation to a
// typed CellValue, per spec.md §6.
func cellRecordToValue(record CellRecord, strings SharedStringResolver) CellValue {
	switch record.DataType {
	case CellTypeEmpty:
		return Empty
	case CellTypeNumber:
		n, err := strconv.ParseFloat(record.RawText, 64)
		if err != nil {
			return Err(ErrValue)
		}
		return Number(n)
	case CellTypeText, CellTypeInlineString:
		return Text(record.RawText)
	case CellTypeSharedString:
		idx, err := strconv.Atoi(record.RawText)
		if err != nil || strings == nil {
			return Empty
		}
		s, ok := strings.Resolve(idx)
		if !ok {
			// Out-of-range shared-string index: treated as Empty
			// (spec.md §9 open question), never as raw index text.
			return Empty
		}
		return Text(s)
	case CellTypeBoolean:
		return Bool(record.RawText == "1" || caseFold(record.RawText) == "true")
	case CellTypeError:
		code, ok := ParseErrorCode(record.RawText)
		if !ok {
			return Err(ErrValue)
		}
		return Err(code)
	}
	return Empty
}
