package calccore

// RecalculateSheet rebuilds worksheet's dependency graph, evaluates every
// formula cell in topological order, and writes each result back
// (spec.md §4 "full recalculation"). A CircularReferenceError aborts the
// whole recalculation; a per-cell evaluation failure instead writes back
// the corresponding error value and continues.
func (e *Evaluator) RecalculateSheet(worksheet Worksheet) error {
	graph := BuildDependencyGraph(worksheet)
	order, err := graph.GetEvaluationOrder()
	if err != nil {
		return err
	}

	for _, cell := range order {
		e.evaluateAndWriteBack(worksheet, cell)
	}
	if e.debug {
		e.logger.Printf("recalc full cells=%d", len(order))
	}
	return nil
}

// RecalculateDependents evaluates only the formula cells transitively
// affected by changedCells: the changed cells themselves (if they carry
// formulas) plus every formula cell that reads them, directly or
// indirectly (spec.md §4 "incremental recalculation"). Cells outside this
// dirty set are left untouched, per the "Subset restriction" invariant.
func (e *Evaluator) RecalculateDependents(worksheet Worksheet, changedCells ...string) error {
	graph := BuildDependencyGraph(worksheet)

	dirty := make(map[string]struct{})
	var queue []string
	for _, c := range changedCells {
		if norm, ok := normalizeRef(c); ok {
			if _, seen := dirty[norm]; !seen {
				dirty[norm] = struct{}{}
				queue = append(queue, norm)
			}
		}
	}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, dependent := range sortedKeys(graph.rdeps[cell]) {
			if _, seen := dirty[dependent]; seen {
				continue
			}
			dirty[dependent] = struct{}{}
			queue = append(queue, dependent)
		}
	}

	var dirtySlice []string
	for c := range dirty {
		if _, hasFormula := graph.formulaCells[c]; hasFormula {
			dirtySlice = append(dirtySlice, c)
		}
	}

	order, err := graph.GetEvaluationOrderSubset(dirtySlice)
	if err != nil {
		return err
	}

	for _, cell := range order {
		e.evaluateAndWriteBack(worksheet, cell)
	}
	if e.debug {
		e.logger.Printf("recalc incremental changed=%v dirty=%d", changedCells, len(order))
	}
	return nil
}

// evaluateAndWriteBack evaluates one formula cell and writes back either
// the resulting value or, on failure, the #VALUE!/#NAME? error the
// failure corresponds to. It never returns an error: a single bad
// formula must not abort a whole-sheet recalculation.
func (e *Evaluator) evaluateAndWriteBack(worksheet Worksheet, cell string) {
	v, err := e.TryEvaluate(worksheet, cell)
	if err != nil {
		v = Err(errorValueFor(err))
	}
	_ = worksheet.WriteBack(cell, WriteBackRecord(v))
}

// errorValueFor maps an evaluation failure to the error code written
// back to the cell: an unsupported function surfaces as #NAME?, anything
// else as #VALUE! (spec.md §7).
func errorValueFor(err error) ErrorCode {
	if _, ok := err.(*UnsupportedFunctionError); ok {
		return ErrName
	}
	return ErrValue
}
