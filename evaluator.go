package calccore

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EvaluatorOption configures an Evaluator at construction (spec.md §9
// "configuration surface"), following the functional-options pattern the
// teacher's File-level options use.
type EvaluatorOption func(*Evaluator)

// WithDebug enables per-evaluation debug logging, each line tagged with a
// uuid correlation id.
func WithDebug(enabled bool) EvaluatorOption {
	return func(e *Evaluator) { e.debug = enabled }
}

// WithRangeCacheSize overrides the per-evaluation range cache's capacity.
func WithRangeCacheSize(n int) EvaluatorOption {
	return func(e *Evaluator) { e.rangeCacheSize = n }
}

// WithLogger overrides the destination for debug output; the default
// writes to the standard library's log package.
func WithLogger(logger *log.Logger) EvaluatorOption {
	return func(e *Evaluator) { e.logger = logger }
}

// Statistics reports cumulative counters across every TryEvaluate call
// made through one Evaluator (spec.md §9).
type Statistics struct {
	Total          int64
	Successful     int64
	Failed         int64
	CompiledCount  int
	SupportedCount int
	AvgEvalMicros  float64
}

// Evaluator is the top-level entry point: compile-or-reuse a formula,
// bind it to a worksheet, and report the result (spec.md §3/§5). It owns
// the non-evicting compiled-formula cache and is safe for concurrent use
// by multiple callers, matching the teacher's File-level concurrency
// contract.
type Evaluator struct {
	registry       *FunctionRegistry
	compiler       *Compiler
	cache          *compiledCache
	debug          bool
	rangeCacheSize int
	logger         *log.Logger

	total      atomic.Int64
	successful atomic.Int64
	failed     atomic.Int64
	evalNanos  atomic.Int64
}

// NewEvaluator builds an Evaluator bound to registry, applying any
// options. A nil registry is replaced with NewBuiltinRegistry().
func NewEvaluator(registry *FunctionRegistry, opts ...EvaluatorOption) *Evaluator {
	if registry == nil {
		registry = NewBuiltinRegistry()
	}
	e := &Evaluator{
		registry:       registry,
		compiler:       NewCompiler(registry),
		cache:          newCompiledCache(),
		rangeCacheSize: defaultRangeCacheSize,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TryEvaluate evaluates the formula held by cell on worksheet, compiling
// it on first sight and reusing the compiled form on every later call
// (spec.md §5). A cell with no formula text is a ParserError; a panic
// raised by a misbehaving registered function is recovered and reported
// the same way rather than propagating.
func (e *Evaluator) TryEvaluate(worksheet Worksheet, cell string) (CellValue, error) {
	return e.tryEvaluate(worksheet, nil, cell)
}

// TryEvaluateWithStrings is TryEvaluate with an explicit shared-string
// table, used when the worksheet stores text out-of-line (spec.md §6).
func (e *Evaluator) TryEvaluateWithStrings(worksheet Worksheet, strings SharedStringResolver, cell string) (CellValue, error) {
	return e.tryEvaluate(worksheet, strings, cell)
}

func (e *Evaluator) tryEvaluate(worksheet Worksheet, strings SharedStringResolver, cell string) (result CellValue, err error) {
	correlationID := uuid.New()
	started := time.Now()
	e.total.Add(1)

	defer func() {
		if r := recover(); r != nil {
			err = newParserError(-1, "panic during evaluation: %v", r)
			result = CellValue{}
		}
		e.evalNanos.Add(time.Since(started).Nanoseconds())
		if err != nil {
			e.failed.Add(1)
		} else {
			e.successful.Add(1)
		}
		if e.debug {
			e.logger.Printf("eval id=%s cell=%s err=%v elapsed=%s", correlationID, cell, err, time.Since(started))
		}
	}()

	record, ok := worksheet.Cell(cell)
	if !ok || record.FormulaText == nil {
		return CellValue{}, newParserError(-1, "cell %s has no formula", cell)
	}
	text := *record.FormulaText

	compiled, _, compileErr := e.cache.getOrCompile(text, func() (CompiledFormula, error) {
		node, parseErr := Parse(text)
		if parseErr != nil {
			return nil, parseErr
		}
		return e.compiler.Compile(node)
	})
	if compileErr != nil {
		return CellValue{}, compileErr
	}

	ctx := newEvalContext(worksheet, strings, e.rangeCacheSize)
	return compiled(ctx), nil
}

// IsFunctionSupported delegates to the bound registry.
func (e *Evaluator) IsFunctionSupported(name string) bool {
	return e.registry.IsSupported(name)
}

// SupportedFunctions delegates to the bound registry.
func (e *Evaluator) SupportedFunctions() []string {
	return e.registry.SupportedFunctions()
}

// GetStatistics snapshots cumulative counters (spec.md §9).
func (e *Evaluator) GetStatistics() Statistics {
	total := e.total.Load()
	var avg float64
	if total > 0 {
		avg = float64(e.evalNanos.Load()) / float64(total) / 1000
	}
	return Statistics{
		Total:          total,
		Successful:     e.successful.Load(),
		Failed:         e.failed.Load(),
		CompiledCount:  e.cache.size(),
		SupportedCount: len(e.registry.SupportedFunctions()),
		AvgEvalMicros:  avg,
	}
}

// String renders a Statistics value as a one-line summary, used by debug
// logging and diagnostics.
func (s Statistics) String() string {
	rate := 0.0
	if s.Total > 0 {
		rate = float64(s.Successful) / float64(s.Total) * 100
	}
	return fmt.Sprintf("total=%d ok=%d failed=%d rate=%.1f%% compiled=%d avg=%.1fus",
		s.Total, s.Successful, s.Failed, rate, s.CompiledCount, s.AvgEvalMicros)
}
