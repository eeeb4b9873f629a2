package calccore

// builtins.go ships a small reference function library, just enough to
// run spec.md §8's seed scenarios. spec.md §1 places "the built-in
// function library (hundreds of ... functions)" out of scope, naming
// only the registry/call protocol (registry.go) as core; production
// deployments register the full library externally through
// FunctionRegistryBuilder before constructing an Evaluator.

// NewBuiltinRegistry builds the reference registry used by default when
// no external function library is supplied.
func NewBuiltinRegistry() *FunctionRegistry {
	b := NewFunctionRegistryBuilder()
	b.Register("SUM", FunctionFunc(builtinSum))
	b.Register("AVERAGE", FunctionFunc(builtinAverage))
	b.Register("COUNT", FunctionFunc(builtinCount))
	b.Register("COUNTA", FunctionFunc(builtinCountA))
	b.Register("MIN", FunctionFunc(builtinMin))
	b.Register("MAX", FunctionFunc(builtinMax))
	b.Register("IF", FunctionFunc(builtinIf))
	b.Register("NOT", FunctionFunc(builtinNot))
	b.Register("AND", FunctionFunc(builtinAnd))
	b.Register("OR", FunctionFunc(builtinOr))
	b.Register("RANK", FunctionFunc(builtinRank))
	b.Register("CONCATENATE", FunctionFunc(builtinConcatenate))
	return b.Build()
}

// numericValues extracts the numeric values from args, skipping Empty,
// Text, and Bool entries (the common spreadsheet convention for
// range-based aggregation), and propagates the first Error encountered.
func numericValues(args []CellValue) ([]float64, *CellValue) {
	var out []float64
	for _, v := range args {
		if v.IsError() {
			errVal := v
			return nil, &errVal
		}
		if v.Kind() == ValueNumber {
			out = append(out, v.RawNumber())
		}
	}
	return out, nil
}

func builtinSum(_ CellContext, args []CellValue) CellValue {
	nums, errVal := numericValues(args)
	if errVal != nil {
		return *errVal
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return Number(sum)
}

func builtinAverage(_ CellContext, args []CellValue) CellValue {
	nums, errVal := numericValues(args)
	if errVal != nil {
		return *errVal
	}
	if len(nums) == 0 {
		return Err(ErrDiv0)
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return Number(sum / float64(len(nums)))
}

func builtinCount(_ CellContext, args []CellValue) CellValue {
	nums, errVal := numericValues(args)
	if errVal != nil {
		return *errVal
	}
	return Number(float64(len(nums)))
}

func builtinCountA(_ CellContext, args []CellValue) CellValue {
	count := 0
	for _, v := range args {
		if v.IsError() {
			errVal := v
			return errVal
		}
		if v.Kind() != ValueEmpty {
			count++
		}
	}
	return Number(float64(count))
}

func builtinMin(_ CellContext, args []CellValue) CellValue {
	nums, errVal := numericValues(args)
	if errVal != nil {
		return *errVal
	}
	if len(nums) == 0 {
		return Number(0)
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n < min {
			min = n
		}
	}
	return Number(min)
}

func builtinMax(_ CellContext, args []CellValue) CellValue {
	nums, errVal := numericValues(args)
	if errVal != nil {
		return *errVal
	}
	if len(nums) == 0 {
		return Number(0)
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n > max {
			max = n
		}
	}
	return Number(max)
}

// toBoolean projects a CellValue to bool for logical functions: Number
// is truthy when non-zero, Bool is itself, Text must spell TRUE/FALSE,
// Empty is false, Error propagates.
func toBoolean(v CellValue) (bool, *CellValue) {
	switch v.Kind() {
	case ValueBool:
		return v.RawBool(), nil
	case ValueNumber:
		return v.RawNumber() != 0, nil
	case ValueEmpty:
		return false, nil
	case ValueText:
		switch caseFold(v.RawText()) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		errVal := Err(ErrValue)
		return false, &errVal
	case ValueErrorKind:
		errVal := v
		return false, &errVal
	}
	errVal := Err(ErrValue)
	return false, &errVal
}

func builtinIf(_ CellContext, args []CellValue) CellValue {
	if len(args) == 0 {
		return Err(ErrNA)
	}
	cond, errVal := toBoolean(args[0])
	if errVal != nil {
		return *errVal
	}
	if cond {
		if len(args) > 1 {
			return args[1]
		}
		return Bool(true)
	}
	if len(args) > 2 {
		return args[2]
	}
	return Bool(false)
}

func builtinNot(_ CellContext, args []CellValue) CellValue {
	if len(args) != 1 {
		return Err(ErrNA)
	}
	v, errVal := toBoolean(args[0])
	if errVal != nil {
		return *errVal
	}
	return Bool(!v)
}

func builtinAnd(_ CellContext, args []CellValue) CellValue {
	result := true
	for _, a := range args {
		v, errVal := toBoolean(a)
		if errVal != nil {
			return *errVal
		}
		result = result && v
	}
	return Bool(result)
}

func builtinOr(_ CellContext, args []CellValue) CellValue {
	result := false
	for _, a := range args {
		v, errVal := toBoolean(a)
		if errVal != nil {
			return *errVal
		}
		result = result || v
	}
	return Bool(result)
}

// builtinRank implements the two-argument form RANK(number, range),
// ranking in descending order (Excel's default order=0): 1 is the
// largest value in range.
func builtinRank(_ CellContext, args []CellValue) CellValue {
	if len(args) < 2 {
		return Err(ErrNA)
	}
	if args[0].IsError() {
		return args[0]
	}
	number, errVal := args[0].ToNumber()
	if errVal != nil {
		return *errVal
	}
	nums, errVal := numericValues(args[1:])
	if errVal != nil {
		return *errVal
	}
	rank := 1
	found := false
	for _, n := range nums {
		if n == number {
			found = true
		}
		if n > number {
			rank++
		}
	}
	if !found {
		return Err(ErrNA)
	}
	return Number(float64(rank))
}

func builtinConcatenate(_ CellContext, args []CellValue) CellValue {
	var out string
	for _, a := range args {
		t, errVal := a.ToText()
		if errVal != nil {
			return *errVal
		}
		out += t
	}
	return Text(out)
}
