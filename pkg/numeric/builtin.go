package numeric

import (
	"maps"
	"math"
	"slices"
)

var builtins = map[string]func(float64) float64{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"exp":    math.Exp,
	"log":    math.Log,
	"sqrt":   math.Sqrt,
	"abs":    math.Abs,
	"sign":   Sign,
	"square": func(x float64) float64 { return x * x },
	"cube":   func(x float64) float64 { return x * x * x },
}

// Builtin looks up a named single-variable function
func Builtin(name string) (func(float64) float64, bool) {
	f, ok := builtins[name]
	return f, ok
}

// BuiltinNames lists the available function names in sorted order
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
