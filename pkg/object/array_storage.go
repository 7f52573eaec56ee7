package object

import (
	"avm1core/pkg/gc"
	"avm1core/pkg/value"
)

// arrayMode discriminates ArrayStorage's two representations (spec.md §3,
// §4.3): a dense Vector for array-typed objects, or a Properties overlay
// (just a length) for non-array objects that still expose .length.
type arrayMode uint8

const (
	arrayModeProperties arrayMode = iota
	arrayModeVector
)

type arrayStorage struct {
	mode   arrayMode
	vector []value.Value // valid when mode == arrayModeVector
	length int           // valid when mode == arrayModeProperties
}

func (a *arrayStorage) len() int {
	switch a.mode {
	case arrayModeVector:
		return len(a.vector)
	default:
		return a.length
	}
}

func (a *arrayStorage) trace(visit func(*gc.Cell)) {
	if a.mode != arrayModeVector {
		return
	}
	for _, v := range a.vector {
		traceValue(v, visit)
	}
}
