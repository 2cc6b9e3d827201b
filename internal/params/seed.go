package params

import (
	"math/rand/v2"
	"slices"
)

// NormalSource yields standard-normal samples. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

type globalSource struct{}

func (globalSource) NormFloat64() float64 { return rand.NormFloat64() }

// DefaultSource draws from the process-wide generator.
var DefaultSource NormalSource = globalSource{}

// NewSeed returns SeedLength independent standard-normal values.
func NewSeed(src NormalSource) []float64 {
	if src == nil {
		src = DefaultSource
	}
	seed := make([]float64, SeedLength)
	for i := range seed {
		seed[i] = src.NormFloat64()
	}
	return seed
}

// Variant perturbs each element of inputList by VariantScale times an
// independent standard-normal sample. The input is not modified.
func Variant(inputList []float64, src NormalSource) []float64 {
	if src == nil {
		src = DefaultSource
	}
	seed := slices.Clone(inputList)
	for i := range seed {
		seed[i] += VariantScale * src.NormFloat64()
	}
	return seed
}
