package producer

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/llehouerou/genwaves/internal/params"
)

// Gradient derives two display colours from the track's latent seed.
// Tracks without an input list get hues from their title.
func Gradient(p params.OutputParams) [2]colorful.Color {
	var h1, h2 float64
	if n := len(p.InputList); n > 0 {
		half := max(n/2, 1)
		h1 = normalCDF(mean(p.InputList[:half])*math.Sqrt(float64(half))) * 360
		rest := p.InputList[half:]
		if len(rest) == 0 {
			rest = p.InputList
		}
		h2 = normalCDF(mean(rest)*math.Sqrt(float64(len(rest)))) * 360
	} else {
		h := fnv.New32a()
		h.Write([]byte(p.Title))
		sum := h.Sum32()
		h1 = float64(sum % 360)
		h2 = math.Mod(h1+90, 360)
	}
	return [2]colorful.Color{
		colorful.Hcl(h1, 0.5, 0.65).Clamped(),
		colorful.Hcl(h2, 0.5, 0.65).Clamped(),
	}
}

// Blend returns the colour at position t (0..1) along the gradient.
func Blend(g [2]colorful.Color, t float64) colorful.Color {
	return g[0].BlendLuv(g[1], min(max(t, 0), 1)).Clamped()
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func pow2(x float64) float64 {
	return math.Exp2(x)
}
