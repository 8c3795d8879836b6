package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// FFT transforms data, zero-padded to the next power of two, with an
// in-place iterative radix-2 pass.
func FFT(data []float64) []complex128 {
	if len(data) == 0 {
		return nil
	}
	n := nextPow2(len(data))
	out := make([]complex128, n)
	for i, v := range data {
		out[i] = complex(v, 0)
	}
	if n == 1 {
		return out
	}

	shift := bits.UintSize - bits.TrailingZeros(uint(n))
	for i := range out {
		if j := int(bits.Reverse(uint(i)) >> shift); i < j {
			out[i], out[j] = out[j], out[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := start; k < start+half; k++ {
				t := w * out[k+half]
				out[k], out[k+half] = out[k]+t, out[k]-t
				w *= step
			}
		}
	}
	return out
}

// PowerSpectrum returns the magnitude of the first half of the padded
// spectrum.
func PowerSpectrum(data []float64) []float64 {
	spec := FFT(data)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period, in ticks, of the strongest non-DC
// component of series, sampled every sampleEvery ticks. It returns 0 when
// the series is too short or flat.
func DominantPeriod(series []float64, sampleEvery int) float64 {
	if len(series) < 4 {
		return 0
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-9 {
		return 0
	}
	n := nextPow2(len(series))
	return float64(n) / float64(bestK) * float64(max(sampleEvery, 1))
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
