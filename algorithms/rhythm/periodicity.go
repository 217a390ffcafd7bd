package rhythm

import (
	"fmt"
	"math"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// Periodicity estimates the dominant pulse of a symbolic onset sequence by
// autocorrelating its impulse train, in the spirit of Brown (1993),
// "Determination of the meter of musical scores by autocorrelation".

// PeriodicityParams controls the onset-grid resolution and the period
// window searched, all in the unit of the onsets themselves.
type PeriodicityParams struct {
	Resolution float64 `json:"resolution"` // grid step the onsets are quantized to
	MinPeriod  float64 `json:"min_period"`
	MaxPeriod  float64 `json:"max_period"`
}

// DefaultPeriodicityParams covers 30-300 BPM when onsets are in seconds.
func DefaultPeriodicityParams() PeriodicityParams {
	return PeriodicityParams{
		Resolution: 0.01,
		MinPeriod:  0.2,
		MaxPeriod:  2.0,
	}
}

// PeriodicityResult reports the strongest pulse period found, the BPM it
// implies when onsets are in seconds, and the normalized autocorrelation
// value backing it. A zero result means no periodicity could be measured.
type PeriodicityResult struct {
	Period     float64 `json:"period"`
	BPM        float64 `json:"bpm"`
	Confidence float64 `json:"confidence"`
}

// Periodicity runs FFT-based autocorrelation over a quantized onset
// impulse train.
type Periodicity struct {
	params PeriodicityParams
}

// NewPeriodicity creates an estimator with default parameters.
func NewPeriodicity() *Periodicity {
	return &Periodicity{params: DefaultPeriodicityParams()}
}

// NewPeriodicityWithParams creates an estimator with the given parameters.
func NewPeriodicityWithParams(params PeriodicityParams) (*Periodicity, error) {
	if params.Resolution <= 0 {
		return nil, fmt.Errorf("rhythm: resolution must be positive, got %v", params.Resolution)
	}
	if params.MinPeriod <= 0 || params.MaxPeriod <= params.MinPeriod {
		return nil, fmt.Errorf("rhythm: invalid period window [%v, %v]", params.MinPeriod, params.MaxPeriod)
	}
	return &Periodicity{params: params}, nil
}

// Estimate computes the dominant onset periodicity. Fewer than two onsets,
// or a window no lag falls into, yield a zero result rather than an error.
func (p *Periodicity) Estimate(onsets []float64) (*PeriodicityResult, error) {
	if len(onsets) < 2 {
		return &PeriodicityResult{}, nil
	}

	sorted := make([]float64, len(onsets))
	copy(sorted, onsets)
	sort.Float64s(sorted)

	res := p.params.Resolution
	span := sorted[len(sorted)-1] - sorted[0]
	if span <= 0 {
		return &PeriodicityResult{}, nil
	}

	// quantized impulse train
	n := int(math.Round(span/res)) + 1
	train := make([]float64, 2*n) // zero-padded for linear autocorrelation
	for _, onset := range sorted {
		idx := int(math.Round((onset - sorted[0]) / res))
		if idx >= 0 && idx < n {
			train[idx] = 1.0
		}
	}

	// autocorrelation via the power spectrum
	spectrum := fft.FFTReal(train)
	power := make([]complex128, len(spectrum))
	for i, c := range spectrum {
		power[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	auto := fft.IFFT(power)

	zeroLag := real(auto[0])
	if zeroLag <= 0 {
		return &PeriodicityResult{}, nil
	}

	lagMin := int(math.Round(p.params.MinPeriod / res))
	if lagMin < 1 {
		lagMin = 1
	}
	lagMax := int(math.Round(p.params.MaxPeriod / res))
	if lagMax > n-1 {
		lagMax = n - 1
	}
	if lagMin > lagMax {
		return &PeriodicityResult{}, nil
	}

	bestLag, bestValue := 0, 0.0
	for lag := lagMin; lag <= lagMax; lag++ {
		if v := real(auto[lag]) / zeroLag; v > bestValue {
			bestValue = v
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return &PeriodicityResult{}, nil
	}

	period := float64(bestLag) * res
	return &PeriodicityResult{
		Period:     period,
		BPM:        60.0 / period,
		Confidence: bestValue,
	}, nil
}
