package melody

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/melos-sonar/score"
)

// DefaultContourSteps is the number of equal-duration samples the step
// contour draws from the pitch curve, per the FANTASTIC feature set.
const DefaultContourSteps = 64

// StepContourResult holds the sampled pitch curve and the contour-shape
// features derived from it.
type StepContourResult struct {
	Curve           []float64 `json:"curve"`
	GlobalVariation float64   `json:"global_variation"` // std dev of the curve
	GlobalDirection float64   `json:"global_direction"` // correlation of the curve with time
	LocalVariation  float64   `json:"local_variation"`  // mean absolute step difference
}

// StepContour samples a melody's pitch curve at equal-duration steps,
// holding each pitch until the next onset.
type StepContour struct {
	Steps int
}

// NewStepContour creates a step contour sampler with the default step
// count.
func NewStepContour() *StepContour {
	return &StepContour{Steps: DefaultContourSteps}
}

// Compute samples the held-pitch curve over the melody's span and derives
// the contour features. At least two notes are required for a contour.
func (sc *StepContour) Compute(notes []score.Note) (*StepContourResult, error) {
	if len(notes) < 2 {
		return nil, fmt.Errorf("melody: step contour needs at least 2 notes, got %d", len(notes))
	}
	steps := sc.Steps
	if steps < 2 {
		steps = DefaultContourSteps
	}

	first := notes[0].Onset
	last := notes[len(notes)-1]
	end := last.Onset + last.Duration
	if end <= last.Onset {
		// no duration on the last note: hold it for the mean IOI
		end = last.Onset + (last.Onset-first)/float64(len(notes)-1)
	}

	curve := make([]float64, steps)
	ticks := make([]float64, steps)
	for k := 0; k < steps; k++ {
		t := first + float64(k)*(end-first)/float64(steps-1)
		// last note with onset at or before t
		i := sort.Search(len(notes), func(j int) bool { return notes[j].Onset > t })
		if i == 0 {
			i = 1
		}
		curve[k] = float64(notes[i-1].Pitch)
		ticks[k] = float64(k)
	}

	result := &StepContourResult{
		Curve:           curve,
		GlobalVariation: stat.StdDev(curve, nil),
	}
	if result.GlobalVariation > 0 {
		result.GlobalDirection = stat.Correlation(curve, ticks, nil)
	}
	diffSum := 0.0
	for k := 1; k < steps; k++ {
		diffSum += math.Abs(curve[k] - curve[k-1])
	}
	result.LocalVariation = diffSum / float64(steps-1)
	return result, nil
}
