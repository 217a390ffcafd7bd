package harmony

import "fmt"

// Root estimation after Parncutt (1988), "Revision of Terhardt's
// psychoacoustical model of the root(s) of a musical chord": each pitch
// class of a sonority supports candidate roots below it at the perceptually
// strongest subsidiary intervals.

// rootSupport weights, indexed by the interval in semitones above the
// candidate root: unison, major second, major third, perfect fifth and
// minor seventh.
var rootSupport = map[int]float64{
	0:  10.0,
	2:  1.0,
	4:  3.0,
	7:  5.0,
	10: 2.0,
}

// RootEstimate is the outcome of a root computation: the winning pitch
// class and the full salience profile over all twelve candidates.
type RootEstimate struct {
	Root     int         `json:"root"`     // pitch class 0..11
	Salience [12]float64 `json:"salience"` // support per candidate root
}

// EstimateRoot computes the most salient root of a sonority given as MIDI
// key numbers (octave information is discarded). Ties resolve to the
// lowest pitch class.
func EstimateRoot(pitches []int) (*RootEstimate, error) {
	if len(pitches) == 0 {
		return nil, fmt.Errorf("harmony: cannot estimate the root of an empty sonority")
	}

	present := [12]bool{}
	for _, p := range pitches {
		present[((p%12)+12)%12] = true
	}

	est := &RootEstimate{}
	best := -1.0
	for root := 0; root < 12; root++ {
		support := 0.0
		for pc := 0; pc < 12; pc++ {
			if !present[pc] {
				continue
			}
			support += rootSupport[((pc-root)%12+12)%12]
		}
		est.Salience[root] = support
		if support > best {
			best = support
			est.Root = root
		}
	}
	return est, nil
}
