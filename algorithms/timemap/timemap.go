package timemap

import (
	"fmt"
	"sort"
)

// DefaultTempo is the tempo assumed when none has been given, in quarter
// notes per minute.
const DefaultTempo = 100.0

// Breakpoint ties one position on the seconds axis to one position on the
// quarter-note axis. Within a TimeMap, breakpoints are strictly increasing
// in both axes and the first breakpoint is always (0, 0).
type Breakpoint struct {
	Time float64 `json:"time"` // seconds
	Beat float64 `json:"beat"` // quarter notes
}

// TimeMap is a piecewise-linear conversion table between a quarter-note
// axis and a seconds axis. Tempo is constant between breakpoints; beyond
// the last breakpoint the trailing tempo holds indefinitely. Tempo changes
// may only be appended at or after the last breakpoint's beat: a TimeMap is
// built front to back, never edited retroactively.
//
// A TimeMap is not safe for concurrent use; each instance belongs to one
// goroutine.
type TimeMap struct {
	breakpoints   []Breakpoint
	trailingTempo float64 // quarter notes per second beyond the last breakpoint
}

// New creates a TimeMap with the given initial tempo in quarter notes per
// minute.
func New(qpm float64) (*TimeMap, error) {
	if qpm <= 0 {
		return nil, fmt.Errorf("timemap: initial tempo must be positive, got %v", qpm)
	}
	return &TimeMap{
		breakpoints:   []Breakpoint{{Time: 0, Beat: 0}},
		trailingTempo: qpm / 60.0,
	}, nil
}

// NewDefault creates a TimeMap at the default tempo of 100 quarter notes
// per minute. At this tempo BeatToTime(5.0) == 3.0.
func NewDefault() *TimeMap {
	tm, _ := New(DefaultTempo)
	return tm
}

// Breakpoints returns a copy of the breakpoint table.
func (tm *TimeMap) Breakpoints() []Breakpoint {
	bps := make([]Breakpoint, len(tm.breakpoints))
	copy(bps, tm.breakpoints)
	return bps
}

// Copy returns a fully independent TimeMap.
func (tm *TimeMap) Copy() *TimeMap {
	return &TimeMap{
		breakpoints:   tm.Breakpoints(),
		trailingTempo: tm.trailingTempo,
	}
}

// AppendTempoChange sets the tempo, in quarter notes per minute, taking
// effect at the given beat. The beat must not precede the last breakpoint's
// beat; a violation is reported as an error, never repaired by reordering.
// When the beat strictly exceeds the tail, a breakpoint is first appended
// at the time the beat falls under the tempo in effect so far; when it
// equals the tail, only the trailing tempo changes.
func (tm *TimeMap) AppendTempoChange(beat, qpm float64) error {
	if qpm <= 0 {
		return fmt.Errorf("timemap: tempo must be positive, got %v", qpm)
	}
	last := tm.breakpoints[len(tm.breakpoints)-1]
	if beat < last.Beat {
		return fmt.Errorf("timemap: tempo change at beat %v precedes last breakpoint at beat %v", beat, last.Beat)
	}
	if beat > last.Beat {
		t := tm.BeatToTime(beat)
		if t <= last.Time {
			// cannot happen with a positive trailing tempo; refuse a
			// coincident breakpoint rather than divide by zero later
			return fmt.Errorf("timemap: breakpoint at beat %v would coincide with the tail at time %v", beat, last.Time)
		}
		tm.breakpoints = append(tm.breakpoints, Breakpoint{Time: t, Beat: beat})
	}
	tm.trailingTempo = qpm / 60.0
	return nil
}

// BeatToTime converts a quarter-note position to seconds. Positions at or
// before zero are returned unchanged: before the piece starts the two axes
// are treated as identical and tempo is undefined.
func (tm *TimeMap) BeatToTime(beat float64) float64 {
	if beat <= 0 {
		return beat
	}
	bps := tm.breakpoints
	last := bps[len(bps)-1]
	if beat > last.Beat {
		return last.Time + (beat-last.Beat)/tm.trailingTempo
	}
	// first breakpoint with Beat >= beat; i >= 1 since beat > 0 = bps[0].Beat
	i := sort.Search(len(bps), func(k int) bool { return bps[k].Beat >= beat })
	lo, hi := bps[i-1], bps[i]
	frac := (beat - lo.Beat) / (hi.Beat - lo.Beat)
	return lo.Time + frac*(hi.Time-lo.Time)
}

// TimeToBeat converts seconds to a quarter-note position, the exact inverse
// of BeatToTime including the pre-zero and extrapolation conventions.
func (tm *TimeMap) TimeToBeat(time float64) float64 {
	if time <= 0 {
		return time
	}
	bps := tm.breakpoints
	last := bps[len(bps)-1]
	if time > last.Time {
		return last.Beat + (time-last.Time)*tm.trailingTempo
	}
	i := sort.Search(len(bps), func(k int) bool { return bps[k].Time >= time })
	lo, hi := bps[i-1], bps[i]
	frac := (time - lo.Time) / (hi.Time - lo.Time)
	return lo.Beat + frac*(hi.Beat-lo.Beat)
}

// TempoAtBeat returns the tempo in quarter notes per minute in effect at
// the given beat. A query exactly at a breakpoint returns the tempo of the
// segment starting there, not the one ending there.
func (tm *TimeMap) TempoAtBeat(beat float64) float64 {
	bps := tm.breakpoints
	last := bps[len(bps)-1]
	if len(bps) == 1 || beat >= last.Beat {
		return tm.trailingTempo * 60.0
	}
	// first breakpoint strictly past the query; the containing segment
	// starts at i-1
	i := sort.Search(len(bps), func(k int) bool { return bps[k].Beat > beat })
	if i == 0 {
		i = 1
	}
	lo, hi := bps[i-1], bps[i]
	return (hi.Beat - lo.Beat) / (hi.Time - lo.Time) * 60.0
}

// TempoAtTime returns the tempo in quarter notes per minute in effect at
// the given time in seconds, with the same breakpoint convention as
// TempoAtBeat.
func (tm *TimeMap) TempoAtTime(time float64) float64 {
	bps := tm.breakpoints
	last := bps[len(bps)-1]
	if len(bps) == 1 || time >= last.Time {
		return tm.trailingTempo * 60.0
	}
	i := sort.Search(len(bps), func(k int) bool { return bps[k].Time > time })
	if i == 0 {
		i = 1
	}
	lo, hi := bps[i-1], bps[i]
	return (hi.Beat - lo.Beat) / (hi.Time - lo.Time) * 60.0
}
