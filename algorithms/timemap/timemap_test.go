package timemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTempoConversion(t *testing.T) {
	tm := NewDefault()

	assert := assert.New(t)
	// 100 qpm: 5 quarters take 3 seconds
	assert.Equal(3.0, tm.BeatToTime(5.0))
	assert.Equal(5.0, tm.TimeToBeat(3.0))
	assert.Equal(100.0, tm.TempoAtBeat(0.0))
	assert.Equal(100.0, tm.TempoAtTime(10.0))
}

func TestPreZeroPositionsPassThrough(t *testing.T) {
	tm := NewDefault()

	assert := assert.New(t)
	assert.Equal(0.0, tm.BeatToTime(0.0))
	assert.Equal(-2.5, tm.BeatToTime(-2.5))
	assert.Equal(0.0, tm.TimeToBeat(0.0))
	assert.Equal(-1.25, tm.TimeToBeat(-1.25))
}

func TestAppendTempoChange(t *testing.T) {
	tm := NewDefault()
	err := tm.AppendTempoChange(4.0, 60.0)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]Breakpoint{{Time: 0, Beat: 0}, {Time: 2.4, Beat: 4}}, tm.Breakpoints())

	// 4 quarters at 100 qpm = 2.4 s, then 1 quarter at 60 qpm = 1.0 s
	assert.InDelta(3.4, tm.BeatToTime(5.0), 1e-12)
	assert.InDelta(5.0, tm.TimeToBeat(3.4), 1e-12)

	// interior interpolation on the first segment
	assert.InDelta(1.2, tm.BeatToTime(2.0), 1e-12)
	assert.InDelta(2.0, tm.TimeToBeat(1.2), 1e-12)
}

func TestTempoQueriesAtBreakpoints(t *testing.T) {
	tm := NewDefault()
	assert := assert.New(t)
	assert.NoError(tm.AppendTempoChange(4.0, 60.0))

	assert.InDelta(100.0, tm.TempoAtBeat(3.999), 1e-9)
	// exactly at the breakpoint the new tempo applies
	assert.InDelta(60.0, tm.TempoAtBeat(4.0), 1e-9)
	assert.InDelta(60.0, tm.TempoAtBeat(10.0), 1e-9)

	assert.InDelta(100.0, tm.TempoAtTime(1.0), 1e-9)
	assert.InDelta(60.0, tm.TempoAtTime(2.4), 1e-9)
	assert.InDelta(60.0, tm.TempoAtTime(100.0), 1e-9)
}

func TestTempoBeforePieceStart(t *testing.T) {
	assert := assert.New(t)
	// with no segments the trailing tempo covers everything
	assert.InDelta(100.0, NewDefault().TempoAtBeat(-1.0), 1e-9)

	tm := NewDefault()
	assert.NoError(tm.AppendTempoChange(4.0, 60.0))
	// pre-zero queries clamp to the first segment
	assert.InDelta(100.0, tm.TempoAtBeat(-1.0), 1e-9)
	assert.InDelta(100.0, tm.TempoAtTime(-1.0), 1e-9)
}

func TestRoundTripLaw(t *testing.T) {
	tm := NewDefault()
	assert := assert.New(t)
	assert.NoError(tm.AppendTempoChange(4.0, 60.0))
	assert.NoError(tm.AppendTempoChange(8.0, 120.0))

	// interior and extrapolated positions on both axes
	for _, beat := range []float64{0.5, 1.0, 3.999, 4.0, 5.5, 8.0, 12.0, 100.0} {
		assert.InDelta(beat, tm.TimeToBeat(tm.BeatToTime(beat)), 1e-9, "beat %v", beat)
	}
	for _, sec := range []float64{0.1, 2.4, 3.0, 6.4, 9.0, 50.0} {
		assert.InDelta(sec, tm.BeatToTime(tm.TimeToBeat(sec)), 1e-9, "time %v", sec)
	}
}

func TestAppendPreconditionViolations(t *testing.T) {
	tm := NewDefault()
	assert := assert.New(t)
	assert.NoError(tm.AppendTempoChange(4.0, 60.0))

	assert.Error(tm.AppendTempoChange(2.0, 90.0))
	assert.Error(tm.AppendTempoChange(4.0, 0.0))
	assert.Error(tm.AppendTempoChange(5.0, -10.0))

	// a failed append must not have touched the table
	assert.Len(tm.Breakpoints(), 2)
	assert.InDelta(60.0, tm.TempoAtBeat(4.0), 1e-9)
}

func TestAppendAtTailBeatRetunesWithoutBreakpoint(t *testing.T) {
	tm := NewDefault()
	assert := assert.New(t)
	assert.NoError(tm.AppendTempoChange(0.0, 60.0))

	assert.Len(tm.Breakpoints(), 1)
	assert.Equal(1.0, tm.BeatToTime(1.0))
	assert.InDelta(60.0, tm.TempoAtBeat(0.0), 1e-9)
}

func TestCopyIsIndependent(t *testing.T) {
	tm := NewDefault()
	assert := assert.New(t)
	assert.NoError(tm.AppendTempoChange(4.0, 60.0))

	dup := tm.Copy()
	assert.NoError(tm.AppendTempoChange(8.0, 120.0))

	assert.Len(dup.Breakpoints(), 2)
	assert.Len(tm.Breakpoints(), 3)
	assert.InDelta(60.0, dup.TempoAtBeat(9.0), 1e-9)
	assert.InDelta(120.0, tm.TempoAtBeat(9.0), 1e-9)
}

func TestNewRejectsNonPositiveTempo(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = New(-30)
	assert.Error(t, err)
}
