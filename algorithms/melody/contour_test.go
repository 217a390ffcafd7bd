package melody

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/melos-sonar/score"
)

func TestStepContourRequiresTwoNotes(t *testing.T) {
	sc := NewStepContour()

	_, err := sc.Compute(nil)
	assert.Error(t, err)
	_, err = sc.Compute([]score.Note{{Pitch: 60, Onset: 0, Duration: 1}})
	assert.Error(t, err)
}

func TestStepContourFlatMelody(t *testing.T) {
	sc := NewStepContour()
	notes := []score.Note{
		{Pitch: 60, Onset: 0, Duration: 1},
		{Pitch: 60, Onset: 1, Duration: 1},
	}
	result, err := sc.Compute(notes)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(result.Curve, DefaultContourSteps)
	assert.Equal(0.0, result.GlobalVariation)
	assert.Equal(0.0, result.GlobalDirection) // undefined slope treated as flat
	assert.Equal(0.0, result.LocalVariation)
}

func TestStepContourRisingMelody(t *testing.T) {
	sc := NewStepContour()
	notes := []score.Note{
		{Pitch: 60, Onset: 0, Duration: 1},
		{Pitch: 64, Onset: 1, Duration: 1},
		{Pitch: 67, Onset: 2, Duration: 1},
		{Pitch: 72, Onset: 3, Duration: 1},
	}
	result, err := sc.Compute(notes)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Greater(result.GlobalVariation, 0.0)
	assert.Greater(result.GlobalDirection, 0.9) // strongly upward
	assert.Greater(result.LocalVariation, 0.0)

	// held-pitch sampling: the curve starts on the first pitch and ends on
	// the last
	assert.Equal(60.0, result.Curve[0])
	assert.Equal(72.0, result.Curve[len(result.Curve)-1])
}

func TestStepContourCustomSteps(t *testing.T) {
	sc := &StepContour{Steps: 16}
	notes := []score.Note{
		{Pitch: 72, Onset: 0, Duration: 2},
		{Pitch: 60, Onset: 2, Duration: 2},
	}
	result, err := sc.Compute(notes)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(result.Curve, 16)
	assert.Less(result.GlobalDirection, 0.0) // falling line
}
