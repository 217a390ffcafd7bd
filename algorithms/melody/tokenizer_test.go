package melody

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/melos-sonar/score"
)

// melodyFrom builds a note sequence from pitches and per-note durations,
// each note starting where the previous one ends.
func melodyFrom(pitches []int, durations []float64) []score.Note {
	notes := make([]score.Note, len(pitches))
	onset := 0.0
	for i, p := range pitches {
		notes[i] = score.Note{Pitch: p, Onset: onset, Duration: durations[i]}
		onset += durations[i]
	}
	return notes
}

func TestAnnotateIOIAndRatio(t *testing.T) {
	ft := NewFantasticTokenizer()
	notes := []score.Note{
		{Pitch: 60, Onset: 0.0},
		{Pitch: 62, Onset: 0.25},
		{Pitch: 64, Onset: 0.75},
	}
	annotated := ft.Annotate(notes)

	assert := assert.New(t)
	assert.Len(annotated, 3)
	assert.Equal(0.25, *annotated[0].IOI)
	assert.Equal(0.5, *annotated[1].IOI)
	assert.Nil(annotated[2].IOI)

	assert.Nil(annotated[0].IOIRatio)
	assert.Equal(2.0, *annotated[1].IOIRatio)
	assert.Nil(annotated[2].IOIRatio)
}

func TestAnnotateRoundsBeforeRatio(t *testing.T) {
	ft := NewFantasticTokenizer()
	notes := []score.Note{
		{Pitch: 60, Onset: 0.0},
		{Pitch: 62, Onset: 1.0 / 3.0},
		{Pitch: 64, Onset: 1.0},
	}
	annotated := ft.Annotate(notes)

	assert := assert.New(t)
	assert.Equal(0.333333, *annotated[0].IOI)
	assert.Equal(0.666667, *annotated[1].IOI)
	// the ratio is taken over the rounded IOIs, then rounded itself
	assert.Equal(2.000003, *annotated[1].IOIRatio)
}

func TestSegmentTwinklePhrases(t *testing.T) {
	pitches := []int{60, 60, 67, 67, 69, 69, 67, 65, 65, 64, 64, 62, 62, 60}
	durations := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 1.0, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 1.0}

	ft := NewFantasticTokenizer()
	ft.PhraseGap = 0.75
	phrases := ft.Segment(melodyFrom(pitches, durations))

	assert := assert.New(t)
	assert.Len(phrases, 2)
	assert.Len(phrases[0], 7)
	assert.Len(phrases[1], 7)
	assert.Equal(67, phrases[0][6].Pitch)
	assert.Equal(65, phrases[1][0].Pitch)
}

func TestSegmentNoBoundaryOnFirstNote(t *testing.T) {
	ft := NewFantasticTokenizer()
	ft.PhraseGap = 0.1
	notes := []score.Note{{Pitch: 60, Onset: 0.0}, {Pitch: 62, Onset: 5.0}}
	phrases := ft.Segment(notes)

	// the wide gap splits after the first note, not before it
	assert := assert.New(t)
	assert.Len(phrases, 2)
	assert.Len(phrases[0], 1)
	assert.Len(phrases[1], 1)
}

func TestTokenizeShortPhrases(t *testing.T) {
	ft := NewFantasticTokenizer()

	assert := assert.New(t)
	assert.Empty(ft.TokenizePhrase(nil))
	assert.Empty(ft.TokenizePhrase(ft.Annotate([]score.Note{{Pitch: 60}})))
	assert.Empty(ft.Tokenize(nil))
}

func TestTokenizeSinglePhrase(t *testing.T) {
	pitches := []int{56, 58, 61, 58, 65, 65, 63}
	durations := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	ft := NewFantasticTokenizer()
	sequences := ft.Tokenize(melodyFrom(pitches, durations))

	assert := assert.New(t)
	assert.Len(sequences, 1)
	tokens := sequences[0]
	assert.Len(tokens, 6)

	// first pair has no ratio yet; the rest of this isochronous line is "e"
	assert.Equal(Token{Interval: IntervalU2, Duration: DurationNone}, tokens[0])
	assert.Equal(Token{Interval: IntervalU3, Duration: DurationEqual}, tokens[1])
	assert.Equal(Token{Interval: IntervalD3, Duration: DurationEqual}, tokens[2])
	assert.Equal(Token{Interval: IntervalU5, Duration: DurationEqual}, tokens[3])
	assert.Equal(Token{Interval: IntervalS1, Duration: DurationEqual}, tokens[4])
	assert.Equal(Token{Interval: IntervalD2, Duration: DurationEqual}, tokens[5])
}

func TestCountNGramsAllLengths(t *testing.T) {
	pitches := []int{56, 58, 61, 58, 65, 65, 63}
	durations := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	ft := NewFantasticTokenizer()
	counter, err := ft.CountNGrams(melodyFrom(pitches, durations), CountAll)

	assert := assert.New(t)
	assert.NoError(err)
	// phrase of 7 notes gives 6 tokens, so every length 1 through 6
	assert.Equal(6, counter.LengthCount())
	assert.Equal(6+5+4+3+2+1, counter.TotalTokens())
}

func TestCountNGramsEmptyMelody(t *testing.T) {
	ft := NewFantasticTokenizer()
	counter, err := ft.CountNGrams(nil, CountAll)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(0, counter.TotalTokens())
	assert.Empty(counter.Counts())
}
