package melody

import (
	"math"

	"github.com/RyanBlaney/melos-sonar/logging"
	"github.com/RyanBlaney/melos-sonar/score"
)

const (
	// DefaultPhraseGap is the IOI above which a phrase boundary is drawn,
	// in the melody's onset unit.
	DefaultPhraseGap = 1.0

	// DefaultPrecision is the number of decimal places IOIs and IOI ratios
	// are rounded to before classification, to keep floating noise out of
	// the ratio thresholds.
	DefaultPrecision = 6
)

// AnnotatedNote wraps a score.Note with the timing fields derived during
// traversal. IOI is the onset gap to the next note in the flat sequence
// (nil for the last note); IOIRatio is this note's IOI divided by the
// previous note's IOI (nil whenever either is undefined, so always nil for
// the first note).
type AnnotatedNote struct {
	score.Note
	IOI      *float64
	IOIRatio *float64
}

// FantasticTokenizer segments a flat, onset-ordered note sequence into
// phrases and turns each phrase into a sequence of M-Type tokens.
type FantasticTokenizer struct {
	PhraseGap float64
	Precision int

	logger logging.Logger
}

// NewFantasticTokenizer creates a tokenizer with the default phrase gap
// and rounding precision.
func NewFantasticTokenizer() *FantasticTokenizer {
	return &FantasticTokenizer{
		PhraseGap: DefaultPhraseGap,
		Precision: DefaultPrecision,
		logger: logging.WithFields(logging.Fields{
			"component": "fantastic_tokenizer",
		}),
	}
}

// roundTo rounds x to the tokenizer's decimal precision.
func (ft *FantasticTokenizer) roundTo(x float64) float64 {
	scale := math.Pow(10, float64(ft.Precision))
	return math.Round(x*scale) / scale
}

// Annotate computes the IOI and IOI-ratio fields for every note of the
// flat sequence. Rounding happens on the IOIs before the ratio is taken.
func (ft *FantasticTokenizer) Annotate(notes []score.Note) []AnnotatedNote {
	annotated := make([]AnnotatedNote, len(notes))
	for i, n := range notes {
		annotated[i].Note = n
		if i < len(notes)-1 {
			ioi := ft.roundTo(notes[i+1].Onset - n.Onset)
			annotated[i].IOI = &ioi
		}
	}
	for i := 1; i < len(annotated); i++ {
		prev, curr := annotated[i-1].IOI, annotated[i].IOI
		if prev != nil && curr != nil {
			ratio := ft.roundTo(*curr / *prev)
			annotated[i].IOIRatio = &ratio
		}
	}
	return annotated
}

// Segment splits the annotated sequence into phrases. A boundary is drawn
// before a note whenever the preceding note's IOI exceeds the phrase gap;
// the triggering note opens the new phrase. The first note never triggers
// a boundary as nothing precedes it.
func (ft *FantasticTokenizer) Segment(notes []score.Note) [][]AnnotatedNote {
	annotated := ft.Annotate(notes)
	if len(annotated) == 0 {
		return nil
	}
	var phrases [][]AnnotatedNote
	current := []AnnotatedNote{annotated[0]}
	for i := 1; i < len(annotated); i++ {
		if prev := annotated[i-1].IOI; prev != nil && *prev > ft.PhraseGap {
			phrases = append(phrases, current)
			current = nil
		}
		current = append(current, annotated[i])
	}
	return append(phrases, current)
}

// TokenizePhrase converts each adjacent note pair of one phrase into a
// token. Phrases with fewer than two notes yield no tokens.
func (ft *FantasticTokenizer) TokenizePhrase(phrase []AnnotatedNote) []Token {
	if len(phrase) < 2 {
		return nil
	}
	tokens := make([]Token, 0, len(phrase)-1)
	for i := 1; i < len(phrase); i++ {
		interval := phrase[i].Pitch - phrase[i-1].Pitch
		tokens = append(tokens, Token{
			Interval: ClassifyInterval(&interval),
			Duration: ClassifyDurationRatio(phrase[i].IOIRatio),
		})
	}
	return tokens
}

// Tokenize runs annotation, segmentation and per-phrase tokenization and
// returns one token sequence per phrase. An empty note list yields zero
// phrases.
func (ft *FantasticTokenizer) Tokenize(notes []score.Note) [][]Token {
	phrases := ft.Segment(notes)
	sequences := make([][]Token, len(phrases))
	for i, phrase := range phrases {
		sequences[i] = ft.TokenizePhrase(phrase)
	}
	return sequences
}

// CountNGrams tokenizes the notes and counts n-grams of the requested
// length (or of every length, per method) across all phrases. N-grams
// never span a phrase boundary.
func (ft *FantasticTokenizer) CountNGrams(notes []score.Note, method CountMethod) (*NGramCounter, error) {
	counter := NewNGramCounter()
	if err := counter.CountTokens(ft.Tokenize(notes), method); err != nil {
		return nil, err
	}
	return counter, nil
}
