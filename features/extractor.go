package features

import (
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/melos-sonar/algorithms/harmony"
	"github.com/RyanBlaney/melos-sonar/algorithms/melody"
	"github.com/RyanBlaney/melos-sonar/algorithms/rhythm"
	"github.com/RyanBlaney/melos-sonar/logging"
	"github.com/RyanBlaney/melos-sonar/score"
)

// MTypeFeatures summarizes one melody's n-gram table and its diversity
// statistics.
type MTypeFeatures struct {
	PhraseCount    int `json:"phrase_count"`
	TotalNGrams    int `json:"total_ngrams"`
	DistinctNGrams int `json:"distinct_ngrams"`
	melody.DiversityStats
}

// ExtractedFeatures is the full feature set computed for one melody.
type ExtractedFeatures struct {
	Name        string  `json:"name,omitempty"`
	NoteCount   int     `json:"note_count"`
	PitchMean   float64 `json:"pitch_mean"`
	PitchStdDev float64 `json:"pitch_std_dev"`

	MType       *MTypeFeatures            `json:"mtype,omitempty"`
	Contour     *melody.StepContourResult `json:"contour,omitempty"`
	Root        *harmony.RootEstimate     `json:"root,omitempty"`
	Periodicity *rhythm.PeriodicityResult `json:"periodicity,omitempty"`
}

// Extractor runs the analysis pipeline for one melody at a time. It is
// deterministic for equal input and not safe for concurrent use.
type Extractor struct {
	config Config
	logger logging.Logger
}

// NewExtractor creates an extractor for the given configuration.
func NewExtractor(config Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}, nil
}

// Extract computes the configured feature families for one melody. Feature
// families that are undefined for the input (too few notes) are omitted
// rather than failing the extraction; validation errors are reported.
func (e *Extractor) Extract(m score.Melody) (*ExtractedFeatures, error) {
	result := &ExtractedFeatures{
		Name:      m.Name,
		NoteCount: len(m.Notes),
	}
	if len(m.Notes) > 0 {
		pitches := make([]float64, len(m.Notes))
		for i, n := range m.Notes {
			pitches[i] = float64(n.Pitch)
		}
		result.PitchMean = stat.Mean(pitches, nil)
		if len(pitches) > 1 {
			result.PitchStdDev = stat.StdDev(pitches, nil)
		}
	}

	mtype, err := e.extractMType(m)
	if err != nil {
		return nil, err
	}
	result.MType = mtype

	if e.config.EnableContour && len(m.Notes) >= 2 {
		contour := &melody.StepContour{Steps: e.config.ContourSteps}
		shape, err := contour.Compute(m.Notes)
		if err != nil {
			return nil, err
		}
		result.Contour = shape
	}

	if e.config.EnableRoot && len(m.Notes) > 0 {
		root, err := harmony.EstimateRoot(m.Pitches())
		if err != nil {
			return nil, err
		}
		result.Root = root
	}

	if e.config.EnablePeriodicity {
		periodicity, err := rhythm.NewPeriodicity().Estimate(m.Onsets())
		if err != nil {
			return nil, err
		}
		result.Periodicity = periodicity
	}

	e.logger.Debug("extracted features", logging.Fields{
		"melody": m.Name,
		"notes":  len(m.Notes),
	})
	return result, nil
}

func (e *Extractor) extractMType(m score.Melody) (*MTypeFeatures, error) {
	method, err := melody.ParseCountMethod(e.config.Method)
	if err != nil {
		return nil, err
	}

	tokenizer := melody.NewFantasticTokenizer()
	tokenizer.PhraseGap = e.config.PhraseGap
	tokenizer.Precision = e.config.Precision

	sequences := tokenizer.Tokenize(m.Notes)
	counter := melody.NewNGramCounter()
	if err := counter.CountTokens(sequences, method); err != nil {
		return nil, err
	}
	stats, err := counter.Statistics()
	if err != nil {
		return nil, err
	}

	return &MTypeFeatures{
		PhraseCount:    len(sequences),
		TotalNGrams:    counter.TotalTokens(),
		DistinctNGrams: counter.DistinctTypes(),
		DiversityStats: *stats,
	}, nil
}
