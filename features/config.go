package features

import (
	"fmt"

	"github.com/RyanBlaney/melos-sonar/algorithms/melody"
)

// Config is the configuration surface of the feature extractor. Method is
// the n-gram count method: the literal "all" or a positive integer length.
type Config struct {
	PhraseGap    float64 `json:"phrase_gap" mapstructure:"phrase_gap"`
	Method       string  `json:"method" mapstructure:"method"`
	Precision    int     `json:"precision" mapstructure:"precision"`
	ContourSteps int     `json:"contour_steps" mapstructure:"contour_steps"`

	EnableContour     bool `json:"enable_contour" mapstructure:"enable_contour"`
	EnableRoot        bool `json:"enable_root" mapstructure:"enable_root"`
	EnablePeriodicity bool `json:"enable_periodicity" mapstructure:"enable_periodicity"`
}

// DefaultConfig returns the reference-model defaults with every feature
// family enabled.
func DefaultConfig() Config {
	return Config{
		PhraseGap:         melody.DefaultPhraseGap,
		Method:            "all",
		Precision:         melody.DefaultPrecision,
		ContourSteps:      melody.DefaultContourSteps,
		EnableContour:     true,
		EnableRoot:        true,
		EnablePeriodicity: true,
	}
}

// Validate checks the configuration, reporting the first offending value.
func (c Config) Validate() error {
	if c.PhraseGap <= 0 {
		return fmt.Errorf("features: phrase gap must be positive, got %v", c.PhraseGap)
	}
	if c.Precision < 0 {
		return fmt.Errorf("features: precision must be non-negative, got %d", c.Precision)
	}
	if _, err := melody.ParseCountMethod(c.Method); err != nil {
		return err
	}
	return nil
}
