package score

import "sort"

// Note is a single timed, pitched event as exposed by a score-reading
// backend. Pitch is a MIDI key number. Onset and Duration share one time
// unit within a melody (quarter notes or seconds); which one is the
// caller's choice, as long as it is consistent per call.
type Note struct {
	Pitch    int     `json:"pitch"`
	Onset    float64 `json:"onset"`
	Duration float64 `json:"duration,omitempty"`
}

// Melody is a flat, onset-ordered note sequence belonging to one voice.
type Melody struct {
	Name  string `json:"name,omitempty"`
	Notes []Note `json:"notes"`
}

// NoteSource provides melodies from some score-reading backend. The
// analysis packages depend on this seam, never on a concrete file format.
type NoteSource interface {
	Melodies() ([]Melody, error)
}

// Copy makes a deep copy of a Melody.
func (m Melody) Copy() Melody {
	notes := make([]Note, len(m.Notes))
	copy(notes, m.Notes)
	return Melody{Name: m.Name, Notes: notes}
}

// SortByOnset orders the notes by onset, keeping the original order for
// simultaneous notes.
func (m *Melody) SortByOnset() {
	sort.SliceStable(m.Notes, func(i, j int) bool {
		return m.Notes[i].Onset < m.Notes[j].Onset
	})
}

// Pitches returns the pitch of every note, in sequence order.
func (m Melody) Pitches() []int {
	pitches := make([]int, len(m.Notes))
	for i, n := range m.Notes {
		pitches[i] = n.Pitch
	}
	return pitches
}

// Onsets returns the onset of every note, in sequence order.
func (m Melody) Onsets() []float64 {
	onsets := make([]float64, len(m.Notes))
	for i, n := range m.Notes {
		onsets[i] = n.Onset
	}
	return onsets
}

// Span returns the time from the first onset to the end of the last note.
// The last note's end falls back to its onset when it has no duration.
func (m Melody) Span() float64 {
	if len(m.Notes) == 0 {
		return 0.0
	}
	first := m.Notes[0].Onset
	last := m.Notes[len(m.Notes)-1]
	return last.Onset + last.Duration - first
}
