package scoreio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/RyanBlaney/melos-sonar/algorithms/timemap"
	"github.com/RyanBlaney/melos-sonar/logging"
	"github.com/RyanBlaney/melos-sonar/score"
)

// DefaultMIDITempo is the tempo assumed until the first tempo meta event,
// per the SMF specification.
const DefaultMIDITempo = 120.0

// Score is the decoded content of a Standard MIDI File: one melody per
// track that carries notes (onsets and durations in quarter notes) and a
// TimeMap built from the file's tempo meta events.
type Score struct {
	TicksPerQuarter int
	Tracks          []score.Melody
	TimeMap         *timemap.TimeMap
}

// Melodies implements score.NoteSource.
func (s *Score) Melodies() ([]score.Melody, error) {
	return s.Tracks, nil
}

// ReadSMFFile decodes the Standard MIDI File at the given path.
func ReadSMFFile(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scoreio: reading midi file: %w", err)
	}
	return ReadSMF(bytes.NewReader(data))
}

// ReadSMF decodes a Standard MIDI File from a reader.
func ReadSMF(r io.Reader) (s *Score, e error) {
	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if msg, ok := recover().(string); ok {
			s, e = nil, errors.New(msg)
		}
	}()

	parsed, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("scoreio: parsing midi file: %w", err)
	}

	ticks, ok := parsed.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("scoreio: unsupported SMF time format %v", parsed.TimeFormat)
	}
	tpq := float64(int(ticks))

	result := &Score{TicksPerQuarter: int(ticks)}
	var tempoEvents []tempoEvent

	for trackNum, events := range parsed.Tracks {
		melody := decodeTrack(trackNum, events, tpq, &tempoEvents)
		if len(melody.Notes) > 0 {
			result.Tracks = append(result.Tracks, melody)
		}
	}

	result.TimeMap = buildTimeMap(tempoEvents)
	return result, nil
}

type tempoEvent struct {
	beat float64
	bpm  float64
}

// decodeTrack walks one track's events at absolute ticks, extracting notes
// and collecting tempo meta events on the way.
func decodeTrack(trackNum int, events smf.Track, tpq float64, tempi *[]tempoEvent) score.Melody {
	melody := score.Melody{Name: fmt.Sprintf("track %d", trackNum)}
	pending := make(map[uint8]float64) // key -> onset beat

	var absTicks int64
	for _, event := range events {
		absTicks += int64(event.Delta)
		beat := float64(absTicks) / tpq

		var channel, key, velocity uint8
		var name string
		var bpm float64
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			pending[key] = beat
		case event.Message.GetNoteEnd(&channel, &key):
			if onset, ok := pending[key]; ok {
				delete(pending, key)
				melody.Notes = append(melody.Notes, score.Note{
					Pitch:    int(key),
					Onset:    onset,
					Duration: beat - onset,
				})
			}
		case event.Message.GetMetaTempo(&bpm):
			*tempi = append(*tempi, tempoEvent{beat: beat, bpm: bpm})
		case event.Message.GetMetaTrackName(&name):
			melody.Name = name
		}
	}

	// notes still sounding at end of track keep a zero duration
	for key, onset := range pending {
		melody.Notes = append(melody.Notes, score.Note{Pitch: int(key), Onset: onset})
	}
	melody.SortByOnset()
	return melody
}

// buildTimeMap folds the tempo meta events into a beat/seconds map. Events
// are applied in beat order; the default MIDI tempo holds until the first
// one.
func buildTimeMap(events []tempoEvent) *timemap.TimeMap {
	sort.SliceStable(events, func(i, j int) bool { return events[i].beat < events[j].beat })

	tm, _ := timemap.New(DefaultMIDITempo)
	for _, ev := range events {
		if ev.bpm <= 0 {
			logging.Warn("skipping non-positive tempo event", logging.Fields{
				"beat": ev.beat,
				"bpm":  ev.bpm,
			})
			continue
		}
		if err := tm.AppendTempoChange(ev.beat, ev.bpm); err != nil {
			logging.Warn("skipping out-of-order tempo event", logging.Fields{
				"beat": ev.beat,
				"bpm":  ev.bpm,
			})
		}
	}
	return tm
}
