package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMelodyCopyIsIndependent(t *testing.T) {
	m := Melody{Name: "a", Notes: []Note{{Pitch: 60, Onset: 0}, {Pitch: 62, Onset: 1}}}
	dup := m.Copy()
	dup.Notes[0].Pitch = 72

	assert := assert.New(t)
	assert.Equal(60, m.Notes[0].Pitch)
	assert.Equal(72, dup.Notes[0].Pitch)
}

func TestSortByOnsetIsStable(t *testing.T) {
	m := Melody{Notes: []Note{
		{Pitch: 64, Onset: 1.0},
		{Pitch: 60, Onset: 0.0},
		{Pitch: 67, Onset: 1.0},
	}}
	m.SortByOnset()

	assert := assert.New(t)
	assert.Equal([]int{60, 64, 67}, m.Pitches())
}

func TestSpan(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, Melody{}.Span())

	m := Melody{Notes: []Note{
		{Pitch: 60, Onset: 1.0, Duration: 1.0},
		{Pitch: 62, Onset: 2.0, Duration: 2.0},
	}}
	assert.Equal(3.0, m.Span())

	onsets := m.Onsets()
	assert.Equal([]float64{1.0, 2.0}, onsets)
}
