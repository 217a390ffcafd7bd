package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/melos-sonar/features"
	"github.com/RyanBlaney/melos-sonar/score"
)

func postAnalyze(t *testing.T, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handleAnalyze(rec, req)
	return rec
}

func TestHandleAnalyze(t *testing.T) {
	body, err := json.Marshal(analyzeRequest{
		Melody: score.Melody{
			Name: "test",
			Notes: []score.Note{
				{Pitch: 60, Onset: 0, Duration: 0.5},
				{Pitch: 62, Onset: 0.5, Duration: 0.5},
				{Pitch: 64, Onset: 1.0, Duration: 0.5},
			},
		},
	})
	assert := assert.New(t)
	assert.NoError(err)

	rec := postAnalyze(t, body)
	assert.Equal(http.StatusOK, rec.Code)

	var result features.ExtractedFeatures
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal("test", result.Name)
	assert.Equal(3, result.NoteCount)
	assert.NotNil(result.MType)
}

func TestHandleAnalyzeBadBody(t *testing.T) {
	rec := postAnalyze(t, []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyzeBadConfig(t *testing.T) {
	body := `{"melody":{"notes":[]},"config":{"phrase_gap":1,"precision":6,"method":"zero-grams"}}`
	rec := postAnalyze(t, []byte(body))
	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, rec.Code)
	assert.True(strings.Contains(rec.Body.String(), "zero-grams"))
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handleHealth(rec, req)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("ok", rec.Body.String())
}
