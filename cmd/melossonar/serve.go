package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/melos-sonar/features"
	"github.com/RyanBlaney/melos-sonar/logging"
	"github.com/RyanBlaney/melos-sonar/score"
)

// analyzeRequest is the serve endpoint's input: a melody plus optional
// overrides of the default extraction config.
type analyzeRequest struct {
	Melody score.Melody     `json:"melody"`
	Config *features.Config `json:"config,omitempty"`
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve melodic feature extraction over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			router := mux.NewRouter().StrictSlash(true)
			router.HandleFunc("/analyze", handleAnalyze).Methods("POST")
			router.HandleFunc("/healthz", handleHealth).Methods("GET")

			handler := cors.Default().Handler(router)
			logging.Info("listening", logging.Fields{"addr": addr})
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg := features.DefaultConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	extractor, err := features.NewExtractor(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := extractor.Extract(req.Melody)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logging.Error(err, "encoding analyze response")
	}
}
