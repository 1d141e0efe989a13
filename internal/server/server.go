// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the lemma extraction pipeline as a JSON REST
// API so browser extensions and reader apps can query it directly.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/rs/cors"

	"github.com/kardenwort/kardenwort/internal/extract"
	"github.com/kardenwort/kardenwort/pkg/types"
)

// Server wires the extraction pipeline to HTTP handlers. The extractor
// keeps run counters, so requests are serialized through mu.
type Server struct {
	mu        sync.Mutex
	extractor *extract.Extractor
	segmenter Segmenter
	cfg       types.ServeConfig
}

// Segmenter splits free text into sentence units.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// New builds a Server around an extractor and its sentence segmenter.
func New(extractor *extract.Extractor, segmenter Segmenter, cfg types.ServeConfig) *Server {
	return &Server{extractor: extractor, segmenter: segmenter, cfg: cfg}
}

type extractRequest struct {
	Text string `json:"text"`
}

type sentenceResult struct {
	Sentence string   `json:"sentence"`
	Lemmas   []string `json:"lemmas"`
}

type extractResponse struct {
	Lemmas    []string         `json:"lemmas"`
	Sentences []sentenceResult `json:"sentences"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleExtract serves POST /api/extract: the document-level lemma list
// plus per-sentence breakdowns.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body extractRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}

	units, err := s.segmenter.Segment(body.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("segmenting text: %v", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vocab := extract.NewVocabulary()
	resp := extractResponse{Sentences: make([]sentenceResult, 0, len(units))}
	for i, unit := range units {
		if err := s.extractor.AccumulateUnit(vocab, i+1, unit); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("extracting unit %d: %v", i+1, err))
			return
		}
		lemmas, err := s.extractor.SentenceLemmas(unit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("extracting unit %d: %v", i+1, err))
			return
		}
		resp.Sentences = append(resp.Sentences, sentenceResult{Sentence: unit, Lemmas: lemmas})
	}

	resp.Lemmas = vocab.Lemmas()
	s.extractor.SortLemmas(resp.Lemmas)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Handler returns the routed API wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", s.handleExtract)
	mux.HandleFunc("/api/health", s.handleHealth)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

// ListenAndServe runs the API on the configured address.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}
