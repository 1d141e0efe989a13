// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kardenwort/kardenwort/internal/analyze"
	"github.com/kardenwort/kardenwort/internal/extract"
	"github.com/kardenwort/kardenwort/internal/rules"
	"github.com/kardenwort/kardenwort/internal/wordlist"
	"github.com/kardenwort/kardenwort/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	analyzer := analyze.NewLexiconAnalyzer("de")
	analyzer.Add("ging", "gehen", types.POSVerb)
	analyzer.Add("Hause", "Haus", types.POSNoun)
	analyzer.Add("er", "er", types.POSPron)
	analyzer.Add("nach", "nach", types.POSAdp)

	matcher := rules.NewMatcher(rules.NewRuleSet(), io.Discard)
	e := extract.New(analyzer, wordlist.NewDictionary(), wordlist.NewFrequencyIndex(),
		matcher, nil, types.ExtractOptions{Language: "de", ForceNounCaps: true}, io.Discard)

	return New(e, analyzer, types.ServeConfig{})
}

func TestExtractEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/extract", "application/json",
		strings.NewReader(`{"text":"Er ging nach Hause."}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Lemmas    []string `json:"lemmas"`
		Sentences []struct {
			Sentence string   `json:"sentence"`
			Lemmas   []string `json:"lemmas"`
		} `json:"sentences"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"er": true, "gehen": true, "nach": true, "Haus": true}
	for _, l := range body.Lemmas {
		if !want[l] {
			t.Errorf("unexpected lemma %q", l)
		}
		delete(want, l)
	}
	for l := range want {
		t.Errorf("missing lemma %q", l)
	}
	if len(body.Sentences) != 1 {
		t.Fatalf("got %d sentences, want 1", len(body.Sentences))
	}
}

func TestExtractRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/extract", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExtractRequiresPost(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/extract")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/extract", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "https://reader.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
