package research

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubSearch is a SearchProvider returning canned hits or a canned error.
type stubSearch struct {
	hits []SearchHit
	err  error
}

func (s *stubSearch) Search(_ context.Context, _ string, _ int) ([]SearchHit, error) {
	return s.hits, s.err
}

// pageServer serves a minimal article page per path.
func pageServer(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "<html><body><main>%s</main></body></html>", body)
	}))
}

func TestResearch_SearchFailureDegradesToEmpty(t *testing.T) {
	r := NewResearcher(&stubSearch{err: errors.New("network down")}, NewExtractor(nil), nil)

	sources := r.Research(context.Background(), "quantum computing", 5)
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}

func TestResearch_ZeroHits(t *testing.T) {
	r := NewResearcher(&stubSearch{}, NewExtractor(nil), nil)

	sources := r.Research(context.Background(), "quantum computing", 5)
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}

func TestResearch_RanksByRelevanceDescending(t *testing.T) {
	srv := pageServer(map[string]string{
		"/a": "content about quantum computing",
		"/b": "content about gardening",
		"/c": "more quantum content",
	})
	defer srv.Close()

	search := &stubSearch{hits: []SearchHit{
		{URL: srv.URL + "/b", Title: "gardening tips"},
		{URL: srv.URL + "/a", Title: "quantum computing explained"},
		{URL: srv.URL + "/c", Title: "quantum basics"},
	}}
	r := NewResearcher(search, NewExtractor(nil), nil)

	sources := r.Research(context.Background(), "quantum computing", 5)
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	for i := 1; i < len(sources); i++ {
		if sources[i].RelevanceScore > sources[i-1].RelevanceScore {
			t.Fatalf("sources not sorted by score: %v before %v",
				sources[i-1].RelevanceScore, sources[i].RelevanceScore)
		}
	}
	if sources[len(sources)-1].Title != "gardening tips" {
		t.Fatalf("expected least relevant source last, got %q", sources[len(sources)-1].Title)
	}
}

func TestResearch_TieBrokenByURL(t *testing.T) {
	srv := pageServer(map[string]string{
		"/x": "some content",
		"/y": "other content",
	})
	defer srv.Close()

	// Identical titles give identical scores; URL ordering decides.
	search := &stubSearch{hits: []SearchHit{
		{URL: srv.URL + "/y", Title: "quantum computing"},
		{URL: srv.URL + "/x", Title: "quantum computing"},
	}}
	r := NewResearcher(search, NewExtractor(nil), nil)

	sources := r.Research(context.Background(), "quantum computing", 5)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].URL >= sources[1].URL {
		t.Fatalf("tie not broken by URL ascending: %s, %s", sources[0].URL, sources[1].URL)
	}
}

func TestResearch_UnreachablePagesSkipped(t *testing.T) {
	srv := pageServer(map[string]string{
		"/ok": "reachable content",
	})
	defer srv.Close()

	search := &stubSearch{hits: []SearchHit{
		{URL: srv.URL + "/ok", Title: "reachable"},
		{URL: srv.URL + "/missing", Title: "gone"},
	}}
	r := NewResearcher(search, NewExtractor(nil), nil)

	sources := r.Research(context.Background(), "reachable", 5)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].Title != "reachable" {
		t.Fatalf("unexpected source: %q", sources[0].Title)
	}
}

func TestResearch_CapsAtMaxSources(t *testing.T) {
	pages := make(map[string]string)
	var hits []SearchHit
	for i := 0; i < 6; i++ {
		path := fmt.Sprintf("/p%d", i)
		pages[path] = "content"
		hits = append(hits, SearchHit{Title: "topic page", URL: path})
	}
	srv := pageServer(pages)
	defer srv.Close()
	for i := range hits {
		hits[i].URL = srv.URL + hits[i].URL
	}

	r := NewResearcher(&stubSearch{hits: hits}, NewExtractor(nil), nil)
	sources := r.Research(context.Background(), "topic", 3)
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
}

func TestResearch_DefaultMaxSourcesWhenNonPositive(t *testing.T) {
	r := NewResearcher(&stubSearch{}, NewExtractor(nil), nil)
	// Only checks the call does not panic and degrades cleanly.
	if got := r.Research(context.Background(), "topic", 0); got != nil {
		t.Fatalf("expected nil sources, got %v", got)
	}
}
