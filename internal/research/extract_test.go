package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_PrefersMainContainer(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<nav>navigation junk</nav>
		<main>the real article text</main>
		<footer>footer junk</footer>
	</body></html>`)

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if got != "the real article text" {
		t.Fatalf("Extract = %q", got)
	}
}

func TestExtract_StripsNonContentTags(t *testing.T) {
	srv := serveHTML(t, `<html><body>
		<script>var x = 1;</script>
		<style>.a{color:red}</style>
		<p>visible paragraph</p>
	</body></html>`)

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if got != "visible paragraph" {
		t.Fatalf("Extract = %q", got)
	}
}

func TestExtract_FallsBackToBody(t *testing.T) {
	srv := serveHTML(t, `<html><body><p>no container here</p></body></html>`)

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if got != "no container here" {
		t.Fatalf("Extract = %q", got)
	}
}

func TestExtract_CollapsesWhitespace(t *testing.T) {
	srv := serveHTML(t, "<html><body><main>one\n\n  two\t three</main></body></html>")

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if got != "one two three" {
		t.Fatalf("Extract = %q", got)
	}
}

func TestExtract_TruncatesAtLimit(t *testing.T) {
	srv := serveHTML(t, "<html><body><main>"+strings.Repeat("x", 3*MaxContentLength)+"</main></body></html>")

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if len(got) != MaxContentLength {
		t.Fatalf("len = %d, want %d", len(got), MaxContentLength)
	}
}

func TestExtract_TruncationKeepsValidUTF8(t *testing.T) {
	// Multi-byte runes straddling the cut point must not be split.
	srv := serveHTML(t, "<html><body><main>"+strings.Repeat("é", 2*MaxContentLength)+"</main></body></html>")

	got := NewExtractor(nil).Extract(context.Background(), srv.URL)
	if !utf8.ValidString(got) {
		t.Fatal("truncated output is not valid UTF-8")
	}
	if len(got) > MaxContentLength {
		t.Fatalf("len = %d, want <= %d", len(got), MaxContentLength)
	}
}

func TestExtract_Non200ReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	if got := NewExtractor(nil).Extract(context.Background(), srv.URL); got != "" {
		t.Fatalf("Extract = %q, want empty", got)
	}
}

func TestExtract_UnreachableReturnsEmpty(t *testing.T) {
	if got := NewExtractor(nil).Extract(context.Background(), "http://127.0.0.1:1/nope"); got != "" {
		t.Fatalf("Extract = %q, want empty", got)
	}
}

func TestExtract_SetsBrowserUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><main>ok</main></body></html>"))
	}))
	t.Cleanup(srv.Close)

	NewExtractor(nil).Extract(context.Background(), srv.URL)
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("User-Agent = %q", gotUA)
	}
}
