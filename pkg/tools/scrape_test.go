package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Creating a Crew</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <h1>Creating a Crew and kicking it off</h1>
  <p>Pass <code>memory=True</code> to enable crew memory.</p>
  <noscript>Please enable JavaScript.</noscript>
</body>
</html>`

func TestScrapeExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	tool := NewScrapeWebsiteTool(srv.URL)
	out, err := tool.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"Creating a Crew and kicking it off", "memory=True"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	for _, banned := range []string{"console.log", "color: red", "enable JavaScript"} {
		if strings.Contains(out, banned) {
			t.Errorf("output leaked %q: %q", banned, out)
		}
	}
}

func TestScrapeTruncatesToMaxChars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("word ", 1000) + "</body></html>"))
	}))
	defer srv.Close()

	tool := NewScrapeWebsiteTool(srv.URL)
	tool.MaxChars = 100
	out, err := tool.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 100 {
		t.Fatalf("output length %d, want 100", len(out))
	}
}

func TestScrapeTruncatesOnRuneBoundary(t *testing.T) {
	// Each é is two bytes; an odd byte limit would split one in half.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("é", 200) + "</body></html>"))
	}))
	defer srv.Close()

	tool := NewScrapeWebsiteTool(srv.URL)
	tool.MaxChars = 101
	out, err := tool.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("truncated output is not valid UTF-8: %q", out)
	}
	if len(out) != 100 {
		t.Fatalf("output length %d, want 100 (backed up to rune boundary)", len(out))
	}
}

func TestScrapeNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	tool := NewScrapeWebsiteTool(srv.URL)
	if _, err := tool.Run(context.Background(), ""); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestScrapeInputOverridesURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/other" {
			_, _ = w.Write([]byte("<html><body>override target</body></html>"))
			return
		}
		_, _ = w.Write([]byte("<html><body>default target</body></html>"))
	}))
	defer srv.Close()

	tool := NewScrapeWebsiteTool(srv.URL)
	out, err := tool.Run(context.Background(), srv.URL+"/other")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "override target") {
		t.Fatalf("override not honored: %q", out)
	}
}

func TestScrapeNoURL(t *testing.T) {
	tool := NewScrapeWebsiteTool("")
	if _, err := tool.Run(context.Background(), ""); err == nil {
		t.Fatal("expected error when no URL is configured")
	}
}

func TestEchoTool(t *testing.T) {
	tool := &EchoTool{}
	out, err := tool.Run(context.Background(), "  hello  ")
	if err != nil || out != "hello" {
		t.Fatalf("echo returned %q, %v", out, err)
	}
}
