package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	defaultScrapeTimeout  = 30 * time.Second
	defaultScrapeMaxChars = 8000
)

// ScrapeWebsiteTool fetches a page and returns its visible text. It is bound
// to one URL at construction; a non-empty input overrides the target, which
// lets the model follow links mentioned in the page.
type ScrapeWebsiteTool struct {
	URL      string
	Client   *http.Client
	MaxChars int
}

func NewScrapeWebsiteTool(url string) *ScrapeWebsiteTool {
	return &ScrapeWebsiteTool{
		URL:      url,
		Client:   &http.Client{Timeout: defaultScrapeTimeout},
		MaxChars: defaultScrapeMaxChars,
	}
}

func (t *ScrapeWebsiteTool) Name() string { return "scrape_website" }

func (t *ScrapeWebsiteTool) Description() string {
	return fmt.Sprintf("Reads the documentation page at %s and returns its text content.", t.URL)
}

func (t *ScrapeWebsiteTool) Run(ctx context.Context, input string) (string, error) {
	target := strings.TrimSpace(input)
	if target == "" {
		target = t.URL
	}
	if target == "" {
		return "", fmt.Errorf("scrape_website: no URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("scrape_website: %w", err)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scrape_website: fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scrape_website: fetch %s: unexpected status %s", target, resp.Status)
	}

	text, err := extractText(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scrape_website: parse %s: %w", target, err)
	}
	if t.MaxChars > 0 && len(text) > t.MaxChars {
		cut := t.MaxChars
		// Back up to a rune boundary so the tail is valid UTF-8.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// extractText walks the HTML and joins text nodes, skipping script, style and
// noscript subtrees.
func extractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

var _ Tool = (*ScrapeWebsiteTool)(nil)
var _ Tool = (*EchoTool)(nil)
