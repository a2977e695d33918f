package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePage = `<html>
<head><title>Privacy Policy</title><style>body { color: red; }</style></head>
<body>
<header>Site chrome</header>
<script>var tracking = true;</script>
<p>We collect information to provide better services.</p>
<div>This includes   cookies and server logs.</div>
<footer>Footer links</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	text, err := ExtractText(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(text, "We collect information to provide better services.") {
		t.Errorf("paragraph text missing:\n%s", text)
	}
	if !strings.Contains(text, "This includes cookies and server logs.") {
		t.Errorf("whitespace should be collapsed:\n%s", text)
	}
	for _, unwanted := range []string{"tracking", "color: red", "Site chrome", "Footer links"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("boilerplate %q should be skipped:\n%s", unwanted, text)
		}
	}
}

func TestExtractTextBlockBreaks(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<p>first</p><p>second</p>"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "first\nsecond" {
		t.Errorf("Expected block-level line breaks, got %q", text)
	}
}

func TestFetchToFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "data", "paragraph.txt")
	client := New(5 * time.Second)
	if err := client.FetchToFile(context.Background(), server.URL, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "We collect information") {
		t.Errorf("fetched file missing text:\n%s", data)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(5 * time.Second)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("non-200 response should be an error")
	}
}
