package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

type recorded struct {
	path    string
	query   string
	headers http.Header
	body    []byte
}

type fakeGemini struct {
	mu       sync.Mutex
	calls    []recorded
	server   *httptest.Server
	noURL    bool
	genFails bool
}

func newFakeGemini(t *testing.T) *fakeGemini {
	t.Helper()
	f := &fakeGemini{}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGemini) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, recorded{path: r.URL.Path, query: r.URL.RawQuery, headers: r.Header.Clone(), body: body})
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/upload/v1beta/files":
		if !f.noURL {
			w.Header().Set("X-Goog-Upload-URL", f.server.URL+"/session/abc")
		}
		w.WriteHeader(http.StatusOK)
	case r.URL.Path == "/session/abc":
		_, _ = w.Write([]byte(`{"file":{"uri":"https://files.test/abc","mimeType":"application/pdf"}}`))
	case strings.HasSuffix(r.URL.Path, ":generateContent"):
		if f.genFails {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"done"}]}}]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, f *fakeGemini) *Client {
	t.Helper()
	c, err := NewClient("test-key", "gemini-test", f.server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestUploadThenGenerate(t *testing.T) {
	f := newFakeGemini(t)
	c := newTestClient(t, f)

	data := []byte("%PDF-1.4 fake")
	ref, err := c.UploadFile(context.Background(), data, "contract.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if ref.URI != "https://files.test/abc" {
		t.Fatalf("unexpected uri %q", ref.URI)
	}

	resp, err := c.Generate(context.Background(), &ref, "summarize")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text, ok := llm.ExtractText(resp); !ok || text != "done" {
		t.Fatalf("unexpected text %q ok=%v", text, ok)
	}

	if len(f.calls) != 3 {
		t.Fatalf("expected 3 provider calls, got %d", len(f.calls))
	}
	start, finalize, gen := f.calls[0], f.calls[1], f.calls[2]

	if start.query != "key=test-key" {
		t.Fatalf("unexpected start query %q", start.query)
	}
	if got := start.headers.Get("X-Goog-Upload-Protocol"); got != "resumable" {
		t.Fatalf("unexpected protocol header %q", got)
	}
	if got := start.headers.Get("X-Goog-Upload-Command"); got != "start" {
		t.Fatalf("unexpected start command %q", got)
	}
	if got := start.headers.Get("X-Goog-Upload-Header-Content-Length"); got != "13" {
		t.Fatalf("unexpected declared length %q", got)
	}
	if got := start.headers.Get("X-Goog-Upload-Header-Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected declared type %q", got)
	}
	if !strings.Contains(string(start.body), `"display_name":"contract.pdf"`) {
		t.Fatalf("unexpected start body %s", start.body)
	}

	if got := finalize.headers.Get("X-Goog-Upload-Command"); got != "upload, finalize" {
		t.Fatalf("unexpected finalize command %q", got)
	}
	if got := finalize.headers.Get("X-Goog-Upload-Offset"); got != "0" {
		t.Fatalf("unexpected offset %q", got)
	}
	if string(finalize.body) != string(data) {
		t.Fatalf("expected raw bytes streamed to session")
	}

	if gen.path != "/v1beta/models/gemini-test:generateContent" {
		t.Fatalf("unexpected generate path %q", gen.path)
	}
	var payload generateRequest
	if err := json.Unmarshal(gen.body, &payload); err != nil {
		t.Fatalf("decode generate body: %v", err)
	}
	parts := payload.Contents[0].Parts
	if len(parts) != 2 || parts[0].FileData == nil || parts[0].FileData.FileURI != ref.URI || parts[1].Text != "summarize" {
		t.Fatalf("unexpected generate parts %+v", parts)
	}
}

func TestGenerateTextOnly(t *testing.T) {
	f := newFakeGemini(t)
	c := newTestClient(t, f)

	if _, err := c.Generate(context.Background(), nil, "translate"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var payload generateRequest
	if err := json.Unmarshal(f.calls[0].body, &payload); err != nil {
		t.Fatalf("decode generate body: %v", err)
	}
	parts := payload.Contents[0].Parts
	if len(parts) != 1 || parts[0].FileData != nil || parts[0].Text != "translate" {
		t.Fatalf("unexpected text-only parts %+v", parts)
	}
}

func TestUploadMissingSession(t *testing.T) {
	f := newFakeGemini(t)
	f.noURL = true
	c := newTestClient(t, f)

	_, err := c.UploadFile(context.Background(), []byte("x"), "a.pdf", "application/pdf")
	if !errors.Is(err, llm.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected no finalize call, got %d calls", len(f.calls))
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	f := newFakeGemini(t)
	f.genFails = true
	c := newTestClient(t, f)

	_, err := c.Generate(context.Background(), nil, "hi")
	if !errors.Is(err, llm.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", len(f.calls))
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(" ", "m", "", 0); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
