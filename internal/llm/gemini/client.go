package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

const (
	// DefaultBaseURL is the public Generative Language API host.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 120 * time.Second
)

// Client implements llm.Gateway against the Gemini REST API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. A zero timeout uses the default.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type uploadStart struct {
	File struct {
		DisplayName string `json:"display_name"`
	} `json:"file"`
}

type uploadResult struct {
	File struct {
		URI      string `json:"uri"`
		MimeType string `json:"mimeType"`
	} `json:"file"`
}

// UploadFile runs the two-step resumable upload and returns the file reference.
func (c *Client) UploadFile(ctx context.Context, data []byte, displayName, contentType string) (llm.FileRef, error) {
	var start uploadStart
	start.File.DisplayName = displayName
	payload, err := json.Marshal(start)
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: %v", llm.ErrUpload, err)
	}

	startURL := c.baseURL + "/upload/v1beta/files?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL, bytes.NewReader(payload))
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: %v", llm.ErrUpload, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(len(data)))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: start session: %v", llm.ErrUpload, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return llm.FileRef{}, fmt.Errorf("%w: start session: status %d", llm.ErrUpload, resp.StatusCode)
	}
	sessionURL := strings.TrimSpace(resp.Header.Get("X-Goog-Upload-URL"))
	if sessionURL == "" {
		return llm.FileRef{}, fmt.Errorf("%w: no upload URL returned", llm.ErrUpload)
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodPost, sessionURL, bytes.NewReader(data))
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: %v", llm.ErrUpload, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: finalize: %v", llm.ErrUpload, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: finalize: %v", llm.ErrUpload, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return llm.FileRef{}, fmt.Errorf("%w: finalize: status %d: %s", llm.ErrUpload, resp.StatusCode, truncate(body))
	}

	var parsed uploadResult
	if err := json.Unmarshal(body, &parsed); err != nil {
		return llm.FileRef{}, fmt.Errorf("%w: finalize response: %v", llm.ErrUpload, err)
	}
	if parsed.File.URI == "" {
		return llm.FileRef{}, fmt.Errorf("%w: finalize response missing file uri", llm.ErrUpload)
	}
	mimeType := parsed.File.MimeType
	if mimeType == "" {
		mimeType = contentType
	}
	return llm.FileRef{URI: parsed.File.URI, MimeType: mimeType}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"fileData,omitempty"`
}

type fileData struct {
	FileURI  string `json:"fileUri"`
	MimeType string `json:"mimeType,omitempty"`
}

// Generate posts a single prompt, optionally grounded on an uploaded file.
func (c *Client) Generate(ctx context.Context, ref *llm.FileRef, prompt string) (llm.Response, error) {
	msg := content{Parts: []part{{Text: prompt}}}
	if ref != nil {
		msg = content{
			Role: "user",
			Parts: []part{
				{FileData: &fileData{FileURI: ref.URI, MimeType: ref.MimeType}},
				{Text: prompt},
			},
		}
	}
	payload, err := json.Marshal(generateRequest{Contents: []content{msg}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrGeneration, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", llm.ErrGeneration, resp.StatusCode, truncate(body))
	}
	return llm.Decode(body), nil
}

func truncate(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
