package llm

import (
	"bytes"
	"encoding/json"
)

// Response is the provider reply decoded once at the gateway. The concrete
// type is one of *CandidateResponse, PlainTextResponse or UnrecognizedResponse.
type Response interface {
	// Raw returns the body exactly as the provider sent it.
	Raw() json.RawMessage
	sealed()
}

// CandidateResponse is the usual generateContent envelope.
type CandidateResponse struct {
	Candidates []Candidate `json:"candidates"`

	raw json.RawMessage
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

func (r *CandidateResponse) Raw() json.RawMessage { return r.raw }
func (*CandidateResponse) sealed() {}

// PlainTextResponse is a provider body that is a bare JSON string.
type PlainTextResponse string

func (p PlainTextResponse) Raw() json.RawMessage {
	b, _ := json.Marshal(string(p))
	return b
}
func (PlainTextResponse) sealed() {}

// UnrecognizedResponse holds any body that matches neither known shape.
type UnrecognizedResponse json.RawMessage

func (u UnrecognizedResponse) Raw() json.RawMessage { return json.RawMessage(u) }
func (UnrecognizedResponse) sealed() {}

// Decode classifies a provider body. It never fails: anything that is not a
// candidate envelope or a JSON string is kept as UnrecognizedResponse.
func Decode(body []byte) Response {
	raw := append(json.RawMessage(nil), body...)
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return UnrecognizedResponse(raw)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return PlainTextResponse(s)
		}
	case '{':
		var probe struct {
			Candidates json.RawMessage `json:"candidates"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil || len(probe.Candidates) == 0 || probe.Candidates[0] != '[' {
			break
		}
		var resp CandidateResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			break
		}
		resp.raw = raw
		return &resp
	}
	return UnrecognizedResponse(raw)
}

// ExtractText returns the first part of the first candidate, or the string
// itself for a plain text reply. ok is false when no text can be found.
func ExtractText(resp Response) (string, bool) {
	switch r := resp.(type) {
	case *CandidateResponse:
		if r == nil || len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
			return "", false
		}
		return r.Candidates[0].Content.Parts[0].Text, true
	case PlainTextResponse:
		return string(r), true
	default:
		return "", false
	}
}
