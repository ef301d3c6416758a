package processing

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

func envelope(t *testing.T, text string) llm.Response {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return llm.Decode(body)
}

func recordAt(t *testing.T, terms []any, i int) Record {
	t.Helper()
	rec, ok := terms[i].(Record)
	if !ok {
		t.Fatalf("term %d: expected Record, got %T", i, terms[i])
	}
	return rec
}

func TestParseHarmfulTermsLabeledText(t *testing.T) {
	text := "HARMFUL TERM: Auto-renewal\nPAGE: 4\nRISK LEVEL: HIGH\nDESCRIPTION: x\nPOTENTIAL IMPACT: y\nRECOMMENDATION: z\n---\n"
	got := ParseHarmfulTerms(envelope(t, text))

	want := []any{Record{
		"HARMFUL TERM":     "Auto-renewal",
		"PAGE":             "4",
		"RISK LEVEL":       "HIGH",
		"DESCRIPTION":      "x",
		"POTENTIAL IMPACT": "y",
		"RECOMMENDATION":   "z",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestParseHarmfulTermsNoneIdentified(t *testing.T) {
	for _, text := range []string{
		"NO HARMFUL TERMS IDENTIFIED - This document appears to have fair and balanced terms.",
		"After review:\n\nNO HARMFUL TERMS IDENTIFIED - fine.\n---\nHARMFUL TERM: ignored",
		"",
	} {
		got := ParseHarmfulTerms(envelope(t, text))
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice for %q, got %#v", text, got)
		}
	}
}

func TestParseHarmfulTermsJSONUnchanged(t *testing.T) {
	text := `[{"HARMFUL TERM":"Penalty","PAGE":"2","RISK LEVEL":"LOW","extra":{"nested":true}}]`
	got := ParseHarmfulTerms(envelope(t, text))

	var want []any
	if err := json.Unmarshal([]byte(text), &want); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestParseHarmfulTermsJSONArrayOfStrings(t *testing.T) {
	got := ParseHarmfulTerms(envelope(t, `["Auto-renewal clause", "Unlimited liability"]`))
	want := []any{"Auto-renewal clause", "Unlimited liability"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestParseHarmfulTermsEmptyJSONArray(t *testing.T) {
	got := ParseHarmfulTerms(envelope(t, `[]`))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestParseHarmfulTermsJSONObjectWrapped(t *testing.T) {
	got := ParseHarmfulTerms(envelope(t, `  {"HARMFUL TERM":"Indemnity"}`))
	if len(got) != 1 || recordAt(t, got, 0)["HARMFUL TERM"] != "Indemnity" {
		t.Fatalf("expected single wrapped record, got %#v", got)
	}
}

func TestParseHarmfulTermsMalformedJSON(t *testing.T) {
	text := "[HIGH] Auto-renewal clause on page 3"
	got := ParseHarmfulTerms(envelope(t, text))
	if len(got) != 1 {
		t.Fatalf("expected one fallback record, got %#v", got)
	}
	rec := recordAt(t, got, 0)
	if rec["HARMFUL TERM"] != "Analysis Result" || rec["DESCRIPTION"] != text || rec["PAGE"] != "N/A" ||
		rec["RISK LEVEL"] != "Unknown" || rec["POTENTIAL IMPACT"] != "See description" ||
		rec["RECOMMENDATION"] != "Review analysis manually" {
		t.Fatalf("unexpected fallback record %#v", rec)
	}
}

func TestParseHarmfulTermsSkipsSegmentsWithoutTitle(t *testing.T) {
	text := "Intro paragraph\n---\n  HARMFUL TERM: Late fee  \n  PAGE: 7\n---\nPAGE: 9\nDESCRIPTION: orphan\n---\nharmful term: lowercase is ignored\n"
	got := ParseHarmfulTerms(envelope(t, text))
	if len(got) != 1 {
		t.Fatalf("expected one record, got %#v", got)
	}
	rec := recordAt(t, got, 0)
	if rec["HARMFUL TERM"] != "Late fee" || rec["PAGE"] != "7" {
		t.Fatalf("unexpected record %#v", rec)
	}
	if _, ok := rec["DESCRIPTION"]; ok {
		t.Fatalf("expected absent labels to stay absent")
	}
}

func TestParseHarmfulTermsUnrecognizedEnvelope(t *testing.T) {
	got := ParseHarmfulTerms(llm.Decode([]byte(`{}`)))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}
