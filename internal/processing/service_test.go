package processing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Ayush27641/ClarityVault-Ai/internal/llm"
)

type fakeGateway struct {
	calls     []string
	prompts   []string
	refs      []*llm.FileRef
	reply     llm.Response
	uploadErr error
	genErr    error
	ctxErrs   []error
}

func (f *fakeGateway) UploadFile(ctx context.Context, data []byte, displayName, contentType string) (llm.FileRef, error) {
	f.calls = append(f.calls, "upload")
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.uploadErr != nil {
		return llm.FileRef{}, f.uploadErr
	}
	return llm.FileRef{URI: "files/" + displayName, MimeType: contentType}, nil
}

func (f *fakeGateway) Generate(ctx context.Context, ref *llm.FileRef, prompt string) (llm.Response, error) {
	f.calls = append(f.calls, "generate")
	f.prompts = append(f.prompts, prompt)
	f.refs = append(f.refs, ref)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.genErr != nil {
		return nil, f.genErr
	}
	if f.reply != nil {
		return f.reply, nil
	}
	return llm.Decode([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)), nil
}

type fakeSearcher struct {
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, title, language string) []string {
	f.calls++
	return []string{"https://www.youtube.com/watch?v=" + title}
}

func pdf() *Upload {
	return &Upload{Filename: "lease.pdf", ContentType: PDFContentType, Data: []byte("%PDF")}
}

func pdfOps(svc *Service) map[string]func(*Upload) error {
	ctx := context.Background()
	return map[string]func(*Upload) error{
		OpPDFTranslation: func(u *Upload) error {
			_, err := svc.TranslatePDF(ctx, u, "Hindi")
			return err
		},
		OpJargonExtraction: func(u *Upload) error {
			_, err := svc.ExtractJargon(ctx, u, "Hindi")
			return err
		},
		OpDocumentType: func(u *Upload) error {
			_, err := svc.DocumentType(ctx, u)
			return err
		},
		OpHarmfulTerms: func(u *Upload) error {
			_, err := svc.HarmfulTerms(ctx, u)
			return err
		},
		OpContractAlternatives: func(u *Upload) error {
			_, err := svc.ContractAlternatives(ctx, u)
			return err
		},
		OpLoanAnalysis: func(u *Upload) error {
			_, err := svc.AnalyzeLoan(ctx, u)
			return err
		},
	}
}

func TestPDFOperationsRejectNonPDF(t *testing.T) {
	uploads := []*Upload{
		nil,
		{Filename: "a.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{Filename: "a.txt", ContentType: "text/plain"},
		{Filename: "a.pdf", ContentType: "application/pdf; charset=binary"},
		{Filename: "a.pdf", ContentType: "APPLICATION/PDF"},
		{Filename: "a.pdf", ContentType: ""},
	}
	for _, u := range uploads {
		gw := &fakeGateway{}
		svc := NewService(gw, &fakeSearcher{})
		for name, op := range pdfOps(svc) {
			err := op(u)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Message != "Only PDF files are supported" {
				t.Fatalf("%s: expected PDF rejection, got %v", name, err)
			}
			var runErr *RunError
			if !errors.As(err, &runErr) || runErr.Transition() != "RECEIVED->REJECTED" {
				t.Fatalf("%s: expected RECEIVED->REJECTED, got %v", name, err)
			}
		}
		if len(gw.calls) != 0 {
			t.Fatalf("expected no gateway calls, got %v", gw.calls)
		}
	}
}

func TestPDFOperationsUploadThenGenerateOnce(t *testing.T) {
	for name := range pdfOps(NewService(&fakeGateway{}, nil)) {
		gw := &fakeGateway{}
		svc := NewService(gw, &fakeSearcher{})
		if err := pdfOps(svc)[name](pdf()); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if strings.Join(gw.calls, ",") != "upload,generate" {
			t.Fatalf("%s: expected upload then generate, got %v", name, gw.calls)
		}
		if gw.refs[0] == nil || gw.refs[0].URI != "files/lease.pdf" {
			t.Fatalf("%s: expected generate to reference the upload, got %+v", name, gw.refs[0])
		}
	}
}

func TestProviderCallsIgnoreRequestCancellation(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, &fakeSearcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.TranslatePDF(ctx, pdf(), "French"); err != nil {
		t.Fatalf("TranslatePDF: %v", err)
	}
	for i, err := range gw.ctxErrs {
		if err != nil {
			t.Fatalf("call %d saw cancelled context: %v", i, err)
		}
	}
}

func TestUploadFailureSurfacesUnderlyingMessage(t *testing.T) {
	gw := &fakeGateway{uploadErr: fmt.Errorf("%w: no upload URL returned", llm.ErrUpload)}
	svc := NewService(gw, &fakeSearcher{})

	_, err := svc.TranslatePDF(context.Background(), pdf(), "French")
	if !errors.Is(err, llm.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
	if !strings.Contains(err.Error(), "no upload URL returned") {
		t.Fatalf("expected underlying message, got %q", err.Error())
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Transition() != "PROMPTED->FAILED" {
		t.Fatalf("expected PROMPTED->FAILED, got %v", err)
	}
	if strings.Join(gw.calls, ",") != "upload" {
		t.Fatalf("expected generation to be skipped, got %v", gw.calls)
	}
}

func TestTranslateTextExtractsText(t *testing.T) {
	gw := &fakeGateway{reply: llm.Decode([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hola"}]}}]}`))}
	svc := NewService(gw, &fakeSearcher{})

	res, err := svc.TranslateText(context.Background(), "Hello", "Spanish")
	if err != nil {
		t.Fatalf("TranslateText: %v", err)
	}
	if !res.Found || res.Text != "Hola" {
		t.Fatalf("unexpected result %+v", res)
	}
	if gw.refs[0] != nil {
		t.Fatalf("expected text-only generation")
	}
	if !strings.HasPrefix(gw.prompts[0], " Hello\n\nGiven the text above translate the given text in Spanish") {
		t.Fatalf("unexpected prompt %q", gw.prompts[0])
	}
}

func TestTranslateTextShapeMismatchKeepsRaw(t *testing.T) {
	gw := &fakeGateway{reply: llm.Decode([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))}
	svc := NewService(gw, &fakeSearcher{})

	res, err := svc.TranslateText(context.Background(), "Hello", "Spanish")
	if err != nil {
		t.Fatalf("TranslateText: %v", err)
	}
	if res.Found {
		t.Fatalf("expected no text found")
	}
	if string(res.Response.Raw()) != `{"promptFeedback":{"blockReason":"SAFETY"}}` {
		t.Fatalf("expected raw reply preserved, got %s", res.Response.Raw())
	}
}

func TestRunUsesServiceClock(t *testing.T) {
	svc := NewService(&fakeGateway{}, nil)
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := start
	svc.now = func() time.Time { return clock }

	r := svc.begin(OpHarmfulTerms)
	if !r.started.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, r.started)
	}
	clock = start.Add(1500 * time.Millisecond)
	if got := r.elapsed(); got != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s elapsed, got %v", got)
	}
}

func TestTextOperationsValidate(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, &fakeSearcher{})
	ctx := context.Background()

	if _, err := svc.TranslateText(ctx, " ", "Spanish"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.AnalyzeText(ctx, "text", "English", ""); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("expected no gateway calls, got %v", gw.calls)
	}
}

func TestSearchVideos(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(&fakeGateway{}, searcher)

	if _, err := svc.SearchVideos(context.Background(), "", "English"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	links, err := svc.SearchVideos(context.Background(), "lease", "English")
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}
	if len(links) != 1 || searcher.calls != 1 {
		t.Fatalf("unexpected links %v calls %d", links, searcher.calls)
	}
}
