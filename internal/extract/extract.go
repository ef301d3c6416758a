package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF   = "application/pdf"
	MimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePPTX  = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimePlain = "text/plain"
)

// ErrUnsupported is returned for payloads that carry no extractable text.
var ErrUnsupported = errors.New("unsupported mime type")

// ooxmlKind describes where an Office Open XML package keeps its text and
// which elements end a line.
type ooxmlKind struct {
	marker string
	parts  func(name string) bool
	breaks map[string]bool
}

var ooxmlKinds = map[string]ooxmlKind{
	MimeDOCX: {
		marker: "word/document.xml",
		parts:  func(name string) bool { return name == "word/document.xml" },
		breaks: map[string]bool{"p": true, "br": true},
	},
	MimePPTX: {
		marker: "ppt/presentation.xml",
		parts:  func(name string) bool { return path.Dir(name) == "ppt/slides" && strings.HasSuffix(name, ".xml") },
		breaks: map[string]bool{"p": true},
	},
	MimeXLSX: {
		marker: "xl/workbook.xml",
		parts:  func(name string) bool { return name == "xl/sharedStrings.xml" },
		breaks: map[string]bool{"si": true},
	},
}

// Text extracts plain text from a stored PDF, Office Open XML or text payload.
func Text(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kind := detect(mimeType, fileName, data)
	switch kind {
	case MimePDF:
		return pdfText(data)
	case MimePlain:
		return string(data), nil
	}
	if k, ok := ooxmlKinds[kind]; ok {
		return ooxmlText(data, k)
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, kind)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func ooxmlText(data []byte, k ooxmlKind) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open package: %w", err)
	}

	var parts []*zip.File
	for _, f := range zr.File {
		if k.parts(partName(f)) {
			parts = append(parts, f)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%s not found", k.marker)
	}
	sort.Slice(parts, func(i, j int) bool {
		return partOrder(partName(parts[i])) < partOrder(partName(parts[j]))
	})

	var out []string
	for _, f := range parts {
		text, err := readPart(f, k.breaks)
		if err != nil {
			return "", err
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, "\n"), nil
}

func readPart(f *zip.File, breaks map[string]bool) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if breaks[t.Name.Local] && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// detect resolves the payload kind. Generic zip uploads are sniffed for an
// OOXML marker part, then fall back to the file extension.
func detect(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean != "application/zip" && clean != "application/octet-stream" {
		return clean
	}
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		for _, f := range zr.File {
			for kind, k := range ooxmlKinds {
				if partName(f) == k.marker {
					return kind
				}
			}
		}
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".txt":
		return MimePlain
	}
	return clean
}

func partName(f *zip.File) string {
	return strings.ReplaceAll(f.Name, "\\", "/")
}

// partOrder sorts slide1, slide2, ..., slide10 numerically.
func partOrder(name string) int {
	base := strings.TrimSuffix(path.Base(name), ".xml")
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return 0
	}
	return n
}
