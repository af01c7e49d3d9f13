package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFormat is returned for uploads other than .pdf and .docx.
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	// ErrUnreadableDocument covers corrupt files and files without text.
	ErrUnreadableDocument = errors.New("document could not be read")
)

var (
	reXMLTags  = regexp.MustCompile(`<[^>]+>`)
	reBlanks   = regexp.MustCompile(`[ \t\r\f\v\x{3000}]+`)
	reNewlines = regexp.MustCompile(`\n+`)
)

// ParseDocumentText extracts plain text from an uploaded résumé.
// Supports: .pdf and .docx
func ParseDocumentText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractTextFromPDF(data)
	case ".docx":
		text, err = extractTextFromDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, filepath.Base(filename), err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text found", ErrUnreadableDocument)
	}
	return text, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}
	xml := string(docXML)
	// параграфы -> переводы строк
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := reXMLTags.ReplaceAllString(xml, "")
	return normalizeWhitespace(txt), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(strings.ReplaceAll(s, " \n", "\n"), "\n")
	return strings.TrimSpace(s)
}
