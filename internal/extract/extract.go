package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// ErrUnsupported is returned for payloads that are not PDF documents.
var ErrUnsupported = errors.New("unsupported file type")

// PDFText extracts plain text from an in-memory PDF payload.
func PDFText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if normalizeMimeType(mimeType) != mimePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mimeType)
	}
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
