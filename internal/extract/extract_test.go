package extract

import (
	"context"
	"errors"
	"testing"
)

func TestPDFTextRejectsNonPDF(t *testing.T) {
	ctx := context.Background()

	cases := []string{
		"application/msword",
		"text/plain",
		"image/png",
		"",
	}
	for _, mime := range cases {
		if _, err := PDFText(ctx, []byte("data"), mime); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%q: expected ErrUnsupported, got %v", mime, err)
		}
	}
}

func TestPDFTextAcceptsMimeVariants(t *testing.T) {
	ctx := context.Background()

	// These should get past the type check and fail on the payload instead.
	for _, mime := range []string{"application/pdf", "Application/PDF", "application/pdf; charset=binary"} {
		_, err := PDFText(ctx, []byte("not a real pdf"), mime)
		if err == nil {
			t.Fatalf("%q: expected parse error for garbage payload", mime)
		}
		if errors.Is(err, ErrUnsupported) {
			t.Fatalf("%q: type check rejected a pdf mime type", mime)
		}
	}
}

func TestPDFTextEmptyPayload(t *testing.T) {
	if _, err := PDFText(context.Background(), nil, "application/pdf"); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestPDFTextHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PDFText(ctx, []byte("data"), "application/pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
