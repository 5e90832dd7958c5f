package classify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"cubby/internal/category"
	"cubby/internal/classify"
	"cubby/internal/services/magic"
)

type stubSniffer struct {
	result magic.Result
	err    error
	calls  int
}

func (s *stubSniffer) Sniff(_ context.Context, _ string) (magic.Result, error) {
	s.calls++
	if s.err != nil {
		return magic.Result{}, s.err
	}
	return s.result, nil
}

func TestClassifyContentMatchBeatsExtension(t *testing.T) {
	sniffer := &stubSniffer{result: magic.Result{
		MIMEType:    "image/png",
		Description: "PNG image data, 800 x 600, 8-bit/color RGBA",
	}}
	classifier := classify.New(sniffer, nil)

	decision := classifier.Classify(context.Background(), "/downloads/report.txt")

	if decision.Category != category.Images {
		t.Fatalf("expected Images, got %s", decision.Category)
	}
	if decision.Via != classify.ViaContent {
		t.Fatalf("expected content decision, got %s", decision.Via)
	}
	if decision.MIMEType != "image/png" {
		t.Fatalf("expected mime carried through, got %q", decision.MIMEType)
	}
	if sniffer.calls != 1 {
		t.Fatalf("expected one sniff, got %d", sniffer.calls)
	}
}

func TestClassifySniffErrorFallsBackToExtension(t *testing.T) {
	sniffer := &stubSniffer{err: errors.New("magic mime lookup: exit status 1")}
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	classifier := classify.New(sniffer, logger)

	decision := classifier.Classify(context.Background(), "/downloads/photo.jpg")

	if decision.Category != category.Images {
		t.Fatalf("expected Images via extension, got %s", decision.Category)
	}
	if decision.Via != classify.ViaExtension {
		t.Fatalf("expected extension decision, got %s", decision.Via)
	}
	if !strings.Contains(buf.String(), "content sniff failed") {
		t.Fatalf("expected warning record, got: %s", buf.String())
	}
}

func TestClassifyUnmatchedDescriptionUsesExtension(t *testing.T) {
	sniffer := &stubSniffer{result: magic.Result{
		MIMEType:    "application/octet-stream",
		Description: "data",
	}}
	classifier := classify.New(sniffer, nil)

	decision := classifier.Classify(context.Background(), "/downloads/report.pdf")

	if decision.Category != category.Documents {
		t.Fatalf("expected Documents, got %s", decision.Category)
	}
	if decision.Via != classify.ViaExtension {
		t.Fatalf("expected extension decision, got %s", decision.Via)
	}
	if decision.Description != "data" {
		t.Fatalf("expected sniffed description retained, got %q", decision.Description)
	}
}

func TestClassifyNilSnifferUsesExtensionsOnly(t *testing.T) {
	classifier := classify.New(nil, nil)

	decision := classifier.Classify(context.Background(), "song.mp3")

	if decision.Category != category.Music {
		t.Fatalf("expected Music, got %s", decision.Category)
	}
	if decision.Via != classify.ViaExtension {
		t.Fatalf("expected extension decision, got %s", decision.Via)
	}
	if decision.MIMEType != "" || decision.Description != "" {
		t.Fatalf("expected no sniff data, got %+v", decision)
	}
}

func TestClassifyUnknownFallsToOthers(t *testing.T) {
	classifier := classify.New(nil, nil)

	for _, path := range []string{"archive.xyz", "README", "noext.", "weird name with spaces"} {
		decision := classifier.Classify(context.Background(), path)
		if decision.Category != category.Others {
			t.Fatalf("%s: expected Others, got %s", path, decision.Category)
		}
		if decision.Via != classify.ViaFallback {
			t.Fatalf("%s: expected fallback decision, got %s", path, decision.Via)
		}
	}
}

func TestClassifyIsTotalUnderSniffErrors(t *testing.T) {
	sniffer := &stubSniffer{err: errors.New("context deadline exceeded")}
	classifier := classify.New(sniffer, nil)

	for _, path := range []string{"a.tar.gz", "b", ".tricky.png", "c.Mp3"} {
		decision := classifier.Classify(context.Background(), path)
		if decision.Category == "" {
			t.Fatalf("%s: expected a category", path)
		}
	}
}
