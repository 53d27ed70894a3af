package resumes

import "testing"

func TestParseAIResultScoreAndReason(t *testing.T) {
	score, feedback := ParseAIResult("Score: 87\nReason: Strong match")
	if score == nil || *score != 87 {
		t.Fatalf("expected score 87, got %v", score)
	}
	if feedback != "Strong match" {
		t.Fatalf("expected feedback %q, got %q", "Strong match", feedback)
	}
}

func TestParseAIResultClampsScore(t *testing.T) {
	score, _ := ParseAIResult("Score: 150\nReason: x")
	if score == nil || *score != 100 {
		t.Fatalf("expected score clamped to 100, got %v", score)
	}
}

func TestParseAIResultNoPattern(t *testing.T) {
	raw := "  The model went off script entirely.  "
	score, feedback := ParseAIResult(raw)
	if score != nil {
		t.Fatalf("expected nil score, got %d", *score)
	}
	if feedback != "The model went off script entirely." {
		t.Fatalf("expected full trimmed text as feedback, got %q", feedback)
	}
}

func TestParseAIResultCaseInsensitive(t *testing.T) {
	score, feedback := ParseAIResult("sCoRe : 42\nrEaSoN : fine")
	if score == nil || *score != 42 {
		t.Fatalf("expected score 42, got %v", score)
	}
	if feedback != "fine" {
		t.Fatalf("expected feedback %q, got %q", "fine", feedback)
	}
}

func TestParseAIResultMultilineReason(t *testing.T) {
	_, feedback := ParseAIResult("Score: 70\nReason: solid skills\nbut missing cloud experience")
	if feedback != "solid skills\nbut missing cloud experience" {
		t.Fatalf("expected reason to span lines, got %q", feedback)
	}
}
