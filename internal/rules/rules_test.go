package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/giinscan/giinscan/internal/clean"
	"github.com/giinscan/giinscan/internal/model"
)

func TestDefaultCompiles(t *testing.T) {
	if _, err := clean.New(clean.DefaultOptions(), Default()); err != nil {
		t.Fatalf("Expected built-in rules to compile, got %v", err)
	}
}

func TestDefaultOrdering(t *testing.T) {
	// The corporate-suffix rules must be the first to match this string so
	// that the reported reason is stable.
	c, err := clean.New(clean.Options{MinNameLength: 2, RequireJapanese: true}, Default())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	res := c.Clean([]model.RawRecord{{Name: "東京商事株式会社"}})
	if len(res.Rejected) != 1 {
		t.Fatalf("Expected 1 rejection, got %+v", res)
	}
	if res.Rejected[0].Reason != ReasonBusinessEntitySuffix {
		t.Errorf("Expected %s, got %s", ReasonBusinessEntitySuffix, res.Rejected[0].Reason)
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRules(t, `rules:
  - field: name
    pattern: 削除済み
    reason: custom_noise
  - field: affiliation
    pattern: '^テスト'
    kind: regex
    reason: test_party
`)

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(loaded))
	}
	if loaded[0].Kind != model.RuleKindSubstring {
		t.Errorf("Expected kind to default to substring, got %s", loaded[0].Kind)
	}
	if loaded[1].Kind != model.RuleKindRegex {
		t.Errorf("Expected regex kind preserved, got %s", loaded[1].Kind)
	}
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing pattern", "rules:\n  - field: name\n    reason: x\n"},
		{"missing reason", "rules:\n  - field: name\n    pattern: x\n"},
		{"bad yaml", "rules: [not closed\n"},
	}

	for _, tt := range tests {
		path := writeRules(t, tt.content)
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestForConfig(t *testing.T) {
	base := len(Default())

	got, err := ForConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != base {
		t.Errorf("Expected %d built-in rules, got %d", base, len(got))
	}

	path := writeRules(t, "rules:\n  - field: name\n    pattern: x\n    reason: custom\n")
	got, err = ForConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != base+1 {
		t.Errorf("Expected %d rules, got %d", base+1, len(got))
	}
	if got[len(got)-1].Reason != "custom" {
		t.Errorf("Expected file rules appended after built-ins, got %s", got[len(got)-1].Reason)
	}
}
