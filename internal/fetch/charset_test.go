package fetch

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func encodeShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("Failed to encode test fixture: %v", err)
	}
	return out
}

func TestDecodeBodyUTF8(t *testing.T) {
	body := []byte("<html><body>山田太郎</body></html>")
	got := DecodeBody(body, "text/html; charset=utf-8")
	if got != string(body) {
		t.Errorf("Expected UTF-8 passthrough, got %q", got)
	}
}

func TestDecodeBodyMetaDeclared(t *testing.T) {
	page := `<html><head><meta charset="shift_jis"></head><body>選挙結果 山田太郎</body></html>`
	body := encodeShiftJIS(t, page)

	// The header lies; the meta declaration must win.
	got := DecodeBody(body, "text/html; charset=utf-8")
	if !strings.Contains(got, "山田太郎") {
		t.Errorf("Expected meta-declared Shift_JIS decode, got %q", got)
	}
}

func TestDecodeBodyHeaderDeclared(t *testing.T) {
	body := encodeShiftJIS(t, "<html><body>選挙結果 山田太郎</body></html>")

	got := DecodeBody(body, "text/html; charset=shift_jis")
	if !strings.Contains(got, "山田太郎") {
		t.Errorf("Expected header-declared Shift_JIS decode, got %q", got)
	}
}

func TestDecodeBodyDetected(t *testing.T) {
	// No declaration anywhere; detection has to recognize the encoding.
	body := encodeShiftJIS(t, "<html><body>東京都議会議員選挙の結果、山田太郎氏が当選した。</body></html>")

	got := DecodeBody(body, "text/html")
	if !strings.Contains(got, "山田太郎") {
		t.Errorf("Expected detected Shift_JIS decode, got %q", got)
	}
}

func TestDecodeBodyEUCJP(t *testing.T) {
	out, _, err := transform.Bytes(japanese.EUCJP.NewEncoder(), []byte("<html><body>議会だより 鈴木花子</body></html>"))
	if err != nil {
		t.Fatalf("Failed to encode test fixture: %v", err)
	}

	got := DecodeBody(out, "text/html; charset=euc-jp")
	if !strings.Contains(got, "鈴木花子") {
		t.Errorf("Expected EUC-JP decode, got %q", got)
	}
}

func TestDecodeBodyEmpty(t *testing.T) {
	if got := DecodeBody(nil, ""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
