package fetch

import (
	"bytes"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DecodeBody converts a response body to UTF-8. Resolution order: the
// charset declared in the document itself (BOM or meta tag), then the
// Content-Type header, then statistical detection. Japanese government
// pages regularly serve Shift_JIS while declaring something else in the
// header, so the document declaration wins and the detection fallback
// tries the legacy Japanese encodings explicitly.
func DecodeBody(body []byte, contentType string) string {
	// Document-declared charset: BOM or meta prescan. DetermineEncoding
	// falls back to windows-1252 when nothing is declared; treat that
	// fallback as "no declaration".
	enc, name, certain := charset.DetermineEncoding(body, "")
	if certain || name != "windows-1252" {
		if text, ok := decodeWith(enc, body); ok {
			return text
		}
	}

	// Transport-declared charset.
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if cs, ok := params["charset"]; ok {
			if enc, err := htmlindex.Get(cs); err == nil {
				if text, ok := decodeWith(enc, body); ok {
					return text
				}
			}
		}
	}

	return detectAndDecode(body)
}

// detectAndDecode picks the candidate encoding whose decode produces the
// fewest replacement runes. Valid UTF-8 wins outright.
func detectAndDecode(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}

	candidates := []encoding.Encoding{japanese.ShiftJIS, japanese.EUCJP, japanese.ISO2022JP}

	best := ""
	bestErrors := -1
	for _, enc := range candidates {
		text, ok := decodeWith(enc, body)
		if !ok {
			continue
		}
		errors := strings.Count(text, string(utf8.RuneError))
		if bestErrors == -1 || errors < bestErrors {
			best, bestErrors = text, errors
		}
		if errors == 0 {
			break
		}
	}

	if bestErrors == -1 {
		// Nothing decoded cleanly; surface the bytes as-is.
		return string(body)
	}
	return best
}

// decodeWith runs the decoder and rejects results that are still mostly
// broken (an encoding mismatch tends to produce replacement-rune soup).
func decodeWith(enc encoding.Encoding, body []byte) (string, bool) {
	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return "", false
	}
	if len(decoded) > 0 && bytes.Count(decoded, []byte(string(utf8.RuneError)))*4 > len(decoded) {
		return "", false
	}
	return string(decoded), true
}
