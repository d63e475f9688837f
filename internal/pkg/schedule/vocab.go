// Package schedule parses the multi document YAML course plan
// and renders it through the header's template.
package schedule

import (
	"strings"
	"unicode/utf8"

	"github.com/umisama/go-regexpcache"
	"golang.org/x/text/unicode/norm"
)

// vocabulary maps the Hungarian schedule keys to their field names.
var vocabulary = map[string]string{
	"elso ora":   "first_section",
	"utolso ora": "last_section",
	"idopont":    "time_slot",
	"csoport":    "title",
	"rovidnev":   "short_name",
	"szunetek":   "breaks",
	"feladatok":  "exs",
}

// NoAccent strips diacritics, "Első óra" becomes "Elso ora".
// The text is NFKD decomposed and the non ASCII bytes are dropped.
func NoAccent(text string) string {
	var out strings.Builder
	for _, b := range []byte(norm.NFKD.String(text)) {
		if b < utf8.RuneSelf {
			out.WriteByte(b)
		}
	}
	return out.String()
}

// NormalizeKey folds a schedule key to its canonical field name,
// "Első   Óra" becomes "first_section". Unknown keys are kept, folded.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = NoAccent(key)
	key = regexpcache.MustCompile(`\s+`).ReplaceAllString(key, " ")
	key = strings.ToLower(key)
	if normalized, found := vocabulary[key]; found {
		return normalized
	}
	return key
}
