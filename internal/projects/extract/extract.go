// Package extract pulls delimiter-marked documents out of free-form oracle text.
package extract

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// RankingMarker prefixes the single-line ranking metadata inside a metadata block.
const RankingMarker = "[METADATA_RANKING]"

// Tag is a literal start/end delimiter pair.
type Tag struct {
	Start string
	End   string
}

func (t Tag) String() string { return t.Start }

var (
	mu       sync.RWMutex
	patterns = map[Tag]*regexp.Regexp{}
)

func pattern(t Tag) *regexp.Regexp {
	mu.RLock()
	re, ok := patterns[t]
	mu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile(`(?is)` + regexp.QuoteMeta(t.Start) + `(.*?)` + regexp.QuoteMeta(t.End))
	mu.Lock()
	patterns[t] = re
	mu.Unlock()
	return re
}

// Extract returns the trimmed text between the first case-insensitive start
// delimiter and the first end delimiter following it. ok is false when no pair matches.
func Extract(text string, t Tag) (string, bool) {
	if t.Start == "" || t.End == "" {
		return "", false
	}
	m := pattern(t).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Segment is Extract without the found flag.
func Segment(text string, t Tag) string {
	s, _ := Extract(text, t)
	return s
}

// Many runs Extract independently for every tag against the same blob.
// Missing tags are absent from the result.
func Many(text string, tags ...Tag) map[Tag]string {
	out := make(map[Tag]string, len(tags))
	for _, t := range tags {
		if s, ok := Extract(text, t); ok {
			out[t] = s
		}
	}
	return out
}

// RemoveBlock deletes the first tagged block, delimiters included, and trims the rest.
func RemoveBlock(text string, t Tag) string {
	if t.Start == "" || t.End == "" {
		return strings.TrimSpace(text)
	}
	loc := pattern(t).FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
}

var rankingLine = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(RankingMarker) + `[ \t]*:?([^\n]*)`)

// Ranking returns the remainder of the first line carrying RankingMarker.
func Ranking(text string) (string, bool) {
	m := rankingLine.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

var anchorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<a\s+name="[^"]*">\s*</a>`),
	regexp.MustCompile(`(?i)<a\s+id="[^"]*">\s*</a>`),
	regexp.MustCompile(`(?i)<a\s+name="[^"]*"\s*/>`),
}

// CleanAnchors strips empty HTML anchors the oracle sometimes emits around headings.
func CleanAnchors(text string) string {
	for _, re := range anchorPatterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// Lines splits a block into trimmed non-empty lines, dropping list bullets.
func Lines(block string) []string {
	var out []string
	for _, l := range strings.Split(block, "\n") {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "-*• ")
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Outcome describes how Resolve produced its content.
type Outcome int

const (
	Tagged Outcome = iota
	RawFallback
	Placeholder
)

func (o Outcome) String() string {
	switch o {
	case Tagged:
		return "tagged"
	case RawFallback:
		return "raw"
	default:
		return "placeholder"
	}
}

// Resolve applies the fallback policy: the tagged segment when present,
// otherwise the whole raw text when it has at least minLen runes, otherwise placeholder.
func Resolve(raw string, t Tag, minLen int, placeholder string) (string, Outcome) {
	if s, ok := Extract(raw, t); ok && s != "" {
		return s, Tagged
	}
	return Fallback(raw, minLen, placeholder)
}

// Fallback is Resolve for stages with no tag to look for.
func Fallback(raw string, minLen int, placeholder string) (string, Outcome) {
	if utf8.RuneCountInString(raw) >= minLen && strings.TrimSpace(raw) != "" {
		return raw, RawFallback
	}
	return placeholder, Placeholder
}
