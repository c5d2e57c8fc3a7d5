package lastfm

import (
	"strconv"
	"strings"
	"time"

	"LastFM-Go/pkg/xmldoc"
)

// The service omits or blanks optional fields depending on scope and
// permissions, and occasionally sends malformed numbers. Every optional
// conversion goes through one of these helpers so the default is visible at
// the call site.

// intOr parses s or returns def.
func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// int64Or parses s or returns def.
func int64Or(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// floatOr parses s or returns def.
func floatOr(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

// flag reads the service's boolean encodings ("1", "true").
func flag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// childInt probes for the named child before converting it.
func childInt(el *xmldoc.Element, name string, def int) int {
	if !el.HasChild(name) {
		return def
	}
	return intOr(el.ChildText(name), def)
}

// childFloat probes for the named child before converting it.
func childFloat(el *xmldoc.Element, name string, def float64) float64 {
	if !el.HasChild(name) {
		return def
	}
	return floatOr(el.ChildText(name), def)
}

// unixTime converts a seconds-since-epoch string. Empty, zero or malformed
// values give the zero time.
func unixTime(s string) time.Time {
	n := int64Or(s, 0)
	if n <= 0 {
		return time.Time{}
	}
	return time.Unix(n, 0).UTC()
}

// dateLayouts are the textual date formats found in responses.
var dateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2 Jan 2006, 15:04",
	"02 Jan 2006, 15:04",
	time.RFC3339,
}

// parseDate tries each known layout and returns the zero time when none match.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// elementTime reads a timestamp that may be carried as an attribute holding
// unix seconds (uts, unixtime) or as formatted text.
func elementTime(el *xmldoc.Element) time.Time {
	if el == nil {
		return time.Time{}
	}
	for _, attr := range []string{"uts", "unixtime"} {
		if v, ok := el.Attr(attr); ok {
			if t := unixTime(v); !t.IsZero() {
				return t
			}
		}
	}
	return parseDate(el.Text())
}

// textOrName returns the element text, or the text of its <name> child for
// the nested form some methods use.
func textOrName(el *xmldoc.Element) string {
	if el.HasChild("name") {
		return el.ChildText("name")
	}
	return el.Text()
}

// textsOf returns the text of every child with the given name.
func textsOf(el *xmldoc.Element, name string) []string {
	var out []string
	for _, c := range el.ChildrenNamed(name) {
		if t := textOrName(c); t != "" {
			out = append(out, t)
		}
	}
	return out
}
