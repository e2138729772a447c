package bundle

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var canonicalDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CanonicalDate reconciles a free-form date into yyyy-mm-dd. Input already in
// that shape passes through unchanged; otherwise the value is split on the
// first of "-" or "/" and read as day, month, year. Anything else is
// unrecognized (ok=false) and the caller omits the field rather than failing
// the build.
func CanonicalDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if canonicalDatePattern.MatchString(s) {
		return s, true
	}

	sep := ""
	for _, c := range []string{"-", "/"} {
		if strings.Contains(s, c) {
			sep = c
			break
		}
	}
	if sep == "" {
		return "", false
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", false
	}
	day, month, year := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	if day == "" || month == "" || year == "" {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// OffsetTimestamp renders a zone-naive local instant (zero means "now") as an
// ISO-8601 timestamp with an explicit numeric UTC offset. The offset is the
// current process's local offset at conversion time, not the historical
// offset of the instant; downstream consumers depend on this approximation.
func OffsetTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	_, offset := time.Now().Zone()
	zone := time.FixedZone("", offset)
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, zone)
	return local.Format("2006-01-02T15:04:05-07:00")
}

var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseLocalInstant reads a zone-naive local timestamp string.
func ParseLocalInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveTime resolves a per-row measurement date. A value with a time
// component becomes a full offset timestamp, a plain date is canonicalized,
// and anything unrecognized falls back to the document's authored time.
func EffectiveTime(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if strings.ContainsAny(raw, "T:") {
		if t, ok := ParseLocalInstant(raw); ok {
			return OffsetTimestamp(t)
		}
		return fallback
	}
	if d, ok := CanonicalDate(raw); ok {
		return d
	}
	return fallback
}
