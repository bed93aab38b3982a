package engagement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamps round-trip through the document store as either epoch seconds
// (integer or fractional) or ISO-8601 strings, with or without a trailing
// zone designator. This ambiguity is legacy behavior and is normalized here,
// at one boundary, instead of scattering format checks through matching and
// bucketing.

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp normalizes a raw stored timestamp to a UTC instant. Strings
// lacking a zone designator are treated as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if epoch, err := strconv.ParseFloat(raw, 64); err == nil {
		sec := int64(epoch)
		nsec := int64((epoch - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

// ParseTimestampValue normalizes a timestamp field decoded from JSON, where
// the source may have stored it as a number or a string.
func ParseTimestampValue(v any) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("missing timestamp")
	case float64:
		sec := int64(val)
		nsec := int64((val - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case string:
		return ParseTimestamp(val)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
