package dataset

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// secondsEpoch is the reference assumed for bare "second" units.
var secondsEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

var referenceLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z",
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04",
	"2006-1-2 15:4:5",
	"2006-01-02",
}

// DecodeTimes reads a CF time coordinate ("<unit> since <reference>").
func DecodeTimes(v Variable) ([]time.Time, error) {
	units, ok := v.TextAttr("units")
	if !ok {
		return nil, fmt.Errorf("time variable %s has no units", v.Name())
	}
	step, ref, err := ParseTimeUnits(units)
	if err != nil {
		return nil, err
	}
	raw, err := v.Read(make([]int, len(v.Shape())), v.Shape())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", v.Name(), err)
	}
	times := make([]time.Time, len(raw))
	for i, r := range raw {
		if times[i], err = offsetTime(ref, r, step); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", v.Name(), i, err)
		}
	}
	return times, nil
}

// maxOffsetSeconds bounds decoded offsets to what a float64 holds exactly.
const maxOffsetSeconds = 1 << 53

// offsetTime returns ref + r*step. Whole seconds are added through Unix time
// so offsets past the time.Duration range, such as days since year 1, stay
// exact.
func offsetTime(ref time.Time, r float64, step time.Duration) (time.Time, error) {
	secs := r * step.Seconds()
	if math.IsNaN(secs) || math.Abs(secs) > maxOffsetSeconds {
		return time.Time{}, fmt.Errorf("time offset %v %s is out of range", r, step)
	}
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(ref.Unix()+int64(whole), int64(ref.Nanosecond())+int64(nanos)).UTC(), nil
}

// ParseTimeUnits splits CF units into a step duration and a reference time.
// A bare "second" means seconds since 2000-01-01.
func ParseTimeUnits(units string) (time.Duration, time.Time, error) {
	units = strings.TrimSpace(units)
	if units == "second" || units == "seconds" {
		return time.Second, secondsEpoch, nil
	}

	unit, ref, found := strings.Cut(units, " since ")
	if !found {
		return 0, time.Time{}, fmt.Errorf("unsupported time units %q", units)
	}

	var step time.Duration
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "seconds", "second", "secs", "sec", "s":
		step = time.Second
	case "minutes", "minute", "mins", "min":
		step = time.Minute
	case "hours", "hour", "hrs", "hr", "h":
		step = time.Hour
	case "days", "day", "d":
		step = 24 * time.Hour
	default:
		return 0, time.Time{}, fmt.Errorf("unsupported time unit %q", unit)
	}

	ref = strings.TrimSpace(ref)
	for _, layout := range referenceLayouts {
		if t, err := time.Parse(layout, ref); err == nil {
			return step, t.UTC(), nil
		}
	}
	return 0, time.Time{}, fmt.Errorf("unsupported reference time %q", ref)
}
