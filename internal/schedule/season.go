package schedule

import (
	"strings"
	"time"
)

// Season is the seasonal intent inferred from a task title.
type Season int

const (
	SeasonNone Season = iota
	SeasonWinter
	SeasonSpring
	SeasonSummer
	SeasonFall
)

// InferSeasonalHint classifies a title by keyword. This mirrors the
// historical title heuristics exactly; titles without a keyword get no
// seasonal treatment. Note "ac " keeps its trailing space so "AC Unit"
// matches but "Replace" does not. "HVAC " also matches, a historical
// quirk that stays harmless because only Seasonal-category templates
// consult the hint.
func InferSeasonalHint(title string) Season {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "winter") || strings.Contains(t, "snow"):
		return SeasonWinter
	case strings.Contains(t, "spring") || strings.Contains(t, "sprinkler"):
		return SeasonSpring
	case strings.Contains(t, "summer") || strings.Contains(t, "ac "):
		return SeasonSummer
	case strings.Contains(t, "fall") || strings.Contains(t, "gutter"):
		return SeasonFall
	default:
		return SeasonNone
	}
}

// seasonalDue computes the calendar-anchored due date for a seasonal
// hint, or (zero, false) when the hint carries no override.
func seasonalDue(hint Season, now time.Time) (time.Time, bool) {
	month := now.Month()
	switch hint {
	case SeasonWinter:
		// Nov through Mar counts as "already winter".
		if month >= time.November || month <= time.March {
			return now.AddDate(0, 0, 7), true
		}
		return time.Date(now.Year(), time.November, 1, 0, 0, 0, 0, now.Location()), true
	case SeasonSpring:
		return rollForward(time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, now.Location()), now), true
	case SeasonSummer:
		if month >= time.May && month <= time.September {
			return now.AddDate(0, 0, 14), true
		}
		return rollForward(time.Date(now.Year(), time.May, 1, 0, 0, 0, 0, now.Location()), now), true
	case SeasonFall:
		return rollForward(time.Date(now.Year(), time.October, 1, 0, 0, 0, 0, now.Location()), now), true
	default:
		return time.Time{}, false
	}
}

func rollForward(due, now time.Time) time.Time {
	if due.Before(now) {
		return due.AddDate(1, 0, 0)
	}
	return due
}
