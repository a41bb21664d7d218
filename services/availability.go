package services

import (
	"strconv"
	"strings"
)

// IsOpen reports whether a shop is open at the given hour (0-23), based on
// its free-text opening and closing labels ("9 AM", "10 PM"). Unparseable
// labels mean closed. When the closing hour precedes the opening hour the
// shop is open overnight. Pure function; callers re-evaluate every time
// since "now" moves.
func IsOpen(openingLabel, closingLabel string, now int) bool {
	opening, ok := parseHourLabel(openingLabel)
	if !ok {
		return false
	}
	closing, ok := parseHourLabel(closingLabel)
	if !ok {
		return false
	}

	if closing < opening {
		// Overnight wrap, e.g. 10 PM - 6 AM.
		return now >= opening || now < closing
	}
	return now >= opening && now < closing
}

// parseHourLabel turns "<1-12> <AM|PM>" into a 24-hour hour. 12 AM is 0,
// 12 PM is 12, any other PM hour gains 12.
func parseHourLabel(label string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(fields[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, false
	}
	return hour, true
}
