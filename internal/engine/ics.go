package engine

import (
	"strings"
	"time"
)

const icsTimeLayout = "20060102T150405"

// icsDateTime compacts "2026-03-14" + "09:00" into RFC5545 local time.
func icsDateTime(dateISO, hhmm string) string {
	s := dateISO + "T" + hhmm + ":00"
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, ":", "")
}

func icsEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	return strings.ReplaceAll(s, "\n", "\\n")
}

// BuildICS renders an event as an RFC5545 calendar blob for client-side
// export. Times are written as floating local times, matching how the event
// stores them.
func BuildICS(e *EventProposal, now time.Time) string {
	start := e.StartTime
	if start == "" {
		start = "09:00"
	}
	end := e.EndTime
	if end == "" {
		end = "10:00"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//SpaceGreen//EN",
		"BEGIN:VEVENT",
		"UID:" + e.ID + "@spacegreen",
		"DTSTAMP:" + now.UTC().Format(icsTimeLayout) + "Z",
		"DTSTART:" + icsDateTime(e.DateISO, start),
		"DTEND:" + icsDateTime(e.DateISO, end),
		"SUMMARY:" + icsEscape(e.Title),
		"LOCATION:" + icsEscape(e.Location.Address),
		"DESCRIPTION:" + icsEscape(e.Description),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}
