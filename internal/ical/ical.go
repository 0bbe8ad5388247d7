// Package ical renders upcoming task due dates as an iCalendar feed so
// reminders can live in an external calendar app.
package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/fegodi/homekeep/internal/model"
)

const dateLayout = "20060102"

// Calendar renders one all-day VEVENT per task, recurring at the
// task's interval. Tasks without a title still get an event; the due
// date always exists.
func Calendar(tasks []model.Task, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//HomeKeep//Maintenance Schedule//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, t := range tasks {
		lines = append(lines, event(t, now)...)
	}
	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func event(t model.Task, now time.Time) []string {
	start := t.NextDue
	end := start.AddDate(0, 0, 1)

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Home maintenance"
	}

	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + escape(fmt.Sprintf("%s@homekeep", t.ID)),
		"DTSTAMP:" + now.UTC().Format("20060102T150405Z"),
		"SUMMARY:" + escape(title),
		"DTSTART;VALUE=DATE:" + start.Format(dateLayout),
		"DTEND;VALUE=DATE:" + end.Format(dateLayout),
	}
	if desc := strings.TrimSpace(t.Notes); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escape(desc))
	}
	lines = append(lines, "CATEGORIES:"+escape(string(t.Category)))
	if t.FrequencyDays > 0 {
		lines = append(lines, fmt.Sprintf("RRULE:FREQ=DAILY;INTERVAL=%d", t.FrequencyDays))
	}
	lines = append(lines, "END:VEVENT")
	return lines
}

func escape(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
