// Package analytics derives read-only views over completion history:
// a health score, streaks, category breakdowns and a monthly activity
// histogram. Nothing here mutates tasks.
package analytics

import (
	"math"
	"time"

	"github.com/fegodi/homekeep/internal/model"
)

type CategoryStats struct {
	Tasks       int `json:"tasks"`
	Completions int `json:"done"`
	Overdue     int `json:"overdue"`
}

type MonthCount struct {
	Key   string `json:"key"`   // "2026-08"
	Label string `json:"label"` // "Aug"
	Count int    `json:"count"`
}

type Summary struct {
	HealthScore      int                              `json:"score"`
	Streak           int                              `json:"streak"`
	Completions30    int                              `json:"completions_30d"`
	TotalCompletions int                              `json:"total_completions"`
	OverdueCount     int                              `json:"overdue_count"`
	TaskCount        int                              `json:"task_count"`
	Categories       map[model.Category]CategoryStats `json:"categories"`
	Monthly          []MonthCount                     `json:"monthly"`
}

const monthKey = "2006-01"

// Calculate aggregates the whole collection at a given instant.
func Calculate(tasks []model.Task, now time.Time) Summary {
	sum := Summary{
		TaskCount:  len(tasks),
		Categories: make(map[model.Category]CategoryStats),
	}
	cutoff30 := now.AddDate(0, 0, -30)
	monthly := make(map[string]int)

	for _, t := range tasks {
		cs := sum.Categories[t.Category]
		cs.Tasks++
		if t.NextDue.Before(now) {
			cs.Overdue++
			sum.OverdueCount++
		}
		for _, done := range t.Completions {
			sum.TotalCompletions++
			cs.Completions++
			if done.After(cutoff30) {
				sum.Completions30++
			}
			// Bucket by the caller's calendar, same as the streak walk,
			// so a completion near midnight lands in one month in both
			// views.
			monthly[done.In(now.Location()).Format(monthKey)]++
		}
		sum.Categories[t.Category] = cs
	}

	sum.Streak = streak(tasks, now)
	sum.Monthly = trailingMonths(monthly, now, 6)
	sum.HealthScore = healthScore(sum.TaskCount, sum.OverdueCount, sum.Completions30)
	return sum
}

// healthScore weighs the fraction of tasks not overdue at 80%, with up
// to 20 bonus points for recent activity, clamped to [0, 100]. An
// empty collection scores 100.
func healthScore(taskCount, overdue, completions30 int) int {
	base := 100.0
	if taskCount > 0 {
		base = (100 - float64(overdue)/float64(taskCount)*100) * 0.8
	}
	bonus := math.Min(20, float64(completions30)*2)
	score := math.Round(math.Min(100, math.Max(0, base+bonus)))
	return int(score)
}

// streak counts consecutive calendar days, walking backward from
// today, on which at least one completion landed. The walk stops at
// the first gap, so a missing "today" means a streak of zero.
func streak(tasks []model.Task, now time.Time) int {
	const dayKey = "2006-01-02"
	days := make(map[string]struct{})
	for _, t := range tasks {
		for _, done := range t.Completions {
			days[done.In(now.Location()).Format(dayKey)] = struct{}{}
		}
	}
	n := 0
	check := now
	for {
		if _, ok := days[check.Format(dayKey)]; !ok {
			break
		}
		n++
		check = check.AddDate(0, 0, -1)
	}
	return n
}

func trailingMonths(counts map[string]int, now time.Time, n int) []MonthCount {
	out := make([]MonthCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		key := anchor.Format(monthKey)
		out = append(out, MonthCount{
			Key:   key,
			Label: anchor.Format("Jan"),
			Count: counts[key],
		})
	}
	return out
}
