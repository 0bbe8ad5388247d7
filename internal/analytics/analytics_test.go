package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fegodi/homekeep/internal/model"
)

var statsNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func task(id string, cat model.Category, due time.Time, completions ...time.Time) model.Task {
	return model.Task{
		ID:          model.TaskID(id),
		Title:       id,
		Category:    cat,
		NextDue:     due,
		Completions: completions,
	}
}

func TestCalculateEmptyCollection(t *testing.T) {
	sum := Calculate(nil, statsNow)
	assert.Equal(t, 100, sum.HealthScore)
	assert.Zero(t, sum.Streak)
	assert.Zero(t, sum.TaskCount)
	assert.Len(t, sum.Monthly, 6)
}

func TestHealthScoreWeighting(t *testing.T) {
	// 1 of 4 overdue, no recent activity:
	// (100 - 25) * 0.8 = 60.
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, -1)),
		task("b", model.CategoryHVAC, statsNow.AddDate(0, 0, 10)),
		task("c", model.CategorySafety, statsNow.AddDate(0, 0, 20)),
		task("d", model.CategorySafety, statsNow.AddDate(0, 0, 30)),
	}
	sum := Calculate(tasks, statsNow)
	assert.Equal(t, 60, sum.HealthScore)
	assert.Equal(t, 1, sum.OverdueCount)

	// Recent completions add 2 points each, capped at 20.
	tasks[1].Completions = []time.Time{
		statsNow.AddDate(0, 0, -2),
		statsNow.AddDate(0, 0, -3),
		statsNow.AddDate(0, 0, -4),
	}
	sum = Calculate(tasks, statsNow)
	assert.Equal(t, 66, sum.HealthScore)
	assert.Equal(t, 3, sum.Completions30)
}

func TestHealthScoreBonusCapped(t *testing.T) {
	var completions []time.Time
	for i := 0; i < 15; i++ {
		completions = append(completions, statsNow.AddDate(0, 0, -1))
	}
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, 10), completions...),
	}
	sum := Calculate(tasks, statsNow)
	// 80 base + min(20, 30) = 100, clamped.
	assert.Equal(t, 100, sum.HealthScore)
}

func TestHealthScoreFloor(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, -1)),
		task("b", model.CategoryHVAC, statsNow.AddDate(0, 0, -2)),
	}
	sum := Calculate(tasks, statsNow)
	// Everything overdue, nothing done: (100-100)*0.8 = 0.
	assert.Equal(t, 0, sum.HealthScore)
}

func TestStreakConsecutiveDays(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, 30),
			statsNow,                  // today
			statsNow.AddDate(0, 0, -1), // yesterday
			statsNow.AddDate(0, 0, -2),
		),
	}
	sum := Calculate(tasks, statsNow)
	assert.Equal(t, 3, sum.Streak)
}

func TestStreakStopsAtGap(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, 30),
			statsNow,
			statsNow.AddDate(0, 0, -1),
			// day -2 missing
			statsNow.AddDate(0, 0, -3),
			statsNow.AddDate(0, 0, -4),
		),
	}
	sum := Calculate(tasks, statsNow)
	assert.Equal(t, 2, sum.Streak)
}

func TestStreakZeroWithoutToday(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, 30),
			statsNow.AddDate(0, 0, -1),
			statsNow.AddDate(0, 0, -2),
		),
	}
	sum := Calculate(tasks, statsNow)
	assert.Zero(t, sum.Streak)
}

func TestCategoryBreakdown(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, -1), statsNow.AddDate(0, 0, -90)),
		task("b", model.CategoryHVAC, statsNow.AddDate(0, 0, 10)),
		task("c", model.CategorySafety, statsNow.AddDate(0, 0, 5), statsNow.AddDate(0, 0, -10), statsNow.AddDate(0, 0, -40)),
	}
	sum := Calculate(tasks, statsNow)

	hvac := sum.Categories[model.CategoryHVAC]
	assert.Equal(t, 2, hvac.Tasks)
	assert.Equal(t, 1, hvac.Completions)
	assert.Equal(t, 1, hvac.Overdue)

	safety := sum.Categories[model.CategorySafety]
	assert.Equal(t, 1, safety.Tasks)
	assert.Equal(t, 2, safety.Completions)
	assert.Equal(t, 0, safety.Overdue)

	assert.Equal(t, 3, sum.TotalCompletions)
}

func TestMonthlyHistogram(t *testing.T) {
	tasks := []model.Task{
		task("a", model.CategoryHVAC, statsNow.AddDate(0, 0, 30),
			statsNow,                     // June
			statsNow.AddDate(0, -1, 0),   // May
			statsNow.AddDate(0, -1, -1),  // May
			statsNow.AddDate(0, -8, 0),   // outside the window
		),
	}
	sum := Calculate(tasks, statsNow)
	require.Len(t, sum.Monthly, 6)

	assert.Equal(t, "2026-01", sum.Monthly[0].Key)
	assert.Equal(t, "Jan", sum.Monthly[0].Label)
	assert.Equal(t, "2026-06", sum.Monthly[5].Key)
	assert.Equal(t, 1, sum.Monthly[5].Count)
	assert.Equal(t, 2, sum.Monthly[4].Count) // May
	assert.Equal(t, 0, sum.Monthly[0].Count)
}

func TestMonthlyUsesCallerCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, loc)
	// 23:30 UTC on May 31 is already June 1 in the caller's zone.
	tasks := []model.Task{
		task("a", model.CategoryHVAC, now.AddDate(0, 0, 30),
			time.Date(2026, time.May, 31, 23, 30, 0, 0, time.UTC)),
	}
	sum := Calculate(tasks, now)
	require.Len(t, sum.Monthly, 6)
	assert.Equal(t, 1, sum.Monthly[5].Count, "June")
	assert.Equal(t, 0, sum.Monthly[4].Count, "May")
}
