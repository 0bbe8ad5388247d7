package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/fegodi/homekeep/internal/config"
	"github.com/fegodi/homekeep/internal/model"
)

// Bucket is the urgency classification of a task for display.
type Bucket string

const (
	BucketOverdue      Bucket = "overdue"
	BucketDueSoon      Bucket = "due_soon"
	BucketLater        Bucket = "later"
	BucketRecentlyDone Bucket = "recently_done"
)

// Classifier buckets tasks by urgency. Classification is a pure
// function of (nextDue, lastDone, now) and the configured windows.
type Classifier struct {
	Cfg config.Schedule
}

func NewClassifier(cfg config.Schedule) Classifier {
	return Classifier{Cfg: cfg}
}

// DaysUntilDue is the ceiling of the time remaining in whole days.
// Zero means due today; negative values count whole days overdue.
func DaysUntilDue(nextDue, now time.Time) int {
	const day = 24 * time.Hour
	diff := nextDue.Sub(now)
	if diff >= 0 {
		return int((diff + day - 1) / day)
	}
	return -int(-diff / day)
}

// Classify buckets a single task.
//
// A task completed within the recent-done window whose next occurrence
// is still beyond the due-soon window reads as "done", not "later".
// Overdue is decided on the raw timestamp, so a task flips the moment
// its due date passes rather than at the next whole-day boundary.
func (c Classifier) Classify(t model.Task, now time.Time) Bucket {
	days := DaysUntilDue(t.NextDue, now)
	if t.LastDone != nil &&
		t.LastDone.After(now.AddDate(0, 0, -c.Cfg.RecentDoneDays)) &&
		days > c.Cfg.DueSoonDays {
		return BucketRecentlyDone
	}
	if t.NextDue.Before(now) {
		return BucketOverdue
	}
	if days <= c.Cfg.DueSoonDays {
		return BucketDueSoon
	}
	return BucketLater
}

// Buckets groups tasks for the status view. Overdue, DueSoon and Later
// sort ascending by due date; Done sorts most recently completed first.
type Buckets struct {
	Overdue []model.Task
	DueSoon []model.Task
	Later   []model.Task
	Done    []model.Task
}

func (c Classifier) Categorize(tasks []model.Task, now time.Time) Buckets {
	var b Buckets
	for _, t := range tasks {
		switch c.Classify(t, now) {
		case BucketOverdue:
			b.Overdue = append(b.Overdue, t)
		case BucketDueSoon:
			b.DueSoon = append(b.DueSoon, t)
		case BucketLater:
			b.Later = append(b.Later, t)
		case BucketRecentlyDone:
			b.Done = append(b.Done, t)
		}
	}
	sortByDue(b.Overdue)
	sortByDue(b.DueSoon)
	sortByDue(b.Later)
	sort.SliceStable(b.Done, func(i, j int) bool {
		return b.Done[i].LastDone.After(*b.Done[j].LastDone)
	})
	return b
}

// Critical selects the attention-first view: everything overdue, safety
// tasks due within the safety window, and user-flagged priority tasks.
func (c Classifier) Critical(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		days := DaysUntilDue(t.NextDue, now)
		overdue := t.NextDue.Before(now)
		safetyUrgent := t.Category == model.CategorySafety && days >= 0 && days <= c.Cfg.SafetyCriticalDays
		if overdue || safetyUrgent || t.UserPriority {
			out = append(out, t)
		}
	}
	sortByDue(out)
	return out
}

func sortByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].NextDue.Before(tasks[j].NextDue)
	})
}

// DueText renders the human-readable due label for a day count.
func DueText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return "Due today"
	case days <= 7:
		return fmt.Sprintf("%dd left", days)
	default:
		return fmt.Sprintf("%d days", days)
	}
}
