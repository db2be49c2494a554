package guide

import "time"

const (
	termDays = 280
	maxDays  = 294
)

// Progress is how far along a pregnancy is on a given day.
type Progress struct {
	DueDate       string `json:"due_date"`
	DaysPregnant  int    `json:"days_pregnant"`
	WeeksPregnant int    `json:"weeks_pregnant"`
	DaysRemaining int    `json:"days_remaining"`
	Trimester     int    `json:"current_trimester"`
	PercentDone   int    `json:"percent_complete"`
}

// ProgressAt derives gestational age from the due date: 280 days minus the
// days still to go, clamped to [0, 294].
func ProgressAt(due, now time.Time) Progress {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	remaining := int(dueDay.Sub(today).Hours() / 24)
	days := min(max(termDays-remaining, 0), maxDays)
	weeks := days / 7

	return Progress{
		DueDate:       dueDay.Format("2006-01-02"),
		DaysPregnant:  days,
		WeeksPregnant: weeks,
		DaysRemaining: max(remaining, 0),
		Trimester:     TrimesterOf(weeks),
		PercentDone:   min(days*100/termDays, 100),
	}
}

// GuideWeek is the guide week to show for p, kept within 1..40.
func (p Progress) GuideWeek() int {
	return min(max(p.WeeksPregnant, FirstWeek), LastWeek)
}
