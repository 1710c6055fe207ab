package entity

import "time"

// StreakWindowDays bounds how many progress rows are considered for a streak.
const StreakWindowDays = 365

// Streak is the live study streak of a user.
type Streak struct {
	Days          int
	LastStudyDate *time.Time
}

// ComputeStreak walks records, ordered by date descending, and counts the run of
// consecutive study days ending today.
//
// The most recent record always becomes LastStudyDate, even with zero minutes.
// When a record is not for the day being checked but for the day before it, the
// walk steps back one day first and then evaluates that record, so a single
// missing day in front of that record is tolerated. Two or more missing days end the walk.
func ComputeStreak(records []DailyProgress, today time.Time) Streak {
	if len(records) == 0 {
		return Streak{}
	}
	last := DateOf(records[0].Date)
	streak := Streak{LastStudyDate: &last}

	check := DateOf(today)
	for _, r := range records {
		date := DateOf(r.Date)
		switch {
		case date.Equal(check):
		case date.Equal(check.AddDate(0, 0, -1)):
			check = check.AddDate(0, 0, -1)
		default:
			return streak
		}
		if r.TotalStudyMinutes <= 0 {
			return streak
		}
		streak.Days++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}
