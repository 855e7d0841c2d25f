package calendar

import "time"

type DayStatus struct {
	Date   string `json:"date"`
	Status Status `json:"status"`
}

// MonthStatuses classifies every date of the displayed month. month may be
// any instant inside that month.
func MonthStatuses(month time.Time, day DayContext) []DayStatus {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	var statuses []DayStatus
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		statuses = append(statuses, DayStatus{
			Date:   d.Format(dateLayout),
			Status: Classify(d, day),
		})
	}
	return statuses
}
