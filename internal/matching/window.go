package matching

import (
	"time"

	"github.com/frtsoysal/newsapi/pkg/polymarket"
)

const (
	defaultDaysBack = 7
	bufferDays      = 2
	maxLookbackDays = 30
)

// TimeWindow derives the [from, to] range for a news search from the event's
// declared dates. An event ending in the future extends the window up to one
// day ahead of now; a declared start pushes the window back bufferDays before
// it, clamped to maxLookbackDays. Without dates the window is the last
// defaultDaysBack days. The window is not validated: from can land after to
// for events whose start lies in the future.
func TimeWindow(event polymarket.Event, now time.Time) (from, to time.Time) {
	to = now
	if !event.EndDate.IsZero() && event.EndDate.After(now) {
		to = event.EndDate
		if cap := now.AddDate(0, 0, 1); cap.Before(to) {
			to = cap
		}
	}

	if event.StartDate.IsZero() {
		from = now.AddDate(0, 0, -defaultDaysBack)
	} else {
		from = event.StartDate.AddDate(0, 0, -bufferDays)
		if floor := now.AddDate(0, 0, -maxLookbackDays); from.Before(floor) {
			from = floor
		}
	}

	return from, to
}
