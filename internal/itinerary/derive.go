package itinerary

import (
	"fmt"
	"strings"

	"github.com/pkordes/wanderlust/internal/domain"
)

// weatherTags is indexed by (dayOfMonth + dayIndex) % 3. It is a
// placeholder, not a forecast.
var weatherTags = [3]string{"sunny", "cloudy", "rain"}

var weekdayLabels = [7]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"}

// DailyCost sums Cost.Value over the day's items. Missing or non-numeric
// costs count as 0; the sum is not clamped.
func DailyCost(trip domain.Trip, day string) int {
	total := 0
	for _, item := range trip.Days[day] {
		total += item.Cost.Value()
	}
	return total
}

// DayInfo derives the calendar date, weekday, and weather tag for day.
// The date is StartDate plus (N-1) days for label "Day N".
func DayInfo(trip domain.Trip, day string) (domain.DayInfo, error) {
	n, err := domain.DayNumber(day)
	if err != nil {
		return domain.DayInfo{}, err
	}
	start, err := trip.Start()
	if err != nil {
		return domain.DayInfo{}, err
	}

	idx := n - 1
	date := start.AddDate(0, 0, idx)
	return domain.DayInfo{
		Date:         date.Format(domain.DateLayout),
		DateLabel:    fmt.Sprintf("%d/%d", int(date.Month()), date.Day()),
		Weekday:      date.Weekday().String(),
		WeekdayLabel: weekdayLabels[date.Weekday()],
		Weather:      weatherTags[(date.Day()+idx)%3],
	}, nil
}

// Summary renders the shareable plain-text plan for one day.
func Summary(trip domain.Trip, day string) (string, error) {
	if !trip.HasDay(day) {
		return "", fmt.Errorf("itinerary.Summary: day %q: %w", day, domain.ErrNotFound)
	}
	info, err := DayInfo(trip, day)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s - %s (%s %s)\n", trip.Destination, day, info.DateLabel, info.WeekdayLabel)

	items := trip.Days[day]
	if len(items) == 0 {
		b.WriteString("今日無行程")
	}
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		loc := item.Location
		if loc == "" {
			loc = "無地點"
		}
		fmt.Fprintf(&b, "⏰ %s %s @%s", item.Time, item.Title, loc)
	}
	fmt.Fprintf(&b, "\n\n預算: $%d", DailyCost(trip, day))
	return b.String(), nil
}
