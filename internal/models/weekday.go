package models

import (
	"fmt"
	"strings"
)

// Weekday indexes the fixed days of a workout plan, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const DaysInWeek = 7

var weekdayLabels = [DaysInWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Label is the value stored in workout_days.label.
func (d Weekday) Label() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayLabels[d]
}

func (d Weekday) String() string {
	return d.Label()
}

// Weekdays returns every day in plan order.
func Weekdays() []Weekday {
	days := make([]Weekday, DaysInWeek)
	for i := range days {
		days[i] = Weekday(i)
	}
	return days
}

// ParseWeekday matches a day label case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i, label := range weekdayLabels {
		if strings.EqualFold(label, s) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}
