package editor

import (
	"slices"

	"github.com/misterclayt0n/myfitlist/internal/models"
)

// Draft is the unsaved plan of one editing session.
type Draft struct {
	Name string
	Days [models.DaysInWeek]DayDraft
}

type DayDraft struct {
	MuscleGroup string
	Exercises   []ExerciseDraft
	Entry       EntryFields
}

// EntryFields are the scratch inputs of the exercise being composed for a
// day, kept as typed text.
type EntryFields struct {
	Name string
	Sets string
	Reps string
}

func (f EntryFields) Empty() bool {
	return f == EntryFields{}
}

// ExerciseDraft is comparable; removal matches on the whole value.
type ExerciseDraft struct {
	Name string
	Sets int
	Reps int
	Day  models.Weekday
	ID   int64
}

func (ex ExerciseDraft) model(dayID int64) models.Exercise {
	return models.Exercise{
		Name:  ex.Name,
		Sets:  ex.Sets,
		Reps:  ex.Reps,
		DayID: dayID,
	}
}

func newDraft() Draft {
	return Draft{}
}

// Day returns the record for day. It panics on an invalid day, as an out of
// range array index would.
func (d Draft) Day(day models.Weekday) DayDraft {
	return d.Days[day]
}

func (d Draft) ExerciseCount() int {
	n := 0
	for _, day := range d.Days {
		n += len(day.Exercises)
	}
	return n
}

// Clone copies every exercise slice so the result shares no memory with d.
func (d Draft) Clone() Draft {
	c := d
	for i := range c.Days {
		c.Days[i].Exercises = slices.Clone(d.Days[i].Exercises)
	}
	return c
}
