// Package editor keeps the state of a plan being built and turns it into
// database rows.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/observable"
	"github.com/misterclayt0n/myfitlist/internal/validation"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidDay    = errors.New("invalid day")
	ErrNothingToCopy = errors.New("no exercises to copy")
	ErrSameDay       = errors.New("source and target day are the same")
)

// PlanEditor is one plan editing session. It is meant to be driven by a
// single caller; readers may watch it through Subscribe.
type PlanEditor struct {
	repo    Repository
	state   *observable.Value[Draft]
	session string
	log     *logrus.Entry
}

func New(repo Repository) *PlanEditor {
	session := uuid.New().String()
	return &PlanEditor{
		repo:    repo,
		state:   observable.New(newDraft(), observable.WithClone(Draft.Clone)),
		session: session,
		log:     logrus.WithField("editor_session", session),
	}
}

// Session identifies this editing session in logs.
func (e *PlanEditor) Session() string {
	return e.session
}

// State returns a copy of the latest draft.
func (e *PlanEditor) State() Draft {
	return e.state.Get()
}

// Subscribe streams the draft after every change until ctx is done.
func (e *PlanEditor) Subscribe(ctx context.Context) <-chan Draft {
	return e.state.Subscribe(ctx)
}

// Reset drops the draft, as leaving the editing screen does.
func (e *PlanEditor) Reset() {
	e.state.Set(newDraft())
}

func (e *PlanEditor) SetName(name string) error {
	name, err := validation.FilterText("name", name)
	if err != nil {
		return err
	}
	return e.state.Update(func(d Draft) (Draft, error) {
		d.Name = name
		return d, nil
	})
}

func (e *PlanEditor) SetMuscleGroup(day models.Weekday, label string) error {
	label, err := validation.FilterText("muscle_group", label)
	if err != nil {
		return err
	}
	return e.updateDay(day, func(dd *DayDraft) error {
		dd.MuscleGroup = label
		return nil
	})
}

func (e *PlanEditor) SetEntryName(day models.Weekday, name string) error {
	name, err := validation.FilterText("name", name)
	if err != nil {
		return err
	}
	return e.updateDay(day, func(dd *DayDraft) error {
		dd.Entry.Name = name
		return nil
	})
}

// SetEntrySets stores the filtered set count; "16" becomes "15".
func (e *PlanEditor) SetEntrySets(day models.Weekday, sets string) error {
	sets, err := validation.FilterSets(sets)
	if err != nil {
		return err
	}
	return e.updateDay(day, func(dd *DayDraft) error {
		dd.Entry.Sets = sets
		return nil
	})
}

// SetEntryReps stores the filtered repetition count; "41" becomes "40".
func (e *PlanEditor) SetEntryReps(day models.Weekday, reps string) error {
	reps, err := validation.FilterReps(reps)
	if err != nil {
		return err
	}
	return e.updateDay(day, func(dd *DayDraft) error {
		dd.Entry.Reps = reps
		return nil
	})
}

// AppendExercise adds ex to day, owned by day and not yet persisted, and
// clears the day's entry fields.
func (e *PlanEditor) AppendExercise(day models.Weekday, ex ExerciseDraft) error {
	if err := validation.Exercise(ex.Name, ex.Sets, ex.Reps); err != nil {
		return err
	}
	ex.Day = day
	ex.ID = models.UnsavedID

	return e.updateDay(day, func(dd *DayDraft) error {
		dd.Exercises = append(dd.Exercises, ex)
		dd.Entry = EntryFields{}
		return nil
	})
}

// CommitEntry turns the day's entry fields into an exercise.
func (e *PlanEditor) CommitEntry(day models.Weekday) (ExerciseDraft, error) {
	if !day.Valid() {
		return ExerciseDraft{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	entry := e.State().Days[day].Entry

	var missing validation.Errors
	if entry.Name == "" {
		missing = append(missing, &validation.FieldError{Field: "name", Reason: "is required"})
	}
	if entry.Sets == "" {
		missing = append(missing, &validation.FieldError{Field: "sets", Reason: "is required"})
	}
	if entry.Reps == "" {
		missing = append(missing, &validation.FieldError{Field: "reps", Reason: "is required"})
	}
	if len(missing) > 0 {
		return ExerciseDraft{}, missing
	}

	// The filters already guarantee digits within range.
	sets, _ := strconv.Atoi(entry.Sets)
	reps, _ := strconv.Atoi(entry.Reps)

	ex := ExerciseDraft{
		Name: entry.Name,
		Sets: sets,
		Reps: reps,
		Day:  day,
		ID:   models.UnsavedID,
	}
	if err := e.AppendExercise(day, ex); err != nil {
		return ExerciseDraft{}, err
	}
	return ex, nil
}

// RemoveExercise drops the first exercise of day equal to ex.
func (e *PlanEditor) RemoveExercise(day models.Weekday, ex ExerciseDraft) (bool, error) {
	removed := false
	err := e.updateDay(day, func(dd *DayDraft) error {
		i := slices.Index(dd.Exercises, ex)
		if i < 0 {
			return nil
		}
		dd.Exercises = slices.Delete(dd.Exercises, i, i+1)
		removed = true
		return nil
	})
	return removed, err
}

// CopyExercises appends a copy of every exercise of src to dst. src is left
// unchanged.
func (e *PlanEditor) CopyExercises(src, dst models.Weekday) (int, error) {
	if !src.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDay, src)
	}
	if !dst.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDay, dst)
	}
	if src == dst {
		return 0, ErrSameDay
	}

	exercises := e.State().Days[src].Exercises
	if len(exercises) == 0 {
		return 0, ErrNothingToCopy
	}

	for i, ex := range exercises {
		copied := ExerciseDraft{Name: ex.Name, Sets: ex.Sets, Reps: ex.Reps}
		if err := e.AppendExercise(dst, copied); err != nil {
			return i, err
		}
	}

	e.log.WithFields(logrus.Fields{
		"from":      src.Label(),
		"to":        dst.Label(),
		"exercises": len(exercises),
	}).Debug("copied exercises")
	return len(exercises), nil
}

func (e *PlanEditor) updateDay(day models.Weekday, fn func(*DayDraft) error) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return e.state.Update(func(d Draft) (Draft, error) {
		if err := fn(&d.Days[day]); err != nil {
			return d, err
		}
		return d, nil
	})
}
