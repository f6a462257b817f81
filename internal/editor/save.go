package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/validation"
	"github.com/sirupsen/logrus"
)

const savedMessage = "Saved successfully"

var (
	ErrNoUser           = errors.New("no user available")
	ErrEmptyPlanName    = &validation.FieldError{Field: "name", Reason: "plan name must not be empty"}
	ErrEmptyMuscleGroup = &validation.FieldError{Field: "muscle_group", Reason: "fill in the muscle group of every day"}
)

// SaveResult is the outcome of a save as shown to the user.
type SaveResult struct {
	OK      bool
	Message string
	PlanID  int64
}

// Submit saves the draft and folds the outcome into a SaveResult.
func (e *PlanEditor) Submit(ctx context.Context) SaveResult {
	planID, err := e.Save(ctx)
	if err != nil {
		return SaveResult{Message: err.Error()}
	}
	return SaveResult{OK: true, Message: savedMessage, PlanID: planID}
}

// Save persists the draft as a new plan and makes it the user's primary
// workout plan. The plan, its days and exercises and the user update are
// written in a single transaction. On success the draft is reset.
func (e *PlanEditor) Save(ctx context.Context) (int64, error) {
	userID, err := firstUserID(ctx, e.repo)
	if err != nil {
		e.log.WithError(err).Error("failed to read user")
		return 0, err
	}

	draft := e.State()
	if err := checkDraft(draft); err != nil {
		e.log.WithError(err).Warn("plan rejected")
		return 0, err
	}

	var planID int64
	err = e.repo.Atomically(ctx, func(repo Repository) error {
		var err error
		planID, err = persistDraft(ctx, repo, userID, draft)
		return err
	})
	if err != nil {
		e.log.WithError(err).Error("failed to save plan")
		return 0, err
	}

	e.log.WithFields(logrus.Fields{
		"plan_id":   planID,
		"user_id":   userID,
		"exercises": draft.ExerciseCount(),
	}).Info("plan saved")

	e.Reset()
	return planID, nil
}

func checkDraft(d Draft) error {
	if d.Name == "" {
		return ErrEmptyPlanName
	}
	for _, day := range models.Weekdays() {
		if d.Days[day].MuscleGroup == "" {
			return fmt.Errorf("%s: %w", day.Label(), ErrEmptyMuscleGroup)
		}
	}
	return nil
}

// persistDraft writes plan, then each day in week order, then the day's
// exercises, since every child row needs its parent's id.
func persistDraft(ctx context.Context, repo Repository, userID int64, d Draft) (int64, error) {
	planID, err := repo.AddPlan(ctx, models.Plan{Name: d.Name, UserID: userID})
	if err != nil {
		return 0, fmt.Errorf("failed to create plan: %w", err)
	}

	for _, day := range models.Weekdays() {
		dd := d.Days[day]
		dayID, err := repo.AddDay(ctx, models.Day{
			Label:       day.Label(),
			MuscleGroup: dd.MuscleGroup,
			PlanID:      planID,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", day.Label(), err)
		}

		for _, ex := range dd.Exercises {
			if _, err := repo.AddExercise(ctx, ex.model(dayID)); err != nil {
				return 0, fmt.Errorf("failed to create exercise %q: %w", ex.Name, err)
			}
		}
	}

	if err := repo.UpdateUserPrimaryWorkoutPlan(ctx, userID, planID); err != nil {
		return 0, fmt.Errorf("failed to set primary plan: %w", err)
	}
	return planID, nil
}

// firstUser reads the present value of the user stream and unsubscribes.
func firstUser(ctx context.Context, repo Repository) (models.User, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	users, err := repo.WatchUser(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to watch user: %w", err)
	}

	select {
	case u, ok := <-users:
		if !ok {
			return models.User{}, ErrNoUser
		}
		return u, nil
	case <-ctx.Done():
		return models.User{}, ctx.Err()
	}
}

func firstUserID(ctx context.Context, repo Repository) (int64, error) {
	u, err := firstUser(ctx, repo)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
