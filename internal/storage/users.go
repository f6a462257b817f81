package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/observable"
)

var ErrUserNotFound = errors.New("user not found")

// CurrentUser returns the local user.
func (s *Storage) CurrentUser(ctx context.Context) (models.User, error) {
	return currentUser(ctx, s.DB)
}

// WatchUser streams the local user, starting with its present value and
// then after every change made through this Storage.
func (s *Storage) WatchUser(ctx context.Context) (<-chan models.User, error) {
	v, err := s.userValue(ctx)
	if err != nil {
		return nil, err
	}
	return v.Subscribe(ctx), nil
}

func (s *Storage) UpdateUserPrimaryWorkoutPlan(ctx context.Context, userID, planID int64) error {
	if err := updatePrimaryPlan(ctx, s.DB, userID, planID); err != nil {
		return err
	}
	return s.refreshUser(ctx)
}

func (s *Storage) UpdateUser(ctx context.Context, u models.User) error {
	if err := updateUser(ctx, s.DB, u); err != nil {
		return err
	}
	return s.refreshUser(ctx)
}

func (s *Storage) userValue(ctx context.Context) (*observable.Value[models.User], error) {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	if s.user != nil {
		return s.user, nil
	}
	u, err := currentUser(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	s.user = observable.New(u)
	return s.user, nil
}

// refreshUser republishes the user once somebody watches it.
func (s *Storage) refreshUser(ctx context.Context) error {
	s.userMu.Lock()
	v := s.user
	s.userMu.Unlock()

	if v == nil {
		return nil
	}
	u, err := currentUser(ctx, s.DB)
	if err != nil {
		return err
	}
	v.Set(u)
	return nil
}

func currentUser(ctx context.Context, q querier) (models.User, error) {
	var u models.User
	var workoutPlan, dietPlan sql.NullInt64

	err := q.QueryRowContext(ctx, `
        SELECT id, name, age, weight, primary_workout_plan_id, primary_diet_plan_id
        FROM users
        ORDER BY id
        LIMIT 1
    `).Scan(
		&u.ID,
		&u.Name,
		&u.Age,
		&u.Weight,
		&workoutPlan,
		&dietPlan,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.PrimaryWorkoutPlanID = workoutPlan.Int64
	u.PrimaryDietPlanID = dietPlan.Int64
	return u, nil
}

// updatePrimaryPlan points the user at planID; zero clears the selection.
func updatePrimaryPlan(ctx context.Context, q querier, userID, planID int64) error {
	if planID > 0 {
		var exists bool
		err := q.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM workout_plans WHERE id = ?)`,
			planID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check plan: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %d", ErrPlanNotFound, planID)
		}
	}

	res, err := q.ExecContext(ctx,
		`UPDATE users SET primary_workout_plan_id = ? WHERE id = ?`,
		nullID(planID),
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update primary plan: %w", err)
	}
	return expectOneRow(res, userID)
}

func updateUser(ctx context.Context, q querier, u models.User) error {
	res, err := q.ExecContext(ctx, `
        UPDATE users
        SET name = ?, age = ?, weight = ?, primary_workout_plan_id = ?, primary_diet_plan_id = ?
        WHERE id = ?
    `,
		u.Name,
		u.Age,
		u.Weight,
		nullID(u.PrimaryWorkoutPlanID),
		nullID(u.PrimaryDietPlanID),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(res, u.ID)
}

func expectOneRow(res sql.Result, userID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	return nil
}
