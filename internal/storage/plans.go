package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/misterclayt0n/myfitlist/internal/models"
)

var ErrPlanNotFound = errors.New("plan not found")

func (s *Storage) AddPlan(ctx context.Context, p models.Plan) (int64, error) {
	return addPlan(ctx, s.DB, p)
}

func (s *Storage) AddDay(ctx context.Context, d models.Day) (int64, error) {
	return addDay(ctx, s.DB, d)
}

func (s *Storage) AddExercise(ctx context.Context, ex models.Exercise) (int64, error) {
	return addExercise(ctx, s.DB, ex)
}

func addPlan(ctx context.Context, q querier, p models.Plan) (int64, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO workout_plans (name, user_id, created_at)
         VALUES (?, ?, ?)
         RETURNING id`,
		p.Name,
		p.UserID,
		createdAt.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}
	return id, nil
}

func addDay(ctx context.Context, q querier, d models.Day) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO workout_days (label, muscle_group, plan_id)
         VALUES (?, ?, ?)
         RETURNING id`,
		d.Label,
		d.MuscleGroup,
		d.PlanID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert day: %w", err)
	}
	return id, nil
}

func addExercise(ctx context.Context, q querier, ex models.Exercise) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO workout_exercises (name, sets, reps, day_id)
         VALUES (?, ?, ?, ?)
         RETURNING id`,
		ex.Name,
		ex.Sets,
		ex.Reps,
		ex.DayID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert exercise: %w", err)
	}
	return id, nil
}

// ListPlans returns the plans of a user without their days, oldest first.
func (s *Storage) ListPlans(ctx context.Context, userID int64) ([]models.Plan, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name, user_id, created_at
        FROM workout_plans
        WHERE user_id = ?
        ORDER BY id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// GetPlan loads a plan with its days in week order and their exercises.
func (s *Storage) GetPlan(ctx context.Context, id int64) (*models.Plan, error) {
	var p models.Plan
	var createdAt string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, user_id, created_at FROM workout_plans WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.UserID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrPlanNotFound, id)
		}
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	days, err := s.planDays(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Days = days
	return &p, nil
}

func (s *Storage) planDays(ctx context.Context, planID int64) ([]models.Day, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, label, muscle_group, plan_id
        FROM workout_days
        WHERE plan_id = ?
        ORDER BY id
    `, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load days: %w", err)
	}

	var days []models.Day
	for rows.Next() {
		var d models.Day
		if err := rows.Scan(&d.ID, &d.Label, &d.MuscleGroup, &d.PlanID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Exercises are loaded after the day cursor is closed, since SQLite runs
	// on a single connection.
	for i := range days {
		exercises, err := s.dayExercises(ctx, days[i].ID)
		if err != nil {
			return nil, err
		}
		days[i].Exercises = exercises
	}
	return days, nil
}

func (s *Storage) dayExercises(ctx context.Context, dayID int64) ([]models.Exercise, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name, sets, reps, day_id
        FROM workout_exercises
        WHERE day_id = ?
        ORDER BY id
    `, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Sets, &ex.Reps, &ex.DayID); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}

// PrimaryPlan returns the user's primary workout plan, or nil when none is
// selected.
func (s *Storage) PrimaryPlan(ctx context.Context) (*models.Plan, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.PrimaryWorkoutPlanID == 0 {
		return nil, nil
	}
	return s.GetPlan(ctx, u.PrimaryWorkoutPlanID)
}

// DeletePlan removes a plan with its days and exercises. A user that had it
// as primary plan is left without one.
func (s *Storage) DeletePlan(ctx context.Context, id int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children are removed explicitly so the delete does not depend on the
	// connection having foreign keys enabled.
	_, err = tx.ExecContext(ctx, `
        DELETE FROM workout_exercises
        WHERE day_id IN (SELECT id FROM workout_days WHERE plan_id = ?)
    `, id)
	if err != nil {
		return fmt.Errorf("failed to delete exercises: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM workout_days WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete days: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE users SET primary_workout_plan_id = NULL WHERE primary_workout_plan_id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear primary plan: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM workout_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.refreshUser(ctx)
}
