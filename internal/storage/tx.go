package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"
)

var (
	_ editor.Repository = (*Storage)(nil)
	_ editor.Repository = (*txRepo)(nil)
)

// Atomically runs fn inside a transaction. Watchers of the user see the
// changes only after commit.
func (s *Storage) Atomically(ctx context.Context, fn func(editor.Repository) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txRepo{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s.refreshUser(ctx)
}

// txRepo is the Repository handed to Atomically callbacks. Every call goes
// through the transaction; using the Storage instead would block on the
// single SQLite connection.
type txRepo struct {
	tx *sql.Tx
}

// WatchUser yields the user as seen by the transaction, once.
func (t *txRepo) WatchUser(ctx context.Context) (<-chan models.User, error) {
	u, err := currentUser(ctx, t.tx)
	if err != nil {
		return nil, err
	}
	ch := make(chan models.User, 1)
	ch <- u
	close(ch)
	return ch, nil
}

func (t *txRepo) AddPlan(ctx context.Context, p models.Plan) (int64, error) {
	return addPlan(ctx, t.tx, p)
}

func (t *txRepo) AddDay(ctx context.Context, d models.Day) (int64, error) {
	return addDay(ctx, t.tx, d)
}

func (t *txRepo) AddExercise(ctx context.Context, ex models.Exercise) (int64, error) {
	return addExercise(ctx, t.tx, ex)
}

func (t *txRepo) UpdateUserPrimaryWorkoutPlan(ctx context.Context, userID, planID int64) error {
	return updatePrimaryPlan(ctx, t.tx, userID, planID)
}

func (t *txRepo) UpdateUser(ctx context.Context, u models.User) error {
	return updateUser(ctx, t.tx, u)
}

// Atomically nests into the running transaction.
func (t *txRepo) Atomically(_ context.Context, fn func(editor.Repository) error) error {
	return fn(t)
}
