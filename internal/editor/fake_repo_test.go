package editor_test

import (
	"context"
	"errors"

	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"
)

// fakeRepo records every write in order and rolls them back when an
// Atomically callback fails.
type fakeRepo struct {
	user    models.User
	userErr error
	failOn  string

	calls     []string
	plans     []models.Plan
	days      []models.Day
	exercises []models.Exercise
	nextID    int64
	txs       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		user: models.User{ID: 1, Age: models.NoAge, Weight: models.NoWeight},
	}
}

func (f *fakeRepo) record(op string) (int64, error) {
	f.calls = append(f.calls, op)
	if op == f.failOn {
		return 0, errors.New(op + " failed")
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeRepo) WatchUser(context.Context) (<-chan models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	ch := make(chan models.User, 1)
	ch <- f.user
	close(ch)
	return ch, nil
}

func (f *fakeRepo) AddPlan(_ context.Context, p models.Plan) (int64, error) {
	id, err := f.record("addPlan")
	if err != nil {
		return 0, err
	}
	p.ID = id
	f.plans = append(f.plans, p)
	return id, nil
}

func (f *fakeRepo) AddDay(_ context.Context, d models.Day) (int64, error) {
	id, err := f.record("addDay")
	if err != nil {
		return 0, err
	}
	d.ID = id
	f.days = append(f.days, d)
	return id, nil
}

func (f *fakeRepo) AddExercise(_ context.Context, ex models.Exercise) (int64, error) {
	id, err := f.record("addExercise")
	if err != nil {
		return 0, err
	}
	ex.ID = id
	f.exercises = append(f.exercises, ex)
	return id, nil
}

func (f *fakeRepo) UpdateUserPrimaryWorkoutPlan(_ context.Context, userID, planID int64) error {
	if _, err := f.record("updatePrimary"); err != nil {
		return err
	}
	if userID != f.user.ID {
		return errors.New("user not found")
	}
	f.user.PrimaryWorkoutPlanID = planID
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, u models.User) error {
	if _, err := f.record("updateUser"); err != nil {
		return err
	}
	f.user = u
	return nil
}

func (f *fakeRepo) Atomically(_ context.Context, fn func(editor.Repository) error) error {
	f.txs++
	plans, days, exercises, user := len(f.plans), len(f.days), len(f.exercises), f.user

	if err := fn(f); err != nil {
		f.plans = f.plans[:plans]
		f.days = f.days[:days]
		f.exercises = f.exercises[:exercises]
		f.user = user
		return err
	}
	return nil
}

func (f *fakeRepo) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}
