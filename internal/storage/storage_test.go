package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openAt(t *testing.T, path string) *storage.Storage {
	t.Helper()
	st, err := storage.Open(context.Background(), "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

func testStorage(t *testing.T) *storage.Storage {
	t.Helper()
	return openAt(t, filepath.Join(t.TempDir(), "myfitlist.db"))
}

func savePlan(t *testing.T, st *storage.Storage, name string) int64 {
	t.Helper()
	e := editor.New(st)
	require.NoError(t, e.SetName(name))
	for _, day := range models.Weekdays() {
		require.NoError(t, e.SetMuscleGroup(day, "Group "+day.Label()))
	}
	require.NoError(t, e.AppendExercise(models.Monday, editor.ExerciseDraft{Name: "Bench press", Sets: 4, Reps: 10}))
	require.NoError(t, e.AppendExercise(models.Monday, editor.ExerciseDraft{Name: "Fly", Sets: 3, Reps: 12}))
	require.NoError(t, e.AppendExercise(models.Friday, editor.ExerciseDraft{Name: "Squat", Sets: 5, Reps: 5}))

	planID, err := e.Save(context.Background())
	require.NoError(t, err)
	return planID
}

func TestOpen_CreatesDefaultUserOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myfitlist.db")
	st := openAt(t, path)

	u, err := st.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, models.NoAge, u.Age)
	assert.Equal(t, models.NoWeight, u.Weight)
	assert.Zero(t, u.PrimaryWorkoutPlanID)
	require.NoError(t, st.Close())

	again := openAt(t, path)
	var users int
	require.NoError(t, again.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	assert.Equal(t, 1, users)
}

func TestSavePlan_PersistsWholeWeek(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()

	planID := savePlan(t, st, "Full body")

	plan, err := st.GetPlan(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, "Full body", plan.Name)
	assert.WithinDuration(t, time.Now(), plan.CreatedAt, time.Minute)
	require.Len(t, plan.Days, models.DaysInWeek)

	for i, d := range plan.Days {
		day := models.Weekday(i)
		assert.Equal(t, day.Label(), d.Label)
		assert.Equal(t, "Group "+day.Label(), d.MuscleGroup)
		assert.Equal(t, planID, d.PlanID)
	}

	monday := plan.Days[models.Monday]
	require.Len(t, monday.Exercises, 2)
	assert.Equal(t, "Bench press", monday.Exercises[0].Name)
	assert.Equal(t, 4, monday.Exercises[0].Sets)
	assert.Equal(t, 10, monday.Exercises[0].Reps)
	assert.Equal(t, monday.ID, monday.Exercises[0].DayID)
	assert.Len(t, plan.Days[models.Friday].Exercises, 1)
	assert.Empty(t, plan.Days[models.Sunday].Exercises)

	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, planID, u.PrimaryWorkoutPlanID)
	assert.Equal(t, u.ID, plan.UserID)

	primary, err := st.PrimaryPlan(ctx)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, planID, primary.ID)
}

func TestWatchUser_SeesCommittedChanges(t *testing.T) {
	st := testStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	users, err := st.WatchUser(ctx)
	require.NoError(t, err)
	first := <-users
	assert.Zero(t, first.PrimaryWorkoutPlanID)

	planID := savePlan(t, st, "Split")

	select {
	case u := <-users:
		assert.Equal(t, planID, u.PrimaryWorkoutPlanID)
	case <-time.After(time.Second):
		t.Fatal("user update not published")
	}
}

func TestAtomically_RollsBack(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()
	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = st.Atomically(ctx, func(repo editor.Repository) error {
		planID, err := repo.AddPlan(ctx, models.Plan{Name: "Doomed", UserID: u.ID})
		require.NoError(t, err)
		_, err = repo.AddDay(ctx, models.Day{Label: "Monday", MuscleGroup: "Legs", PlanID: planID})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	plans, err := st.ListPlans(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)

	var days int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM workout_days`).Scan(&days))
	assert.Zero(t, days)
}

func TestAtomically_ConstraintViolationLeavesNoRows(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()
	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)

	err = st.Atomically(ctx, func(repo editor.Repository) error {
		planID, err := repo.AddPlan(ctx, models.Plan{Name: "Too many sets", UserID: u.ID})
		if err != nil {
			return err
		}
		dayID, err := repo.AddDay(ctx, models.Day{Label: "Monday", MuscleGroup: "Legs", PlanID: planID})
		if err != nil {
			return err
		}
		_, err = repo.AddExercise(ctx, models.Exercise{Name: "Squat", Sets: 99, Reps: 5, DayID: dayID})
		return err
	})
	require.Error(t, err)

	plans, err := st.ListPlans(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestUpdateUserPrimaryWorkoutPlan(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()
	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)

	first := savePlan(t, st, "First")
	second := savePlan(t, st, "Second")

	require.NoError(t, st.UpdateUserPrimaryWorkoutPlan(ctx, u.ID, first))
	u, err = st.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, u.PrimaryWorkoutPlanID)

	err = st.UpdateUserPrimaryWorkoutPlan(ctx, u.ID, second+100)
	require.ErrorIs(t, err, storage.ErrPlanNotFound)

	err = st.UpdateUserPrimaryWorkoutPlan(ctx, u.ID+100, second)
	require.ErrorIs(t, err, storage.ErrUserNotFound)

	plans, err := st.ListPlans(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "First", plans[0].Name)
	assert.Equal(t, "Second", plans[1].Name)
}

func TestDeletePlan(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()

	planID := savePlan(t, st, "Short lived")
	require.NoError(t, st.DeletePlan(ctx, planID))

	_, err := st.GetPlan(ctx, planID)
	require.ErrorIs(t, err, storage.ErrPlanNotFound)

	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Zero(t, u.PrimaryWorkoutPlanID)

	primary, err := st.PrimaryPlan(ctx)
	require.NoError(t, err)
	assert.Nil(t, primary)

	var exercises int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM workout_exercises`).Scan(&exercises))
	assert.Zero(t, exercises)

	require.ErrorIs(t, st.DeletePlan(ctx, planID), storage.ErrPlanNotFound)
}

func TestUpdateUser(t *testing.T) {
	st := testStorage(t)
	ctx := context.Background()

	p, err := editor.NewProfileEditor(ctx, st)
	require.NoError(t, err)
	require.NoError(t, p.SetName("Carla"))
	require.NoError(t, p.SetAge("29"))
	require.NoError(t, p.SetWeight("58.5"))
	_, err = p.Save(ctx)
	require.NoError(t, err)

	u, err := st.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Carla", u.Name)
	assert.Equal(t, 29, u.Age)
	assert.Equal(t, float32(58.5), u.Weight)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := testStorage(t)
	planID := savePlan(t, src, "Exported")

	dump := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, src.ExportTOML(ctx, dump))

	dst := testStorage(t)
	savePlan(t, dst, "Overwritten")
	require.NoError(t, dst.ImportTOML(ctx, dump))

	u, err := dst.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, planID, u.PrimaryWorkoutPlanID)

	want, err := src.GetPlan(ctx, planID)
	require.NoError(t, err)
	got, err := dst.GetPlan(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	plans, err := dst.ListPlans(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}
