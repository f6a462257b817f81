package editor

import (
	"context"

	"github.com/misterclayt0n/myfitlist/internal/models"
)

// Repository is what the editors need from the database.
type Repository interface {
	// WatchUser streams the current user, starting with its present value.
	// The channel is closed once ctx is done.
	WatchUser(ctx context.Context) (<-chan models.User, error)

	AddPlan(ctx context.Context, p models.Plan) (int64, error)
	AddDay(ctx context.Context, d models.Day) (int64, error)
	AddExercise(ctx context.Context, ex models.Exercise) (int64, error)
	UpdateUserPrimaryWorkoutPlan(ctx context.Context, userID, planID int64) error
	UpdateUser(ctx context.Context, u models.User) error

	// Atomically runs fn against a repository whose writes are committed
	// together, or not at all when fn returns an error.
	Atomically(ctx context.Context, fn func(Repository) error) error
}
