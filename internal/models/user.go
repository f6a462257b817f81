package models

const (
	NoAge    = -1
	NoWeight = float32(-1)
)

type User struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`    // NoAge when not informed.
	Weight float32 `json:"weight"` // NoWeight when not informed.

	// Zero means no plan is selected.
	PrimaryWorkoutPlanID int64 `json:"primary_workout_plan_id"`
	PrimaryDietPlanID    int64 `json:"primary_diet_plan_id"`
}

func (u User) HasAge() bool {
	return u.Age != NoAge
}

func (u User) HasWeight() bool {
	return u.Weight != NoWeight
}
