package models

import "time"

// UnsavedID marks an exercise that has no database row yet.
const UnsavedID int64 = -1

type Plan struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Days      []Day     `json:"days"`
}

type Day struct {
	ID          int64      `json:"id"`
	Label       string     `json:"label"`
	MuscleGroup string     `json:"muscle_group"`
	PlanID      int64      `json:"plan_id"`
	Exercises   []Exercise `json:"exercises"`
}

type Exercise struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  int    `json:"reps"`
	DayID int64  `json:"day_id"`
}

//
// For TOML parsing only
//

type PlanTOML struct {
	Name string    `toml:"name"`
	Days []DayTOML `toml:"day"`
}

type DayTOML struct {
	Day         string         `toml:"day"`
	MuscleGroup string         `toml:"muscle_group"`
	CopyFrom    string         `toml:"copy_from,omitempty"`
	Exercises   []ExerciseTOML `toml:"exercise"`
}

// Sets and reps are kept as text so they go through the same input
// filters as typed values.
type ExerciseTOML struct {
	Name string `toml:"name"`
	Sets string `toml:"sets"`
	Reps string `toml:"reps"`
}
