package editor

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/myfitlist/internal/models"
)

// LoadPlanFile fills the draft from a TOML plan file, entering every value
// through the same setters a user would. Days with copy_from are filled
// after all listed exercises are in place.
func (e *PlanEditor) LoadPlanFile(data []byte) error {
	var planTOML models.PlanTOML
	if err := toml.Unmarshal(data, &planTOML); err != nil {
		return fmt.Errorf("invalid TOML format: %w", err)
	}

	if err := e.SetName(planTOML.Name); err != nil {
		return err
	}

	type copyJob struct{ src, dst models.Weekday }
	var copies []copyJob

	for _, dayTOML := range planTOML.Days {
		day, err := models.ParseWeekday(dayTOML.Day)
		if err != nil {
			return err
		}
		if err := e.SetMuscleGroup(day, dayTOML.MuscleGroup); err != nil {
			return fmt.Errorf("%s: %w", day.Label(), err)
		}

		for _, exTOML := range dayTOML.Exercises {
			if err := e.enterExercise(day, exTOML); err != nil {
				return fmt.Errorf("%s: exercise %q: %w", day.Label(), exTOML.Name, err)
			}
		}

		if dayTOML.CopyFrom != "" {
			src, err := models.ParseWeekday(dayTOML.CopyFrom)
			if err != nil {
				return fmt.Errorf("%s: copy_from: %w", day.Label(), err)
			}
			copies = append(copies, copyJob{src: src, dst: day})
		}
	}

	for _, job := range copies {
		if _, err := e.CopyExercises(job.src, job.dst); err != nil {
			return fmt.Errorf("copy %s to %s: %w", job.src.Label(), job.dst.Label(), err)
		}
	}
	return nil
}

func (e *PlanEditor) enterExercise(day models.Weekday, ex models.ExerciseTOML) error {
	if err := e.SetEntryName(day, ex.Name); err != nil {
		return err
	}
	if err := e.SetEntrySets(day, ex.Sets); err != nil {
		return err
	}
	if err := e.SetEntryReps(day, ex.Reps); err != nil {
		return err
	}
	_, err := e.CommitEntry(day)
	return err
}
