package editor_test

import (
	"testing"

	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planFile = `
name = "Upper Lower"

[[day]]
day = "thursday"
muscle_group = "Upper"
copy_from = "Monday"

[[day]]
day = "Monday"
muscle_group = "Upper"

  [[day.exercise]]
  name = "Bench press"
  sets = "4"
  reps = "8"

  [[day.exercise]]
  name = "Pull up"
  sets = "20"
  reps = "50"

[[day]]
day = "Tuesday"
muscle_group = "Lower"

  [[day.exercise]]
  name = "Squat"
  sets = "5"
  reps = "5"
`

func TestLoadPlanFile(t *testing.T) {
	e := editor.New(newFakeRepo())
	require.NoError(t, e.LoadPlanFile([]byte(planFile)))

	d := e.State()
	assert.Equal(t, "Upper Lower", d.Name)
	assert.Equal(t, "Upper", d.Day(models.Monday).MuscleGroup)
	assert.Equal(t, "Lower", d.Day(models.Tuesday).MuscleGroup)

	monday := d.Day(models.Monday).Exercises
	require.Len(t, monday, 2)
	assert.Equal(t, 15, monday[1].Sets)
	assert.Equal(t, 40, monday[1].Reps)

	thursday := d.Day(models.Thursday).Exercises
	require.Len(t, thursday, 2)
	assert.Equal(t, "Bench press", thursday[0].Name)
	assert.Equal(t, models.Thursday, thursday[0].Day)

	assert.Equal(t, 5, d.ExerciseCount())
}

func TestLoadPlanFile_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"invalid toml": `name = `,
		"unknown day": `
name = "x"
[[day]]
day = "Funday"
muscle_group = "Legs"
`,
		"missing reps": `
name = "x"
[[day]]
day = "Monday"
muscle_group = "Legs"
  [[day.exercise]]
  name = "Squat"
  sets = "3"
`,
		"copy from empty day": `
name = "x"
[[day]]
day = "Monday"
muscle_group = "Legs"
copy_from = "Sunday"
`,
	} {
		t.Run(name, func(t *testing.T) {
			e := editor.New(newFakeRepo())
			assert.Error(t, e.LoadPlanFile([]byte(data)))
		})
	}
}
