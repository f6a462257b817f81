package editor_test

import (
	"context"
	"testing"

	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEditor_LoadsUser(t *testing.T) {
	repo := newFakeRepo()
	p, err := editor.NewProfileEditor(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, editor.Profile{}, p.State())

	repo.user = models.User{ID: 1, Name: "Ana", Age: 31, Weight: 61.5}
	p, err = editor.NewProfileEditor(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, editor.Profile{Name: "Ana", Age: "31", Weight: "61.5"}, p.State())
}

func TestProfileEditor_Filters(t *testing.T) {
	p, err := editor.NewProfileEditor(context.Background(), newFakeRepo())
	require.NoError(t, err)

	require.NoError(t, p.SetName("Ana Paula"))
	require.Error(t, p.SetName("Ana 2"))
	require.NoError(t, p.SetAge("200"))
	require.NoError(t, p.SetWeight("9999"))
	require.Error(t, p.SetWeight("12.3.4"))

	assert.Equal(t, editor.Profile{Name: "Ana Paula", Age: "122", Weight: "635"}, p.State())
}

func TestProfileEditor_Save(t *testing.T) {
	repo := newFakeRepo()
	repo.user.PrimaryWorkoutPlanID = 9
	p, err := editor.NewProfileEditor(context.Background(), repo)
	require.NoError(t, err)

	_, err = p.Save(context.Background())
	require.ErrorIs(t, err, editor.ErrNameRequired)
	assert.Empty(t, repo.calls)

	require.NoError(t, p.SetName("  Bruno "))
	require.NoError(t, p.SetWeight("80.5"))

	u, err := p.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.User{
		ID:                   1,
		Name:                 "Bruno",
		Age:                  models.NoAge,
		Weight:               80.5,
		PrimaryWorkoutPlanID: 9,
	}, u)
	assert.Equal(t, u, repo.user)
	assert.Equal(t, []string{"updateUser"}, repo.calls)
}
