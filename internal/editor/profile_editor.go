package editor

import (
	"context"
	"strings"

	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/observable"
	"github.com/misterclayt0n/myfitlist/internal/validation"
	"github.com/sirupsen/logrus"
)

var ErrNameRequired = &validation.FieldError{Field: "name", Reason: "is required"}

// Profile holds the personal data form as typed text.
type Profile struct {
	Name   string
	Age    string
	Weight string
}

// ProfileEditor edits the personal data of the current user.
type ProfileEditor struct {
	repo  Repository
	user  models.User
	state *observable.Value[Profile]
}

// NewProfileEditor loads the current user into the form. Absent age and
// weight show as empty fields.
func NewProfileEditor(ctx context.Context, repo Repository) (*ProfileEditor, error) {
	u, err := firstUser(ctx, repo)
	if err != nil {
		return nil, err
	}

	return &ProfileEditor{
		repo: repo,
		user: u,
		state: observable.New(Profile{
			Name:   u.Name,
			Age:    validation.FormatAge(u.Age),
			Weight: validation.FormatWeight(u.Weight),
		}),
	}, nil
}

func (p *ProfileEditor) State() Profile {
	return p.state.Get()
}

func (p *ProfileEditor) Subscribe(ctx context.Context) <-chan Profile {
	return p.state.Subscribe(ctx)
}

func (p *ProfileEditor) SetName(name string) error {
	name, err := validation.FilterPersonName(name)
	if err != nil {
		return err
	}
	return p.state.Update(func(f Profile) (Profile, error) {
		f.Name = name
		return f, nil
	})
}

func (p *ProfileEditor) SetAge(age string) error {
	age, err := validation.FilterAge(age)
	if err != nil {
		return err
	}
	return p.state.Update(func(f Profile) (Profile, error) {
		f.Age = age
		return f, nil
	})
}

func (p *ProfileEditor) SetWeight(weight string) error {
	weight, err := validation.FilterWeight(weight)
	if err != nil {
		return err
	}
	return p.state.Update(func(f Profile) (Profile, error) {
		f.Weight = weight
		return f, nil
	})
}

// Save stores the form on the user record. The name is required; age and
// weight are stored as -1 when left empty.
func (p *ProfileEditor) Save(ctx context.Context) (models.User, error) {
	form := p.State()
	if strings.TrimSpace(form.Name) == "" {
		return models.User{}, ErrNameRequired
	}

	u := p.user
	u.Name = strings.TrimSpace(form.Name)
	u.Age = validation.ParseAge(form.Age)
	u.Weight = validation.ParseWeight(form.Weight)

	if err := validation.Profile(u.Name, u.Age, u.Weight); err != nil {
		return models.User{}, err
	}

	if err := p.repo.UpdateUser(ctx, u); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Error("failed to update user")
		return models.User{}, err
	}

	p.user = u
	return u, nil
}
