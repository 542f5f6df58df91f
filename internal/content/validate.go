package content

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tasneemkhan/portfolio/internal/icons"
)

// Tables bundles everything the page renders.
type Tables struct {
	Profile    Profile
	Skills     []Skill
	Projects   []Project
	Experience []Experience
}

// Load returns the compiled-in tables after checking them.
func Load() (t Tables, err error) {
	t = Tables{
		Profile:    DefaultProfile(),
		Skills:     Skills(),
		Projects:   Projects(),
		Experience: Experiences(),
	}
	err = t.Validate()
	if err != nil {
		err = errors.Wrap(err, "content validation failed")
		return t, err
	}
	return t, err
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("glyph", func(fl validator.FieldLevel) bool {
		return icons.Has(icons.Name(fl.Field().String()))
	})
	return v
}

// Validate checks levels, required text and that every glyph resolves.
func (t *Tables) Validate() (err error) {
	v := newValidator()

	err = v.Struct(t.Profile)
	if err != nil {
		err = errors.Wrap(err, "profile")
		return err
	}

	for i, s := range t.Skills {
		err = v.Struct(s)
		if err != nil {
			err = errors.Wrapf(err, "skill at index %d (%s)", i, s.Name)
			return err
		}
	}

	for i, p := range t.Projects {
		err = v.Struct(p)
		if err != nil {
			err = errors.Wrapf(err, "project at index %d (%s)", i, p.Title)
			return err
		}
	}

	for i, e := range t.Experience {
		err = v.Struct(e)
		if err != nil {
			err = errors.Wrapf(err, "experience at index %d (%s)", i, e.Company)
			return err
		}
	}

	return err
}
