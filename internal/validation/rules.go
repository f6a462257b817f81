package validation

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	return v
}

type exerciseRules struct {
	Name string `field:"name" validate:"required,max=100"`
	Sets int    `field:"sets" validate:"min=1,max=15"`
	Reps int    `field:"reps" validate:"min=1,max=40"`
}

type profileRules struct {
	Name   string  `field:"name" validate:"required,max=100"`
	Age    int     `field:"age" validate:"min=-1,max=122"`
	Weight float32 `field:"weight" validate:"min=-1,max=635"`
}

// Exercise checks an exercise before it joins a day.
func Exercise(name string, sets, reps int) error {
	return check(exerciseRules{Name: name, Sets: sets, Reps: reps})
}

// Profile checks personal data before it is stored. Age and weight use -1
// for "not informed".
func Profile(name string, age int, weight float32) error {
	return check(profileRules{Name: name, Age: age, Weight: weight})
}

func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
