// Package estimation - Input validation
package estimation

import (
	"math"

	"github.com/go-playground/validator/v10"

	"storage-planner/internal/errors"
)

// Inputs are the three user-supplied figures behind an estimate
type Inputs struct {
	FilmsPerYear   float64 `json:"films_per_year" validate:"gte=0"`
	MinutesPerFilm float64 `json:"minutes_per_film" validate:"gte=0"`
	HighResPercent float64 `json:"high_res_percent" validate:"gte=0,lte=100"`
}

// Complete reports whether there is enough information to recommend a plan.
// Zero films or zero minutes means the schedule has not been entered yet.
func (in Inputs) Complete() bool {
	return in.FilmsPerYear > 0 && in.MinutesPerFilm > 0
}

var validate = validator.New()

// ValidateInputs rejects negative counts, non-finite values and percentages
// outside [0, 100]. Callers run this before Estimate; Estimate itself trusts
// its arguments.
func ValidateInputs(in Inputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"films_per_year", in.FilmsPerYear},
		{"minutes_per_film", in.MinutesPerFilm},
		{"high_res_percent", in.HighResPercent},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Inputf("%s must be a finite number", f.name).WithContext(f.name, f.value)
		}
	}

	if err := validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return errors.Wrap(errors.TypeInput, "invalid inputs", err)
		}
		fe := verrs[0]
		return errors.Inputf("%s out of range (%s=%s)", fe.Field(), fe.Tag(), fe.Param()).
			WithContext("field", fe.Field()).
			WithContext("value", fe.Value())
	}
	return nil
}
