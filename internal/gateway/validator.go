package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fadilmartias/ielts-scorer/internal/dto"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationDetails turns validator output into per-field details. Lengths
// are counted in characters.
func validationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}

	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, fe := range verrs {
		d := dto.ValidationDetail{
			Loc: []string{"body", fe.Field()},
		}
		switch fe.Tag() {
		case "required":
			d.Type = "missing"
			d.Msg = "Field required"
		case "min":
			d.Type = "string_too_short"
			d.Msg = fmt.Sprintf("String should have at least %s characters", fe.Param())
			d.Input = fe.Value()
		case "max":
			d.Type = "string_too_long"
			d.Msg = fmt.Sprintf("String should have at most %s characters", fe.Param())
			d.Input = fe.Value()
		default:
			d.Type = fe.Tag()
			d.Msg = fe.Error()
			d.Input = fe.Value()
		}
		details = append(details, d)
	}
	return details
}
