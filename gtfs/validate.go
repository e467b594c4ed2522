package gtfs

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var rowValidator = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New()
	// Report column names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("csv"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// checkRequired runs the declarative required-field rules of a raw row and
// returns the first violation as a missing-field error.
func checkRequired(entity string, row any) error {
	err := rowValidator.Struct(row)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return missingField(entity, verrs[0].Field())
	}
	return err
}
