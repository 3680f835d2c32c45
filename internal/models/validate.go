package models

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/harmony/internal/constants"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// clock accepts "HH:MM" on a 24h clock
		_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(constants.TimeFormat, fl.Field().String())
			return err == nil && len(fl.Field().String()) == len(constants.TimeFormat)
		})
		validate.RegisterStructValidation(validateOffTime, OffTime{})
	})
	return validate
}

// Validate checks v against its struct tags and flattens the failures into
// one readable error.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid %T: %s", v, strings.Join(msgs, "; "))
}

// IsDate reports whether s is a YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// IsClock reports whether s is an HH:MM time.
func IsClock(s string) bool {
	_, err := time.Parse(constants.TimeFormat, s)
	return err == nil && len(s) == len(constants.TimeFormat)
}

// validateOffTime keeps a range from ending before it starts. Dates are
// YYYY-MM-DD, so string order is date order.
func validateOffTime(sl validator.StructLevel) {
	o := sl.Current().Interface().(OffTime)
	if o.Kind == OffTimeRange && o.EndDate < o.StartDate {
		sl.ReportError(o.EndDate, "EndDate", "EndDate", "gtefield", "StartDate")
	}
}
