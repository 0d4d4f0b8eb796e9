package dto

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// YearMonthLayout is the wire format of a calendar month.
const YearMonthLayout = "2006-01"

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("birthdate", validateBirthDate); err != nil {
		return err
	}
	return v.RegisterValidation("yearmonth", validateYearMonth)
}

// validateBirthDate checks the DD.MM.YYYY shape. Whether the date lies in the
// past is decided by the use case.
func validateBirthDate(fl validator.FieldLevel) bool {
	_, err := entity.ParseBirthDate(fl.Field().String())
	return err == nil
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse(YearMonthLayout, fl.Field().String())
	return err == nil
}
