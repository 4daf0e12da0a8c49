package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
	"weekgrid/shared/weekcal"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerWeekKeyValidation(field val.FieldLevel) bool {
	key, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return weekcal.ValidKey(key)
}

func registerDateOnlyValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DateOnlyFormat, value)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("weekkey", registerWeekKeyValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("dateonly", registerDateOnlyValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
