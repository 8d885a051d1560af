package booking

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	basicEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// messages follow the wording guests see on the booking form.
var messages = map[string]string{
	"name.required":     "Name is required",
	"email.required":    "Email is required",
	"email.basicemail":  "Email is invalid",
	"phone.required":    "Phone number is required",
	"checkIn.required":  "Check-in date is required",
	"checkOut.required": "Check-out date is required",
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		//nolint:errcheck // tag name is static
		validate.RegisterValidation("basicemail", func(fl validator.FieldLevel) bool {
			return basicEmail.MatchString(fl.Field().String())
		})
	})

	return validate
}

func (d Details) trimmed() Details {
	d.GuestName = strings.TrimSpace(d.GuestName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.CheckIn = strings.TrimSpace(d.CheckIn)
	d.CheckOut = strings.TrimSpace(d.CheckOut)

	return d
}

func (d Details) validate(inputErr *InputError) error {
	details := d.trimmed()

	err := getValidator().Struct(&details)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate details: %w", err)
	}

	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}

		inputErr.addError(fe.Field(), msg)
	}

	return nil
}

// validateForPayment collects every problem that blocks details -> payment.
func (d *Draft) validateForPayment(hotel *Hotel) error {
	inputErr := newInputError()

	if err := d.Details.validate(inputErr); err != nil {
		return err
	}

	if !inputErr.has("checkIn") && !inputErr.has("checkOut") {
		in, inOK := parseDate(d.Details.CheckIn)
		out, outOK := parseDate(d.Details.CheckOut)

		switch {
		case !inOK:
			inputErr.addError("checkIn", "Check-in date is invalid")
		case !outOK:
			inputErr.addError("checkOut", "Check-out date is invalid")
		case !out.After(in):
			inputErr.addError("checkOut", "Check-out date must be after check-in date")
		}
	}

	if totalRooms(d.SelectedRooms) == 0 {
		inputErr.addError("selectedRooms", "Please select at least one room type")
	}

	for _, sr := range d.SelectedRooms {
		if _, ok := hotel.RoomType(sr.RoomTypeID); !ok {
			inputErr.addError("selectedRooms", fmt.Sprintf("Room type %q is not offered by %s", sr.RoomTypeID, hotel.Name))
		}
	}

	return inputErr.orNil()
}

func validatePayment(input FinalizeInput) error {
	inputErr := newInputError()

	if !input.PaymentMethod.valid() {
		inputErr.addError("paymentMethod", "Payment method must be one of card, bank, cash")
	}

	if input.PaymentMethod == PaymentBank && input.Receipt == nil {
		inputErr.addError("receipt", "Please upload a payment receipt to continue.")
	}

	return inputErr.orNil()
}
