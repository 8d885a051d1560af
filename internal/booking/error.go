package booking

import (
	"errors"
	"fmt"
)

var (
	ErrGuestRequired     = errors.New("guest session not found")
	ErrNextID            = errors.New("get next id from generator")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid booking stage transition")
	ErrDraftFrozen       = errors.New("draft can only be edited in details stage")
	ErrNoRoomTypes       = errors.New("hotel has no room types configured")
	ErrDuplicateReceipt  = errors.New("receipt id already recorded")
)

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) has(field string) bool {
	_, ok := ie.fields[field]

	return ok
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}

// orNil keeps a typed nil *InputError from turning into a non-nil error.
func (ie *InputError) orNil() error {
	if ie.fieldsCount() == 0 {
		return nil
	}

	return ie
}
