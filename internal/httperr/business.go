package httperr

import "errors"

// BusinessError is a rule violation identified by a stable code. Two
// business errors match under errors.Is when their codes are equal.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func (e BusinessError) Is(target error) bool {
	t, ok := target.(BusinessError)
	return ok && t.Code == e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
