package clinics

import "errors"

var (
	ErrClinicNotFound = errors.New("clinics: clinic not found")
	ErrAccessDenied   = errors.New("clinics: access denied")
	ErrInvalidInput   = errors.New("clinics: invalid input")
	ErrInternal       = errors.New("clinics: internal error")
)
