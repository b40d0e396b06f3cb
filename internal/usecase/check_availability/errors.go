package check_availability

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена или неактивна
	ErrClinicNotFound = errors.New("check_availability: clinic not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
