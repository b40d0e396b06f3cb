package reserve_slot

import "errors"

var (
	// ErrClinicNotFound возвращается, когда клиника не найдена или неактивна
	ErrClinicNotFound = errors.New("reserve_slot: clinic not found")

	// ErrCapacityExceeded возвращается, когда на дату не осталось свободных слотов.
	// Ожидаемый бизнес-отказ, не сбой.
	ErrCapacityExceeded = errors.New("reserve_slot: daily capacity exceeded")

	// ErrTxConflict возвращается, когда сериализуемая транзакция не
	// зафиксировалась после всех внутренних повторов. Клиент может повторить запрос.
	ErrTxConflict = errors.New("reserve_slot: reservation conflict, retry")

	// ErrStoreUnavailable возвращается при недоступности хранилища после
	// всех внутренних повторов
	ErrStoreUnavailable = errors.New("reserve_slot: storage unavailable")

	// ErrInvalidDate возвращается при некорректной дате резервирования
	ErrInvalidDate = errors.New("reserve_slot: invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrAccessDenied возвращается при попытке забронировать слот за другого
	// пациента без прав персонала
	ErrAccessDenied = errors.New("reserve_slot: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
