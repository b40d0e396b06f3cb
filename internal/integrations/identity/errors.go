package identity

import "errors"

var (
	// ErrTokenInvalid возвращается, когда провайдер отклонил токен
	// (просрочен, отозван или не выдавался)
	ErrTokenInvalid = errors.New("identity client: token is not active")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("identity client: invalid response")

	// ErrUnavailable возвращается, когда провайдер недоступен.
	// Аутентификация не деградирует в доступ: вызывающая сторона отвечает 503.
	ErrUnavailable = errors.New("identity client: provider unavailable")
)
