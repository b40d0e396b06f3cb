package identity

// introspectRequest тело запроса интроспекции токена
type introspectRequest struct {
	Token string `json:"token"`
}

// introspectResponse ответ провайдера на интроспекцию
type introspectResponse struct {
	Active bool   `json:"active"`
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// Identity результат успешной интроспекции токена
type Identity struct {
	UserID int64
	Role   string
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
