package domain

import "errors"

// Доменные ошибки сервиса
var (
	// ErrInvalidCredentials возвращается когда имя или пароль не совпали.
	// Намеренно не уточняет какое именно поле оказалось неверным.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrEventNotFound возвращается когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrValidation возвращается когда в запросе отсутствуют обязательные поля
	ErrValidation = errors.New("validation failed")

	// ErrForbidden возвращается когда операция требует роль тренера
	ErrForbidden = errors.New("operation requires coach role")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrAssistantBusy возвращается при попытке запустить второй запрос к ассистенту,
	// пока предыдущий еще не завершился
	ErrAssistantBusy = errors.New("assistant request already in progress")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS" // Имя или пароль неверны
	CodeValidation         ErrorCode = "VALIDATION"          // Отсутствуют обязательные поля
	CodeForbidden          ErrorCode = "FORBIDDEN"           // Требуется роль тренера
	CodeNotFound           ErrorCode = "NOT_FOUND"           // Ресурс не найден
	CodeAssistantBusy      ErrorCode = "ASSISTANT_BUSY"      // Запрос к ассистенту уже выполняется
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"        // Токен отсутствует или невалиден
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAssistantBusy):
		return CodeAssistantBusy
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeNotFound
	}
}
