package assistant

import "errors"

// Ошибки шлюза ассистента. Четыре вида взаимоисключающие: вызывающая сторона
// ветвится по виду, чтобы решить, показывать ли подсказку по исправлению ключа
// и уместен ли повтор исходного запроса.
var (
	// ErrCredentialMissing возвращается когда ключ доступа вообще не задан в окружении.
	// Проверка выполняется до любого сетевого вызова.
	ErrCredentialMissing = errors.New("assistant api key is not configured")

	// ErrCredentialNotSelected возвращается когда ключ существует, но в среде
	// с интерактивным выбором ключа активный ключ еще не выбран
	ErrCredentialNotSelected = errors.New("assistant api key has not been selected")

	// ErrCredentialInvalid возвращается когда внешний сервис отклонил запрос
	// как неавторизованный или сослался на несуществующую сущность
	ErrCredentialInvalid = errors.New("assistant api key was rejected")

	// ErrService возвращается при любой другой ошибке внешнего вызова:
	// сеть, квоты, таймаут, некорректный ответ
	ErrService = errors.New("assistant service error")
)

// Problem представляет вид проблемы шлюза в терминах API
type Problem string

// Виды проблем, возвращаемые клиенту
const (
	ProblemNone           Problem = ""
	ProblemKeyMissing     Problem = "key_missing"
	ProblemKeyNotSelected Problem = "key_not_selected"
	ProblemKeyInvalid     Problem = "key_invalid"
	ProblemService        Problem = "service_error"
)

// Classify преобразует ошибку шлюза в вид проблемы
func Classify(err error) Problem {
	switch {
	case err == nil:
		return ProblemNone
	case errors.Is(err, ErrCredentialMissing):
		return ProblemKeyMissing
	case errors.Is(err, ErrCredentialNotSelected):
		return ProblemKeyNotSelected
	case errors.Is(err, ErrCredentialInvalid):
		return ProblemKeyInvalid
	default:
		return ProblemService
	}
}

// IsCredentialProblem возвращает true для трех видов проблем с ключом.
// После их исправления уместен однократный повтор исходного запроса.
func IsCredentialProblem(err error) bool {
	return errors.Is(err, ErrCredentialMissing) ||
		errors.Is(err, ErrCredentialNotSelected) ||
		errors.Is(err, ErrCredentialInvalid)
}
