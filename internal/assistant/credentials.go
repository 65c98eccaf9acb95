package assistant

import "context"

// CredentialProvider поставляет ключ доступа к генеративному API.
// Абстракция моделирует необязательную возможность хоста: в некоторых средах
// ключ выбирается интерактивно, и тогда его наличие в окружении еще не
// означает готовность к вызову.
type CredentialProvider interface {
	// APIKey возвращает настроенный ключ или пустую строку
	APIKey() string

	// SupportsSelection сообщает, поддерживает ли среда интерактивный выбор ключа
	SupportsSelection() bool

	// HasSelectedKey проверяет, выбран ли активный ключ.
	// Имеет смысл только когда SupportsSelection() == true.
	HasSelectedKey(ctx context.Context) (bool, error)
}

// Режимы выбора ключа из конфигурации
const (
	SelectionModeEnv        = "env"        // Интерактивного выбора нет, ключ берется из окружения
	SelectionModeSelected   = "selected"   // Выбор есть, активный ключ выбран
	SelectionModeUnselected = "unselected" // Выбор есть, активный ключ еще не выбран
)

// EnvCredentials реализует CredentialProvider поверх конфигурации процесса
type EnvCredentials struct {
	key  string
	mode string
}

// NewEnvCredentials создает провайдер с ключом key и режимом выбора mode
func NewEnvCredentials(key, mode string) *EnvCredentials {
	return &EnvCredentials{key: key, mode: mode}
}

// APIKey возвращает настроенный ключ или пустую строку
func (c *EnvCredentials) APIKey() string {
	return c.key
}

// SupportsSelection сообщает, поддерживает ли среда интерактивный выбор ключа
func (c *EnvCredentials) SupportsSelection() bool {
	return c.mode == SelectionModeSelected || c.mode == SelectionModeUnselected
}

// HasSelectedKey проверяет, выбран ли активный ключ
func (c *EnvCredentials) HasSelectedKey(_ context.Context) (bool, error) {
	return c.mode == SelectionModeSelected, nil
}
