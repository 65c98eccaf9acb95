package domain

// Role представляет роль пользователя в команде
type Role string

// Возможные роли пользователей
const (
	RoleCoach  Role = "Coach"  // Тренер: управляет расписанием событий
	RolePlayer Role = "Player" // Игрок: отмечает посещаемость и общается в чате
)

// IsValid проверяет что роль является одной из известных
func (r Role) IsValid() bool {
	return r == RoleCoach || r == RolePlayer
}

// AssistantUserID это зарезервированный ID синтетического пользователя-ассистента.
// Сообщения от ассистента в чате публикуются от его имени.
const AssistantUserID = "assistant-1"

// User представляет участника клуба
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"-"` // Пароль хранится в открытом виде, наружу не сериализуется
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar"` // data URI или URL изображения

	// Поля ниже имеют смысл только для роли Player
	Position     string `json:"position,omitempty"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
}

// IsCoach возвращает true если пользователь имеет роль тренера
func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

// IsPlayer возвращает true если у пользователя заполнена позиция.
// Ассистент при ответах на вопросы считает игроками именно таких пользователей.
func (u *User) IsPlayer() bool {
	return u.Position != ""
}
