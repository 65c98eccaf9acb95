package domain

// EventType представляет тип события в расписании
type EventType string

// Возможные типы событий
const (
	EventPractice EventType = "practice" // Тренировка
	EventGame     EventType = "game"     // Игра
)

// IsValid проверяет что тип события является одним из известных
func (t EventType) IsValid() bool {
	return t == EventPractice || t == EventGame
}

// RSVPStatus представляет намерение пользователя посетить событие
type RSVPStatus string

// Возможные статусы RSVP
const (
	RSVPYes   RSVPStatus = "yes"
	RSVPNo    RSVPStatus = "no"
	RSVPMaybe RSVPStatus = "maybe"
)

// IsValid проверяет что статус RSVP является одним из известных
func (s RSVPStatus) IsValid() bool {
	return s == RSVPYes || s == RSVPNo || s == RSVPMaybe
}

// RSVP представляет отметку посещаемости пользователя для события.
// Запись принадлежит событию и не имеет собственного жизненного цикла.
type RSVP struct {
	UserID string     `json:"user_id"`
	Status RSVPStatus `json:"status"`
}

// Event представляет запланированную тренировку или игру
type Event struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	Title    string    `json:"title"`
	Date     string    `json:"date"` // Календарная дата YYYY-MM-DD, без часового пояса
	Time     string    `json:"time"` // Время дня HH:MM
	Location string    `json:"location"`
	Details  string    `json:"details,omitempty"`
	RSVPs    []RSVP    `json:"rsvps"` // Упорядочен по времени первой отметки каждого пользователя
}

// SetRSVP добавляет или заменяет отметку пользователя.
// Инвариант: не более одной записи на пару (событие, пользователь);
// повторная отметка заменяет статус на месте, сохраняя позицию в списке.
func (e *Event) SetRSVP(userID string, status RSVPStatus) {
	for i, r := range e.RSVPs {
		if r.UserID == userID {
			e.RSVPs[i].Status = status
			return
		}
	}
	e.RSVPs = append(e.RSVPs, RSVP{UserID: userID, Status: status})
}

// AttendingUserIDs возвращает ID пользователей отметившихся статусом "yes"
func (e *Event) AttendingUserIDs() []string {
	ids := make([]string, 0, len(e.RSVPs))
	for _, r := range e.RSVPs {
		if r.Status == RSVPYes {
			ids = append(ids, r.UserID)
		}
	}
	return ids
}
