package entity

// UserState шаг, на котором ученик находится в тренажёре
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // Снимка нет, ждём /check
	StateAwaitingPhoto UserState = "awaiting_photo" // Ждём рентгеновский снимок
	StateAnnotating    UserState = "annotating"     // Снимок открыт, идёт разметка рамками
	StateProcessing    UserState = "processing"     // Разметка отправлена, идёт сравнение с моделью
)

// User ученик тренажёра и чат, в котором он работает
type User struct {
	ID     int64
	ChatID int64
	State  UserState
}

// NewUser заводит ученика без открытого снимка
func NewUser(userID, chatID int64) *User {
	return &User{ID: userID, ChatID: chatID, State: StateMainMenu}
}

func (u *User) SetState(state UserState) {
	u.State = state
}

// Busy сообщает, что разметка ученика сейчас сравнивается и новые действия со снимком нужно отложить
func (u *User) Busy() bool {
	return u.State == StateProcessing
}
