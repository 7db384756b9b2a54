// Package accounts управляет счетами пользователей банка: регистрацией,
// данными профиля и состоянием блокировки.
// models.go описывает структуры данных для работы с таблицей accounts.
package accounts

import "time"

// Account представляет счёт пользователя в базе данных.
// Счёт создаётся один раз при первом обращении и никогда не удаляется.
// Инвариант: Balance >= 0 всегда (подкреплён CHECK-ограничением в БД).
type Account struct {
	ID            int64     `db:"id"`             // Автоинкрементный ID записи в БД
	UserID        int64     `db:"user_id"`        // Внешний ID пользователя (уникальный)
	Username      string    `db:"username"`       // @username (может быть пустым)
	FirstName     string    `db:"first_name"`     // Имя пользователя
	LastName      string    `db:"last_name"`      // Фамилия (может быть пустой)
	Balance       int64     `db:"balance"`        // Текущий баланс, целые минорные единицы
	IsBlocked     bool      `db:"is_blocked"`     // Флаг блокировки
	BlockedReason *string   `db:"blocked_reason"` // Причина блокировки (nil, если не заблокирован)
	CreatedAt     time.Time `db:"created_at"`     // Когда счёт создан
	LastActive    time.Time `db:"last_active"`    // Последняя активность
}

// DisplayFields содержит данные профиля для обновления.
// Используется, когда пользователь возвращается и его имя/username могли измениться.
// На баланс не влияет никогда.
type DisplayFields struct {
	Username  string // Новый @username
	FirstName string // Новое имя
	LastName  string // Новая фамилия
}

// Stats — сводная статистика по всем счетам для админки.
type Stats struct {
	TotalAccounts   int   // Всего счетов
	ActiveAccounts  int   // Не заблокированных
	BlockedAccounts int   // Заблокированных
	TotalBalance    int64 // Сумма всех балансов
	NewAccounts24h  int   // Новых счетов за последние сутки
	Transactions24h int   // Транзакций за последние сутки
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (a *Account) DisplayName() string {
	if a.Username != "" {
		return "@" + a.Username
	}
	name := a.FirstName
	if a.LastName != "" {
		name += " " + a.LastName
	}
	return name
}
