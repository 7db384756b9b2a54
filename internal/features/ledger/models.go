// Package ledger управляет движением средств между счетами.
// models.go описывает структуру транзакции.
package ledger

import "time"

// Transaction представляет одну операцию со средствами.
// Записи неизменяемы после создания и служат единственным источником
// правды об истории балансов.
type Transaction struct {
	ID          int64     `db:"id"`          // Монотонный ID транзакции
	SenderID    *int64    `db:"sender_id"`   // Отправитель (nil — эмиссия системой)
	ReceiverID  *int64    `db:"receiver_id"` // Получатель (nil — списание в систему)
	Amount      int64     `db:"amount"`      // Сумма (всегда положительная)
	Description string    `db:"description"` // Описание для отображения
	CreatedAt   time.Time `db:"created_at"`  // Время транзакции
}

// IsMint сообщает, что транзакция — эмиссия (средства появились из системы).
func (t *Transaction) IsMint() bool { return t.SenderID == nil }

// IsBurn сообщает, что транзакция — списание в систему.
func (t *Transaction) IsBurn() bool { return t.ReceiverID == nil }
