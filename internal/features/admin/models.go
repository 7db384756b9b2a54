// Package admin реализует административные операции над счетами:
// блокировка, ручные начисления и списания — и журнал действий
// администраторов. Каждая операция оставляет ровно одну запись
// в журнале в той же транзакции БД, что и её эффект.
// models.go описывает записи журнала.
package admin

import "time"

// Типы действий администратора. Значения попадают в колонку action_type.
const (
	ActionCreatePromo   = "CREATE_PROMO"
	ActionBlockUser     = "BLOCK_USER"
	ActionUnblockUser   = "UNBLOCK_USER"
	ActionAddBalance    = "ADD_BALANCE"
	ActionRemoveBalance = "REMOVE_BALANCE"
)

// AdminAction — запись журнала административных действий.
type AdminAction struct {
	ID           int64
	AdminID      *int64 // NULL — действие системы, а не конкретного администратора
	ActionType   string
	TargetUserID *int64
	Amount       *int64
	Description  string
	CreatedAt    time.Time
}
