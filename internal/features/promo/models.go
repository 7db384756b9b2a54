// Package promo управляет одноразовыми промокодами.
// models.go описывает структуру промокода.
package promo

import "time"

// PromoCode представляет промокод в базе данных.
// Жизненный цикл: создан админом (is_used = false) → активирован ровно
// один раз (is_used = true, used_by заполнен). Обратно не переводится.
type PromoCode struct {
	Code      string    `db:"code"`       // Сам код (уникальный ключ)
	Amount    int64     `db:"amount"`     // Сумма начисления
	IsUsed    bool      `db:"is_used"`    // Активирован ли
	UsedBy    *int64    `db:"used_by"`    // Кто активировал (nil, пока не использован)
	CreatedBy *int64    `db:"created_by"` // Какой админ создал (nil — системный)
	CreatedAt time.Time `db:"created_at"` // Когда создан
}
