package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Payment оплата абонемента.
type Payment struct {
	ID          int64     `json:"id"`
	MemberID    uuid.UUID `json:"memberId"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"paymentDate"`
	Note        string    `json:"note,omitempty"`
}

// PaymentRequest данные оплаты из JSON-запроса. Пустая дата означает "сейчас".
type PaymentRequest struct {
	MemberID    string  `json:"memberId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string  `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Note        string  `json:"note,omitempty" validate:"max=500"`
}

// Границы суммы оплаты, совпадающие с колонкой NUMERIC(12,2).
const (
	MinAmount = 0.01
	MaxAmount = 9999999999.99
)

// NormalizeAmount округляет сумму до копеек так же, как её сохранит база.
// Второй результат false, если округлённая сумма вне [MinAmount, MaxAmount].
func NormalizeAmount(amount float64) (float64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	rounded := math.Round(amount*100) / 100
	return rounded, rounded >= MinAmount && rounded <= MaxAmount
}
