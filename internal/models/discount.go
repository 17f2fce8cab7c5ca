package models

import "time"

type DiscountType int

const (
	PercentageOff DiscountType = 0
	AmountOff     DiscountType = 1
)

type Discount struct {
	ID     int64        `json:"id" db:"id"`
	Code   string       `json:"code" db:"code"`
	Amount float64      `json:"amount" db:"amount"`
	Type   DiscountType `json:"type" db:"type"`
	Begins time.Time    `json:"begins" db:"begins"`
	Ends   time.Time    `json:"ends" db:"ends"`
}

// ValidAt une réduction n'est valide que strictement dans sa fenêtre
func (d Discount) ValidAt(now time.Time) bool {
	return now.After(d.Begins) && now.Before(d.Ends)
}

// DiscountValidation résultat de la vérification d'un code saisi
type DiscountValidation struct {
	IsValid      bool         `json:"is_valid"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Amount       float64      `json:"amount"`
	Type         DiscountType `json:"type"`
	Code         string       `json:"code"`
}
