package models

import "time"

type PaymentType string

const (
	PaymentCash PaymentType = "Cash"
	PaymentCard PaymentType = "Card"
)

type Payment struct {
	ID              int64       `json:"id" db:"id"`
	PayedAmount     float64     `json:"payed_amount" db:"payed_amount"`
	DeliveryAddress string      `json:"delivery_address" db:"delivery_address"`
	BankAccount     string      `json:"bank_account" db:"bank_account"`
	PaymentType     PaymentType `json:"payment_type" db:"payment_type"`
	DiscountID      *int64      `json:"discount_id,omitempty" db:"discount_id"`
	ProviderRef     string      `json:"provider_ref,omitempty" db:"provider_ref"`
}

type Order struct {
	ID               int64     `json:"id" db:"id"`
	CustomerID       string    `json:"customer_id" db:"customer_id"`
	PaymentID        int64     `json:"payment_id" db:"payment_id"`
	DeliveryDate     time.Time `json:"delivery_date" db:"delivery_date"`
	PurchaseDate     time.Time `json:"purchase_date" db:"purchase_date"`
	TotalAmountToPay float64   `json:"total_amount_to_pay" db:"total_amount_to_pay"`
	PersonalMessage  string    `json:"personal_message" db:"personal_message"`
	IsOrderSent      bool      `json:"is_order_sent" db:"is_order_sent"`
	Rating           *int      `json:"rating,omitempty" db:"rating"`
}

// ProductOrder ligne de commande
type ProductOrder struct {
	ID        int64 `json:"id" db:"id"`
	OrderID   int64 `json:"order_id" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

type Subscription struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Price           float64   `json:"price" db:"price"`
	DeliveryDate    time.Time `json:"delivery_date" db:"delivery_date"`
	CustomerID      string    `json:"customer_id" db:"customer_id"`
	PaymentID       int64     `json:"payment_id" db:"payment_id"`
	PersonalMessage string    `json:"personal_message" db:"personal_message"`
}
