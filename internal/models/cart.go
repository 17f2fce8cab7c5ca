package models

// CartItem une ligne par produit et par client, quantité toujours >= 1
type CartItem struct {
	CustomerID string   `json:"customer_id"`
	ProductID  int64    `json:"product_id"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product,omitempty"`
}

func (i CartItem) LineTotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}
