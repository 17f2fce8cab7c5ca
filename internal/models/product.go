package models

import "time"

type Product struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name" form:"Name" binding:"required"`
	Price       float64 `json:"price" db:"price" form:"Price" binding:"gte=0,lte=1000000"`
	Stock       int     `json:"stock" db:"stock" form:"Stock"`
	Category    string  `json:"category" db:"category" form:"Category"`
	FlowerType  string  `json:"flower_type" db:"flower_type" form:"FlowerType"`
	Description string  `json:"description" db:"description" form:"Description"`
	ImageURL    string  `json:"image_url" db:"image_url" form:"ImageUrl"`
}

// ProductSales une ligne par unité vendue, utilisée pour les rapports
type ProductSales struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	SalesDate time.Time `json:"sales_date" db:"sales_date"`
}

// ProductSalesSummary agrégat par produit sur une période
type ProductSalesSummary struct {
	ProductID int64   `db:"product_id"`
	Name      string  `db:"name"`
	UnitPrice float64 `db:"price"`
	UnitsSold int     `db:"units_sold"`
}

func (s ProductSalesSummary) Revenue() float64 {
	return s.UnitPrice * float64(s.UnitsSold)
}
