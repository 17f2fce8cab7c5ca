package services

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Add ajoute une unité et renvoie la nouvelle quantité
func (s *CartService) Add(ctx context.Context, customerID string, productID int64) (int, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return 0, err
	}
	return s.carts.Increment(ctx, customerID, productID)
}

// RemoveOne retire une unité, la ligne disparaît à zéro
func (s *CartService) RemoveOne(ctx context.Context, customerID string, productID int64) (int, error) {
	return s.carts.Decrement(ctx, customerID, productID)
}

// Lines lignes du panier avec leur produit, triées par nom.
// Les produits supprimés entre-temps sont ignorés.
func (s *CartService) Lines(ctx context.Context, customerID string) ([]models.CartItem, error) {
	items, err := s.carts.Items(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.CartItem{}, nil
	}

	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	products, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "produits du panier")
	}

	lines := make([]models.CartItem, 0, len(products))
	for i := range products {
		p := products[i]
		lines = append(lines, models.CartItem{
			CustomerID: customerID,
			ProductID:  p.ID,
			Quantity:   items[p.ID],
			Product:    &p,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Product.Name < lines[j].Product.Name
	})
	return lines, nil
}

func (s *CartService) Clear(ctx context.Context, customerID string) error {
	return s.carts.Clear(ctx, customerID)
}

// Subtotal somme prix x quantité
func Subtotal(lines []models.CartItem) float64 {
	var total float64
	for _, line := range lines {
		total += line.LineTotal()
	}
	return total
}
