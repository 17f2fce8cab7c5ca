// Package services regroupe la logique métier de la boutique: panier, commandes,
// réductions, catalogue, rapports et emails. Les dépendances de stockage sont
// des interfaces implémentées par repository et cache.
package services

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"ayana_shop/internal/cache"
	"ayana_shop/internal/models"
	"ayana_shop/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrNotInCart          = cache.ErrNotInCart
	ErrEmptyCart          = errors.New("le panier est vide")
	ErrCancellationWindow = errors.New("livraison prévue dans moins de 3 jours")
	ErrUnknownReportType  = errors.New("type de rapport inconnu")
	ErrInvalidRating      = errors.New("la note doit être comprise entre 1 et 5")
)

// Messages affichés à l'utilisateur
const (
	MsgCancellationWindow = "You cannot cancel an order scheduled for delivery within the next 3 days."
	MsgOrderCanceled      = "Order successfully canceled."
	MsgGuestPurchase      = "Only registered users can buy our products. Sign up and enjoy our products"
)

// Clock permet de figer "maintenant" dans les tests
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	ByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p models.Product) error
	UpdateNameAndPrice(ctx context.Context, id int64, name string, price float64) error
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, term string) ([]models.Product, error)
	ByCategory(ctx context.Context, category string) ([]models.Product, error)
	ByFlowerType(ctx context.Context, flowerType string) ([]models.Product, error)
	PriceAtMost(ctx context.Context, max float64) ([]models.Product, error)
	TopByPrice(ctx context.Context, category string, limit int) ([]models.Product, error)
}

type CartStore interface {
	Items(ctx context.Context, customerID string) (map[int64]int, error)
	Increment(ctx context.Context, customerID string, productID int64) (int, error)
	Decrement(ctx context.Context, customerID string, productID int64) (int, error)
	Clear(ctx context.Context, customerID string) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id int64) (*models.Order, error)
	ByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
	ActiveByCustomer(ctx context.Context, customerID string, today time.Time) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	UpdateRating(ctx context.Context, id int64, rating int) error
	Delete(ctx context.Context, id int64) error
	CreateProductOrder(ctx context.Context, po *models.ProductOrder) error
	ProductOrders(ctx context.Context, orderID int64) ([]models.ProductOrder, error)
	DeleteProductOrders(ctx context.Context, orderID int64) error
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id int64) (*models.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type DiscountStore interface {
	ByCode(ctx context.Context, code string) (*models.Discount, error)
}

type SalesStore interface {
	Create(ctx context.Context, s *models.ProductSales) error
	DeleteForOrderLine(ctx context.Context, productID int64, salesDate time.Time, limit int) (int64, error)
	Summary(ctx context.Context, from, to time.Time) ([]models.ProductSalesSummary, error)
}

type SubscriptionStore interface {
	Create(ctx context.Context, s *models.Subscription) error
	ByCustomer(ctx context.Context, customerID string) ([]models.Subscription, error)
}

type ReportStore interface {
	Create(ctx context.Context, r *models.Report) error
	List(ctx context.Context, limit int) ([]models.Report, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	ConfirmEmail(ctx context.Context, id string) error
	CustomersWithLastPurchase(ctx context.Context) ([]models.CustomerActivity, error)
}

type CodeStore interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type LoginLimiter interface {
	Locked(ctx context.Context, email string) (bool, time.Duration, error)
	RegisterFailure(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

type DiscountCache interface {
	Get(ctx context.Context, code string) (*models.Discount, bool)
	Set(ctx context.Context, d models.Discount) error
}

// PaymentGateway paiement par carte, renvoie la référence du fournisseur
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, reference string) (string, error)
}

// ProductIndex index de recherche plein texte
type ProductIndex interface {
	Index(ctx context.Context, p models.Product) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]int64, error)
}

type ObjectStorage interface {
	Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// Counter sous-ensemble de prometheus.Counter
type Counter interface {
	Inc()
}

type noopCounter struct{}

func (noopCounter) Inc() {}

func counterOrNoop(c Counter) Counter {
	if c == nil {
		return noopCounter{}
	}
	return c
}
