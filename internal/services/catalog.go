package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

const (
	BestSellerCount  = 3
	BirthdayCategory = "Birthday"
)

type CatalogService struct {
	products ProductStore
	index    ProductIndex
	log      logrus.FieldLogger
}

// NewCatalogService index peut être nil, la recherche passe alors par la base
func NewCatalogService(products ProductStore, index ProductIndex, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{products: products, index: index, log: log}
}

func (s *CatalogService) All(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) Details(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// CategoryView produits de la catégorie, sinon du type de fleur du même nom
func (s *CatalogService) CategoryView(ctx context.Context, name string) ([]models.Product, error) {
	products, err := s.products.ByCategory(ctx, name)
	if err != nil || len(products) > 0 {
		return products, err
	}
	return s.products.ByFlowerType(ctx, name)
}

func (s *CatalogService) BestSellers(ctx context.Context) ([]models.Product, error) {
	return s.products.TopByPrice(ctx, "", BestSellerCount)
}

func (s *CatalogService) BirthdayBestSellers(ctx context.Context) ([]models.Product, error) {
	return s.products.TopByPrice(ctx, BirthdayCategory, BestSellerCount)
}

// Search passe par Elasticsearch si disponible, sinon recherche par nom en base
func (s *CatalogService) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.products.List(ctx)
	}

	if s.index != nil {
		ids, err := s.index.Search(ctx, term)
		if err == nil {
			return s.byRankedIDs(ctx, ids)
		}
		s.log.WithError(err).Warn("⚠️ Recherche Elasticsearch en échec, repli sur Postgres")
	}
	return s.products.SearchByName(ctx, term)
}

// byRankedIDs conserve l'ordre de pertinence de l'index
func (s *CatalogService) byRankedIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	products, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ranked := make([]models.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

// PopularSearches "BAM 50.00" = prix <= 50, sinon catégorie puis type de fleur
func (s *CatalogService) PopularSearches(ctx context.Context, term string) ([]models.Product, error) {
	if limit, ok := parsePriceLimit(term); ok {
		return s.products.PriceAtMost(ctx, limit)
	}
	return s.CategoryView(ctx, strings.TrimSpace(term))
}

func parsePriceLimit(term string) (float64, bool) {
	t := strings.TrimSpace(term)
	if len(t) < 3 || !strings.EqualFold(t[:3], "BAM") {
		return 0, false
	}
	amount := strings.TrimSpace(t[3:])
	if i := strings.IndexAny(amount, ".,"); i >= 0 {
		amount = amount[:i]
	}
	n, err := strconv.Atoi(amount)
	if err != nil || n < 0 {
		return 0, false
	}
	return float64(n), true
}

// Sort filtre (catégorie, type de fleur puis nom) et trie selon l'option
func (s *CatalogService) Sort(ctx context.Context, option, filter string) ([]models.Product, error) {
	products, err := s.filter(ctx, strings.TrimSpace(filter))
	if err != nil {
		return nil, err
	}
	return NewProductSorter(SortStrategyFor(option)).Sort(products), nil
}

func (s *CatalogService) filter(ctx context.Context, filter string) ([]models.Product, error) {
	if filter == "" {
		return s.products.List(ctx)
	}
	products, err := s.CategoryView(ctx, filter)
	if err != nil || len(products) > 0 {
		return products, err
	}
	return s.products.SearchByName(ctx, filter)
}
