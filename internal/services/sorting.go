package services

import (
	"sort"
	"strings"

	"ayana_shop/internal/models"
)

const (
	SortAscendingName   = "ascendingName"
	SortDescendingName  = "descendingName"
	SortAscendingPrice  = "ascendingPrice"
	SortDescendingPrice = "descendingPrice"
)

type SortStrategy interface {
	Less(a, b models.Product) bool
}

type ascendingName struct{}

func (ascendingName) Less(a, b models.Product) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

type descendingName struct{}

func (descendingName) Less(a, b models.Product) bool {
	return strings.ToLower(a.Name) > strings.ToLower(b.Name)
}

type ascendingPrice struct{}

func (ascendingPrice) Less(a, b models.Product) bool { return a.Price < b.Price }

type descendingPrice struct{}

func (descendingPrice) Less(a, b models.Product) bool { return a.Price > b.Price }

// SortStrategyFor option inconnue: tri par nom croissant
func SortStrategyFor(option string) SortStrategy {
	switch option {
	case SortDescendingName:
		return descendingName{}
	case SortAscendingPrice:
		return ascendingPrice{}
	case SortDescendingPrice:
		return descendingPrice{}
	default:
		return ascendingName{}
	}
}

type ProductSorter struct {
	strategy SortStrategy
}

func NewProductSorter(strategy SortStrategy) *ProductSorter {
	return &ProductSorter{strategy: strategy}
}

func (s *ProductSorter) SetStrategy(strategy SortStrategy) {
	s.strategy = strategy
}

// Sort trie une copie, l'ordre d'origine est conservé à égalité
func (s *ProductSorter) Sort(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.strategy.Less(sorted[i], sorted[j])
	})
	return sorted
}
