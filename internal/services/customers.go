package services

import (
	"context"
	"time"

	"ayana_shop/internal/models"
)

// InactivityPeriod sans achat depuis plus longtemps, le client est relancé
const InactivityPeriod = 30 * 24 * time.Hour

type CustomerService struct {
	users         UserStore
	clock         Clock
	inactiveAfter time.Duration
}

func NewCustomerService(users UserStore, clock Clock, inactiveAfter time.Duration) *CustomerService {
	if inactiveAfter <= 0 {
		inactiveAfter = InactivityPeriod
	}
	return &CustomerService{users: users, clock: clock, inactiveAfter: inactiveAfter}
}

// GetInactiveCustomers clients dont le dernier achat date de plus de la période d'inactivité
func (s *CustomerService) GetInactiveCustomers(ctx context.Context) ([]models.User, error) {
	activity, err := s.users.CustomersWithLastPurchase(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.clock.now().Add(-s.inactiveAfter)
	inactive := make([]models.User, 0, len(activity))
	for _, a := range activity {
		if a.LastPurchase.Before(cutoff) {
			inactive = append(inactive, a.User)
		}
	}
	return inactive, nil
}
