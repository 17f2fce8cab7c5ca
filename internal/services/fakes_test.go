package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fakeProducts struct {
	items  map[int64]models.Product
	nextID int64
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{items: map[int64]models.Product{}}
	for _, p := range products {
		f.items[p.ID] = p
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeProducts) sorted(keep func(models.Product) bool) []models.Product {
	out := []models.Product{}
	for _, p := range f.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	return f.sorted(func(models.Product) bool { return true }), nil
}

func (f *fakeProducts) Get(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) ByIDs(_ context.Context, ids []int64) ([]models.Product, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return f.sorted(func(p models.Product) bool { return want[p.ID] }), nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.nextID++
	p.ID = f.nextID
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p models.Product) error {
	if _, ok := f.items[p.ID]; !ok {
		return ErrNotFound
	}
	f.items[p.ID] = p
	return nil
}

func (f *fakeProducts) UpdateNameAndPrice(_ context.Context, id int64, name string, price float64) error {
	p, ok := f.items[id]
	if !ok {
		return ErrNotFound
	}
	p.Name, p.Price = name, price
	f.items[id] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProducts) SearchByName(_ context.Context, term string) ([]models.Product, error) {
	return f.sorted(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
	}), nil
}

func (f *fakeProducts) ByCategory(_ context.Context, category string) ([]models.Product, error) {
	return f.sorted(func(p models.Product) bool { return strings.EqualFold(p.Category, category) }), nil
}

func (f *fakeProducts) ByFlowerType(_ context.Context, flowerType string) ([]models.Product, error) {
	return f.sorted(func(p models.Product) bool { return strings.EqualFold(p.FlowerType, flowerType) }), nil
}

func (f *fakeProducts) PriceAtMost(_ context.Context, max float64) ([]models.Product, error) {
	return f.sorted(func(p models.Product) bool { return p.Price <= max }), nil
}

func (f *fakeProducts) TopByPrice(_ context.Context, category string, limit int) ([]models.Product, error) {
	out := f.sorted(func(p models.Product) bool { return category == "" || p.Category == category })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCarts struct {
	items map[string]map[int64]int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{items: map[string]map[int64]int{}}
}

func (f *fakeCarts) Items(_ context.Context, customerID string) (map[int64]int, error) {
	out := map[int64]int{}
	for k, v := range f.items[customerID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCarts) Increment(_ context.Context, customerID string, productID int64) (int, error) {
	if f.items[customerID] == nil {
		f.items[customerID] = map[int64]int{}
	}
	f.items[customerID][productID]++
	return f.items[customerID][productID], nil
}

func (f *fakeCarts) Decrement(_ context.Context, customerID string, productID int64) (int, error) {
	q, ok := f.items[customerID][productID]
	if !ok {
		return 0, ErrNotInCart
	}
	if q <= 1 {
		delete(f.items[customerID], productID)
		return 0, nil
	}
	f.items[customerID][productID] = q - 1
	return q - 1, nil
}

func (f *fakeCarts) Clear(_ context.Context, customerID string) error {
	delete(f.items, customerID)
	return nil
}

type fakeOrders struct {
	orders map[int64]models.Order
	lines  map[int64][]models.ProductOrder
	nextID int64
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[int64]models.Order{}, lines: map[int64][]models.ProductOrder{}}
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	f.nextID++
	o.ID = f.nextID
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) Get(_ context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) list(keep func(models.Order) bool) []models.Order {
	out := []models.Order{}
	for _, o := range f.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeOrders) ByCustomer(_ context.Context, customerID string) ([]models.Order, error) {
	return f.list(func(o models.Order) bool { return o.CustomerID == customerID }), nil
}

func (f *fakeOrders) ActiveByCustomer(_ context.Context, customerID string, today time.Time) ([]models.Order, error) {
	return f.list(func(o models.Order) bool {
		return o.CustomerID == customerID && !o.DeliveryDate.Before(today)
	}), nil
}

func (f *fakeOrders) All(context.Context) ([]models.Order, error) {
	return f.list(func(models.Order) bool { return true }), nil
}

func (f *fakeOrders) UpdateRating(_ context.Context, id int64, rating int) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Rating = &rating
	f.orders[id] = o
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrders) CreateProductOrder(_ context.Context, po *models.ProductOrder) error {
	f.lines[po.OrderID] = append(f.lines[po.OrderID], *po)
	return nil
}

func (f *fakeOrders) ProductOrders(_ context.Context, orderID int64) ([]models.ProductOrder, error) {
	return f.lines[orderID], nil
}

func (f *fakeOrders) DeleteProductOrders(_ context.Context, orderID int64) error {
	delete(f.lines, orderID)
	return nil
}

type fakePayments struct {
	items  map[int64]models.Payment
	nextID int64
}

func newFakePayments() *fakePayments {
	return &fakePayments{items: map[int64]models.Payment{}}
}

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	f.nextID++
	p.ID = f.nextID
	f.items[p.ID] = *p
	return nil
}

func (f *fakePayments) Get(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakePayments) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeSales struct {
	rows    []models.ProductSales
	summary []models.ProductSalesSummary
	from    time.Time
	to      time.Time
}

func (f *fakeSales) Create(_ context.Context, s *models.ProductSales) error {
	s.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *s)
	return nil
}

func (f *fakeSales) DeleteForOrderLine(_ context.Context, productID int64, salesDate time.Time, limit int) (int64, error) {
	var deleted int64
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ProductID == productID && r.SalesDate.Equal(salesDate) && int(deleted) < limit {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeSales) Summary(_ context.Context, from, to time.Time) ([]models.ProductSalesSummary, error) {
	f.from, f.to = from, to
	return f.summary, nil
}

type fakeDiscounts map[string]models.Discount

func (f fakeDiscounts) ByCode(_ context.Context, code string) (*models.Discount, error) {
	d, ok := f[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

type fakeDiscountCache struct {
	items map[string]models.Discount
	hits  int
}

func (f *fakeDiscountCache) Get(_ context.Context, code string) (*models.Discount, bool) {
	d, ok := f.items[code]
	if ok {
		f.hits++
	}
	return &d, ok
}

func (f *fakeDiscountCache) Set(_ context.Context, d models.Discount) error {
	f.items[d.Code] = d
	return nil
}

type fakeSubs struct {
	items []models.Subscription
}

func (f *fakeSubs) Create(_ context.Context, s *models.Subscription) error {
	s.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSubs) ByCustomer(_ context.Context, customerID string) ([]models.Subscription, error) {
	out := []models.Subscription{}
	for _, s := range f.items {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeReports struct {
	items []models.Report
}

func (f *fakeReports) Create(_ context.Context, r *models.Report) error {
	r.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *r)
	return nil
}

func (f *fakeReports) List(_ context.Context, limit int) ([]models.Report, error) {
	if len(f.items) < limit {
		limit = len(f.items)
	}
	return f.items[:limit], nil
}

type fakeUsers struct {
	items    map[string]models.User
	activity []models.CustomerActivity
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{items: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.items[u.ID] = *u
	return nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUsers) ByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) ConfirmEmail(_ context.Context, id string) error {
	u, ok := f.items[id]
	if !ok {
		return ErrNotFound
	}
	u.EmailConfirmed = true
	f.items[id] = u
	return nil
}

func (f *fakeUsers) CustomersWithLastPurchase(context.Context) ([]models.CustomerActivity, error) {
	return f.activity, nil
}

type fakeCodes struct {
	items map[string]string
	ttls  map[string]time.Duration
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{items: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCodes) Save(_ context.Context, email, code string, ttl time.Duration) error {
	f.items[email] = code
	f.ttls[email] = ttl
	return nil
}

func (f *fakeCodes) Get(_ context.Context, email string) (string, error) {
	return f.items[email], nil
}

func (f *fakeCodes) Delete(_ context.Context, email string) error {
	delete(f.items, email)
	return nil
}

type fakeLimiter struct {
	failures map[string]int
	locked   map[string]bool
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{failures: map[string]int{}, locked: map[string]bool{}}
}

func (f *fakeLimiter) Locked(_ context.Context, email string) (bool, time.Duration, error) {
	if f.locked[email] {
		return true, 15 * time.Minute, nil
	}
	return false, -2, nil
}

func (f *fakeLimiter) RegisterFailure(_ context.Context, email string) (bool, error) {
	f.failures[email]++
	if f.failures[email] >= 5 {
		f.locked[email] = true
		delete(f.failures, email)
		return true, nil
	}
	return false, nil
}

func (f *fakeLimiter) Reset(_ context.Context, email string) error {
	delete(f.failures, email)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	fail map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return io.ErrUnexpectedEOF
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeGateway struct {
	amounts []float64
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount float64, _ string) (string, error) {
	f.amounts = append(f.amounts, amount)
	return "pi_test", nil
}

type fakeIndex struct {
	ids     []int64
	err     error
	indexed []int64
	removed []int64
}

func (f *fakeIndex) Index(_ context.Context, p models.Product) error {
	f.indexed = append(f.indexed, p.ID)
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string) ([]int64, error) {
	return f.ids, f.err
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Put(_ context.Context, bucket, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.keys = append(f.keys, bucket+"/"+key)
	return "http://minio/" + bucket + "/" + key, nil
}

func (f *fakeStorage) SignedURL(_ context.Context, bucket, key string, d time.Duration) (string, error) {
	return fmt.Sprintf("http://minio/%s/%s?ttl=%s", bucket, key, d), nil
}

type fakeAuditor struct {
	entries []models.AuditLog
}

func (f *fakeAuditor) Record(_ context.Context, entry models.AuditLog) {
	f.entries = append(f.entries, entry)
}

type countingCounter struct {
	n int
}

func (c *countingCounter) Inc() { c.n++ }
