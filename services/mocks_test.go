package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes shared by the service tests. Their not-found
// errors use the same message GORM produces, which is what the services
// match on.

type notFoundError struct{}

func (e *notFoundError) Error() string { return "record not found" }

type duplicateError struct{}

func (e *duplicateError) Error() string {
	return `duplicate key value violates unique constraint (SQLSTATE 23505)`
}

// --- Product repository ---

type mockProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == product.Slug {
			return &duplicateError{}
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepo) FindAll(_ context.Context, filters repository.ProductFilters, sortKey string, limit, offset int) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Product
	for _, p := range m.products {
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			continue
		}
		if filters.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filters.CategoryID) {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		matched = append(matched, *p)
	}

	switch sortKey {
	case repository.SortPriceAsc:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case repository.SortPriceDesc:
		sort.Slice(matched, func(i, j int) bool { return matched[j].Price.LessThan(matched[i].Price) })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := int64(len(matched))
	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, &notFoundError{}
	}
	found := *p
	return &found, nil
}

func (m *mockProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Slug == slug {
			found := *p
			return &found, nil
		}
	}
	return nil, &notFoundError{}
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			found = append(found, *p)
		}
	}
	return found, nil
}

func (m *mockProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return &notFoundError{}
	}
	for column, value := range updates {
		switch column {
		case "name":
			p.Name = value.(string)
		case "slug":
			p.Slug = value.(string)
		case "description":
			p.Description = value.(string)
		case "price":
			p.Price = value.(decimal.Decimal)
		case "sku":
			p.SKU = value.(string)
		case "image_url":
			p.ImageURL = value.(string)
		case "category_id":
			categoryID := value.(uuid.UUID)
			p.CategoryID = &categoryID
		case "status":
			p.Status = value.(string)
		case "stock":
			p.Stock = value.(int)
		case "min_stock":
			p.MinStock = value.(int)
		}
	}
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return &notFoundError{}
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) CountLowStock(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, p := range m.products {
		if p.Stock <= p.MinStock {
			total++
		}
	}
	return total, nil
}

// --- Order repository ---

// mockOrderRepo shares the product store so CreateWithItems can apply the
// same stock decrements the real transaction does.
type mockOrderRepo struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*models.Order
	products *mockProductRepo
}

func newMockOrderRepo(products *mockProductRepo) *mockOrderRepo {
	return &mockOrderRepo{
		orders:   make(map[uuid.UUID]*models.Order),
		products: products,
	}
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *models.Order, items []models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.orders {
		if existing.OrderNumber == order.OrderNumber {
			return &duplicateError{}
		}
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].OrderID = order.ID
	}

	stored := *order
	stored.Items = append([]models.OrderItem(nil), items...)
	m.orders[order.ID] = &stored

	m.products.mu.Lock()
	for _, item := range items {
		if p, ok := m.products.products[item.ProductID]; ok {
			p.Stock -= item.Quantity
		}
	}
	m.products.mu.Unlock()
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, &notFoundError{}
	}
	found := *o
	found.Items = append([]models.OrderItem(nil), o.Items...)
	return &found, nil
}

func (m *mockOrderRepo) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			found := *o
			found.Items = append([]models.OrderItem(nil), o.Items...)
			return &found, nil
		}
	}
	return nil, &notFoundError{}
}

func (m *mockOrderRepo) FindAll(_ context.Context, status string, limit, offset int) ([]models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Order
	for _, o := range m.orders {
		if status != "" && o.Status != status {
			continue
		}
		found := *o
		found.Items = append([]models.OrderItem(nil), o.Items...)
		matched = append(matched, found)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return &notFoundError{}
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) SumTotalByStatus(_ context.Context, status string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, o := range m.orders {
		if o.Status == status {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (m *mockOrderRepo) CountDistinctCustomers(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]struct{})
	for _, o := range m.orders {
		seen[o.CustomerEmail] = struct{}{}
	}
	return int64(len(seen)), nil
}

// --- Category repository ---

type mockCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*models.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Slug == category.Slug {
			return &duplicateError{}
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	stored := *category
	m.categories[category.ID] = &stored
	return nil
}

func (m *mockCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Category
	for _, c := range m.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// --- Event producer ---

// mockProducer records published events (avoids a Kafka broker in tests).
type mockProducer struct {
	mu            sync.Mutex
	created       []models.Order
	statusChanges []string
}

func (m *mockProducer) PublishOrderCreated(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *order)
	return nil
}

func (m *mockProducer) PublishOrderStatusChanged(_ context.Context, orderID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusChanges = append(m.statusChanges, orderID+":"+status)
	return nil
}

func (m *mockProducer) Close() error { return nil }
