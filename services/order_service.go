package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"storefront-backend/kafka"
	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderSeq disambiguates orders generated within the same millisecond.
var orderSeq atomic.Uint64

// NewOrderNumber returns a fresh order number such as ORD-1756227123456042:
// the ORD- prefix followed only by digits, a millisecond timestamp plus a
// rolling three-digit sequence. The unique index on order_number backstops
// the residual collision window across processes.
func NewOrderNumber() string {
	seq := orderSeq.Add(1) % 1000
	return fmt.Sprintf("ORD-%d%03d", time.Now().UnixMilli(), seq)
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, idOrNumber string) (*models.Order, *ServiceError)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, int64, *ServiceError)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) *ServiceError
}

// orderServiceImpl implements OrderService.
type orderServiceImpl struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	producer    kafka.ProducerAPI
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService. The producer may be nil when
// order events are not configured.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateOrder places an order: it snapshots product name and sku onto each
// line, computes line totals as price times quantity, and commits the order,
// its items and the stock decrements in one transaction. The order total is
// stored exactly as submitted, not recomputed. Stock is not checked first;
// it simply goes down by the ordered quantity, negative if need be.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	order := &models.Order{
		OrderNumber:   NewOrderNumber(),
		CustomerEmail: req.Order.CustomerEmail,
		Status:        models.OrderStatusPending,
		Total:         req.Order.Total,
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load products for order", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			ProductSKU:  line.ProductSKU,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Total:       line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
		if p, ok := byID[line.ProductID]; ok {
			item.ProductName = p.Name
			item.ProductSKU = p.SKU
		}
		items = append(items, item)
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "Order number collision, please retry"}
		}
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}
	order.Items = items

	if err := s.attachProductViews(ctx, order); err != nil {
		// The order is committed; degrade to snapshot views rather
		// than failing the response.
		s.logger.Warn("Failed to attach product views",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		for i := range order.Items {
			item := &order.Items[i]
			item.Product = snapshotView(item)
		}
	}

	s.publishOrderCreated(order)
	s.logger.Info("Order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_email", order.CustomerEmail),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

// GetOrder retrieves an order with product views attached. The argument is
// treated as an id when it parses as a UUID and as an order number
// otherwise.
func (s *orderServiceImpl) GetOrder(ctx context.Context, idOrNumber string) (*models.Order, *ServiceError) {
	var order *models.Order
	var err error
	if id, parseErr := uuid.Parse(idOrNumber); parseErr == nil {
		order, err = s.orderRepo.FindByID(ctx, id)
	} else {
		order, err = s.orderRepo.FindByNumber(ctx, idOrNumber)
	}
	if err != nil {
		if err.Error() == "record not found" {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order", idOrNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	if err := s.attachProductViews(ctx, order); err != nil {
		s.logger.Error("Failed to load products for order",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	return order, nil
}

// ListOrders returns one page of orders, newest first, with product views
// attached per order.
func (s *orderServiceImpl) ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
	}
	if orders == nil {
		orders = []models.Order{}
	}

	for i := range orders {
		if err := s.attachProductViews(ctx, &orders[i]); err != nil {
			s.logger.Error("Failed to load products for order",
				zap.String("order_number", orders[i].OrderNumber),
				zap.Error(err),
			)
			return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
		}
	}
	return orders, total, nil
}

// UpdateOrderStatus overwrites an order's status with the given value. Any
// non-empty string is accepted verbatim; there is no transition check.
func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) *ServiceError {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to update order status",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return &ServiceError{StatusCode: 500, Message: "Failed to update order status"}
	}

	s.publishStatusChanged(id.String(), status)
	s.logger.Info("Order status updated",
		zap.String("order_id", id.String()),
		zap.String("status", status),
	)
	return nil
}

// attachProductViews resolves each item's product: the live row when it
// still exists, otherwise a minimal view rebuilt from the snapshot columns.
// One lookup per order.
func (s *orderServiceImpl) attachProductViews(ctx context.Context, order *models.Order) error {
	if len(order.Items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range order.Items {
		item := &order.Items[i]
		if p, ok := byID[item.ProductID]; ok {
			product := p
			item.Product = &product
		} else {
			item.Product = snapshotView(item)
		}
	}
	return nil
}

// snapshotView builds the synthetic product view for an item whose product
// no longer exists.
func snapshotView(item *models.OrderItem) *models.Product {
	return &models.Product{
		ID:   item.ProductID,
		Name: item.ProductName,
		SKU:  item.ProductSKU,
	}
}

func (s *orderServiceImpl) publishOrderCreated(order *models.Order) {
	if s.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order_created event",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
}

func (s *orderServiceImpl) publishStatusChanged(orderID, status string) {
	if s.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.PublishOrderStatusChanged(ctx, orderID, status); err != nil {
		s.logger.Warn("Failed to publish order_status_changed event",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
