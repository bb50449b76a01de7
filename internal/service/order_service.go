package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"garastore/internal/auth"
	"garastore/internal/events"
	"garastore/internal/export"
	"garastore/internal/model"
	"garastore/internal/notify"
	"garastore/internal/pricing"
	"garastore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	mailer    notify.Queue
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	mailer notify.Queue,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder places an order for the caller. The client's cart snapshot and
// prices are stored as submitted; prices that disagree with the server's own
// quote are logged but accepted.
func (s *orderService) CreateOrder(ctx context.Context, caller *auth.Identity, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(req.OrderItems))
	for i, item := range req.OrderItems {
		lines[i] = pricing.Line{Quantity: item.Quantity, UnitPrice: item.Price}
	}
	submitted := pricing.Quote{
		ItemsPrice:    req.ItemsPrice,
		ShippingPrice: req.ShippingPrice,
		TaxPrice:      req.TaxPrice,
		TotalPrice:    req.TotalPrice,
	}
	if expected := pricing.Compute(lines); !expected.Matches(submitted) {
		s.logger.Warn().
			Str("user_id", caller.UserID.String()).
			Float64("submitted_total", submitted.TotalPrice).
			Float64("expected_total", expected.TotalPrice).
			Msg("submitted prices differ from computed quote")
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now().UTC()
	order := &model.Order{
		ID:              model.NewID(),
		UserID:          caller.UserID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		ShippingPrice:   req.ShippingPrice,
		TaxPrice:        req.TaxPrice,
		TotalPrice:      req.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.OrderItems = make([]model.OrderItem, len(req.OrderItems))
	for i, item := range req.OrderItems {
		order.OrderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Price:     item.Price,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.OrderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.OrderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", caller.UserID.String()).
		Int("item_count", len(order.OrderItems)).
		Float64("total_price", order.TotalPrice).
		Msg("order created successfully")

	s.publisher.Publish(events.OrderCreated, order)
	return order, nil
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListMine retrieves the orders placed by userID, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves every order with owner names resolved.
func (s *orderService) ListAll(ctx context.Context) ([]model.OrderSummary, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// MarkPaid records a payment capture and queues a receipt to the order's
// owner. Repeated calls overwrite the payment details and queue another
// receipt each time.
func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (*model.Order, error) {
	if result == nil {
		result = &model.PaymentResult{}
	}

	order, err := s.orderRepo.MarkPaid(ctx, id, result)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("payment_id", result.ID).
		Str("payment_status", result.Status).
		Msg("order paid")

	s.queueReceipt(ctx, order)
	s.publisher.Publish(events.OrderPaid, order)
	return order, nil
}

// queueReceipt renders and enqueues the payment receipt. Failures are logged
// only; payment has already been recorded.
func (s *orderService) queueReceipt(ctx context.Context, order *model.Order) {
	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to look up receipt recipient")
		return
	}
	if user == nil {
		s.logger.Warn().Str("order_id", order.ID.String()).Msg("order owner no longer exists, receipt skipped")
		return
	}

	msg, err := notify.RenderReceipt(order, user)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to render receipt")
		return
	}

	if !s.mailer.Enqueue(msg) {
		s.logger.Warn().Str("order_id", order.ID.String()).Msg("receipt not queued")
	}
}

// MarkDelivered records delivery. Payment is not required first.
func (s *orderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.MarkDelivered(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order delivered")
	s.publisher.Publish(events.OrderDelivered, order)
	return order, nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	s.publisher.Publish(events.OrderDeleted, &model.Order{ID: id})
	return nil
}

// Export writes every order as a spreadsheet.
func (s *orderService) Export(ctx context.Context, w io.Writer) error {
	orders, err := s.ListAll(ctx)
	if err != nil {
		return err
	}
	return export.WriteOrders(w, orders)
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError("order payload is required")
	}

	if len(req.OrderItems) == 0 {
		return model.ErrEmptyOrder
	}

	for i, item := range req.OrderItems {
		if item.ProductID == uuid.Nil {
			return model.NewValidationError(fmt.Sprintf("item %d: product id is required", i))
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}

		if item.Price < 0 {
			return model.NewValidationError(fmt.Sprintf("item %d: price cannot be negative", i))
		}
	}

	return nil
}
