package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultOrderPage = 1
	defaultOrderSize = 10
	maxOrderSize     = 100
)

// keeps (page-1)*size far from int overflow
const maxOrderPage = 1_000_000

// OrderUsecase reads orders and moves them through their statuses.
type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	items  repo.OrderItemRepository
	clock  Clock
	events OrderEventPublisher
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	clock Clock,
	events OrderEventPublisher,
) *OrderUsecase {
	return &OrderUsecase{
		tx:     tx,
		orders: orders,
		items:  items,
		clock:  clock,
		events: events,
	}
}

type ListOrdersInput struct {
	UserID int64
	Status *model.OrderStatus
	Page   int
	Size   int
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, orderNo string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return OrderOutput{}, validationf("order_no is required")
	}

	o, err := findOwnedOrder(ctx, u.orders, userID, orderNo)
	if err != nil {
		return OrderOutput{}, err
	}
	o.Items, err = u.items.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, fmt.Errorf("load order items: %w", err)
	}
	return toOrderOutput(o), nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context, in ListOrdersInput) (OrderListOutput, error) {
	if in.UserID <= 0 {
		return OrderListOutput{}, ErrUnauthorized
	}
	if in.Page < 0 || in.Size < 0 {
		return OrderListOutput{}, validationf("page and size must not be negative")
	}
	if in.Page > maxOrderPage {
		return OrderListOutput{}, validationf("page must be at most %d", maxOrderPage)
	}
	if in.Page == 0 {
		in.Page = defaultOrderPage
	}
	if in.Size == 0 {
		in.Size = defaultOrderSize
	}
	if in.Size > maxOrderSize {
		in.Size = maxOrderSize
	}
	if in.Status != nil && !in.Status.Valid() {
		return OrderListOutput{}, validationf("unknown status %d", int(*in.Status))
	}

	orders, total, err := u.orders.ListByUser(ctx, repo.OrderListFilter{
		UserID: in.UserID,
		Status: in.Status,
		Page:   in.Page,
		Size:   in.Size,
	})
	if err != nil {
		return OrderListOutput{}, fmt.Errorf("list orders: %w", err)
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder, err := u.items.ListByOrderIDs(ctx, ids)
	if err != nil {
		return OrderListOutput{}, fmt.Errorf("load order items: %w", err)
	}

	out := OrderListOutput{
		Items: make([]OrderOutput, 0, len(orders)),
		Total: total,
		Page:  in.Page,
		Size:  in.Size,
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
		out.Items = append(out.Items, toOrderOutput(o))
	}
	return out, nil
}

// MarkPaid is the simulated payment confirmation: CREATED -> PAID.
func (u *OrderUsecase) MarkPaid(ctx context.Context, userID int64, orderNo string) (OrderOutput, error) {
	return u.transition(ctx, userID, orderNo, model.OrderStatusPaid, model.AuditActionPayOrder, OrderEventPaid, nil)
}

// Cancel moves a CREATED order to CANCELED and returns its stock.
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderNo string) (OrderOutput, error) {
	restock := func(ctx context.Context, r repo.TxRepos, items []model.OrderItem) error {
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil && !errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("restock product %d: %w", it.ProductID, err)
			}
		}
		return nil
	}
	return u.transition(ctx, userID, orderNo, model.OrderStatusCanceled, model.AuditActionCancelOrder, OrderEventCanceled, restock)
}

type transitionHook func(ctx context.Context, r repo.TxRepos, items []model.OrderItem) error

// transition only leaves CREATED. The update is conditional on the status
// so two concurrent requests cannot both succeed.
func (u *OrderUsecase) transition(
	ctx context.Context,
	userID int64,
	orderNo string,
	to model.OrderStatus,
	action model.AuditAction,
	evType OrderEventType,
	hook transitionHook,
) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return OrderOutput{}, validationf("order_no is required")
	}

	var o model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		o, err = findOwnedOrder(ctx, r.Orders(), userID, orderNo)
		if err != nil {
			return err
		}
		from := o.Status
		if from != model.OrderStatusCreated {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidState, orderNo, from)
		}

		now := u.clock.Now()
		ok, err := r.Orders().TransitionStatus(ctx, o.ID, from, to, now)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: order %s changed concurrently", ErrInvalidState, orderNo)
		}

		o.Status = to
		o.UpdatedAt = now
		switch to {
		case model.OrderStatusPaid:
			o.PaymentTime = &now
		case model.OrderStatusCanceled:
			o.CancelTime = &now
		}

		o.Items, err = r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}
		if hook != nil {
			if err := hook(ctx, r, o.Items); err != nil {
				return err
			}
		}
		return recordOrderTransition(ctx, r.AuditLogs(), userID, action, o, &from, to, now)
	})
	if err != nil {
		return OrderOutput{}, err
	}

	zerolog.Ctx(ctx).Info().
		Str("order_no", o.OrderNo).
		Stringer("status", o.Status).
		Msg("order status updated")

	publish(ctx, u.events, newOrderEvent(evType, o, o.UpdatedAt))
	return toOrderOutput(o), nil
}

func findOwnedOrder(ctx context.Context, orders repo.OrderRepository, userID int64, orderNo string) (model.Order, error) {
	o, err := orders.FindByOrderNoForUser(ctx, orderNo, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, notFoundf("order %s", orderNo)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("load order: %w", err)
	}
	return o, nil
}
