package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"

	"github.com/rs/zerolog"
)

// CheckoutStage is the step a checkout request reached.
type CheckoutStage string

const (
	StageValidating   CheckoutStage = "validating"
	StageDecrementing CheckoutStage = "decrementing"
	StagePersisting   CheckoutStage = "persisting"
	StageClearingCart CheckoutStage = "clearing_cart"
	StageDone         CheckoutStage = "done"
	StageAborted      CheckoutStage = "aborted"
)

// attempts to find a free order number before giving up
const maxOrderNoAttempts = 3

type CheckoutUsecase struct {
	tx        repo.TransactionManager
	reader    CartSnapshotReader
	assembler OrderAssembler
	orderNo   OrderNoGenerator
	clock     Clock
	events    OrderEventPublisher
}

func NewCheckoutUsecase(tx repo.TransactionManager, orderNo OrderNoGenerator, clock Clock, events OrderEventPublisher) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:      tx,
		orderNo: orderNo,
		clock:   clock,
		events:  events,
	}
}

type PlaceOrderInput struct {
	UserID    int64
	CartIDs   []int64
	AddressID int64
}

// PlaceOrder converts the selected cart lines into an order. Everything from
// validation to clearing the cart runs in one transaction.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	log := zerolog.Ctx(ctx).With().
		Str("op", "checkout").
		Int64("user_id", in.UserID).
		Logger()

	if in.UserID <= 0 {
		return OrderOutput{}, ErrUnauthorized
	}
	if in.AddressID <= 0 {
		return OrderOutput{}, validationf("invalid address_id")
	}

	var order model.Order
	stage := StageValidating

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		stage = StageValidating
		lines, err := u.reader.Read(ctx, r.CartLines(), in.UserID, in.CartIDs)
		if err != nil {
			return err
		}
		addr, err := ownedAddress(ctx, r.Addresses(), in.UserID, in.AddressID)
		if err != nil {
			return err
		}

		stage = StageDecrementing
		items, total, err := u.assembler.Assemble(ctx, r.Inventory(), r.Products(), lines)
		if err != nil {
			return err
		}

		stage = StagePersisting
		now := u.clock.Now()
		order = model.Order{
			UserID:       in.UserID,
			TotalAmount:  total,
			Status:       model.OrderStatusCreated,
			ReceiverInfo: addr.Snapshot(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.insertOrder(ctx, r, &order, log); err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		if err := recordOrderTransition(ctx, r.AuditLogs(), in.UserID, model.AuditActionCreateOrder, order, nil, order.Status, now); err != nil {
			return fmt.Errorf("audit order: %w", err)
		}

		stage = StageClearingCart
		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.ID)
		}
		if _, err := r.CartLines().DeleteByIDs(ctx, in.UserID, ids); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		// not re-read from storage
		order.Items = items
		return nil
	})
	if err != nil {
		ev := log.Warn()
		if !isClientError(err) {
			ev = log.Error()
		}
		ev.Err(err).
			Str("stage", string(StageAborted)).
			Str("failed_stage", string(stage)).
			Msg("checkout aborted")
		return OrderOutput{}, err
	}

	log.Info().
		Str("stage", string(StageDone)).
		Str("order_no", order.OrderNo).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Int("items", len(order.Items)).
		Msg("order created")

	publish(ctx, u.events, newOrderEvent(OrderEventCreated, order, order.CreatedAt))
	return toOrderOutput(order), nil
}

// insertOrder retries on an order number collision. Each attempt runs in a
// savepoint so the failed insert does not poison the outer transaction.
func (u *CheckoutUsecase) insertOrder(ctx context.Context, r repo.TxRepos, order *model.Order, log zerolog.Logger) error {
	for attempt := 1; attempt <= maxOrderNoAttempts; attempt++ {
		no, err := u.orderNo.Next(order.CreatedAt)
		if err != nil {
			return err
		}
		order.ID = 0
		order.OrderNo = no

		err = r.Savepoint(ctx, func(sp repo.TxRepos) error {
			return sp.Orders().Create(ctx, order)
		})
		if errors.Is(err, repo.ErrDuplicateKey) {
			log.Debug().Str("order_no", no).Int("attempt", attempt).Msg("order number taken, retrying")
			continue
		}
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: could not allocate a unique order number", ErrConflict)
}

func ownedAddress(ctx context.Context, addresses repo.AddressRepository, userID int64, addressID int64) (model.Address, error) {
	addr, err := addresses.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, notFoundf("address %d", addressID)
	}
	if err != nil {
		return model.Address{}, fmt.Errorf("load address: %w", err)
	}
	if addr.UserID != userID {
		return model.Address{}, validationf("address %d does not belong to the caller", addressID)
	}
	return addr, nil
}

func isClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized)
}
