package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/db/dbtest"
	infraRepo "github.com/SteampunkGill/Docker-final-assignment/internal/infra/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutEnv struct {
	db      *gorm.DB
	uc      *usecase.CheckoutUsecase
	orderNo *scriptedOrderNo
	events  *PublisherMock
	user    model.User
	address model.Address
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()
	gdb := dbtest.Open(t)
	env := &checkoutEnv{
		db:      gdb,
		orderNo: &scriptedOrderNo{},
		events:  new(PublisherMock),
	}
	env.events.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	env.uc = usecase.NewCheckoutUsecase(infraRepo.NewTxManagerGorm(gdb), env.orderNo, newStepClock(), env.events)
	env.user = dbtest.SeedUser(t, gdb)
	env.address = dbtest.SeedAddress(t, gdb, env.user.ID)
	return env
}

func TestPlaceOrder_SingleLine(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	p := dbtest.SeedProduct(t, env.db, "pen", "9.99", 5)
	line := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 2)

	out, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		UserID:    env.user.ID,
		CartIDs:   []int64{line.ID},
		AddressID: env.address.ID,
	})
	require.NoError(t, err)

	assert.NotZero(t, out.ID)
	assert.Len(t, out.OrderNo, 20)
	assert.Equal(t, "19.98", out.TotalAmount.StringFixed(2))
	assert.Equal(t, model.OrderStatusCreated, out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "pen", out.Items[0].ProductName)
	assert.True(t, out.Items[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, int64(2), out.Items[0].Quantity)

	if diff := cmp.Diff(env.address.Snapshot(), out.ReceiverInfo); diff != "" {
		t.Errorf("receiver info (-want +got):\n%s", diff)
	}

	assert.Equal(t, int64(3), dbtest.Stock(t, env.db, p.ID))
	assert.Zero(t, dbtest.Count(t, env.db, &model.CartLine{}))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.Order{}))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.OrderItem{}))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.AuditLog{}))

	env.events.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(ev usecase.OrderEvent) bool {
		return ev.Type == usecase.OrderEventCreated && ev.OrderNo == out.OrderNo && ev.Status == "CREATED"
	}))
}

func TestPlaceOrder_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	dbtest.SeedProduct(t, env.db, "pen", "9.99", 5)
	lamp := dbtest.SeedProduct(t, env.db, "lamp", "30.00", 1)
	require.Equal(t, int64(2), lamp.ID)
	line := dbtest.SeedCartLine(t, env.db, env.user.ID, lamp.ID, 10)

	_, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		UserID:    env.user.ID,
		CartIDs:   []int64{line.ID},
		AddressID: env.address.ID,
	})
	require.ErrorIs(t, err, usecase.ErrInsufficientStock)
	assert.Equal(t, "insufficient stock: productId 2", err.Error())

	assert.Equal(t, int64(1), dbtest.Stock(t, env.db, lamp.ID))
	assert.Zero(t, dbtest.Count(t, env.db, &model.Order{}))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.CartLine{}))
	env.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrder_AllOrNothingAcrossLines(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	pen := dbtest.SeedProduct(t, env.db, "pen", "9.99", 5)
	mug := dbtest.SeedProduct(t, env.db, "mug", "4.50", 3)
	lamp := dbtest.SeedProduct(t, env.db, "lamp", "30.00", 1)
	l1 := dbtest.SeedCartLine(t, env.db, env.user.ID, pen.ID, 2)
	l2 := dbtest.SeedCartLine(t, env.db, env.user.ID, mug.ID, 3)
	l3 := dbtest.SeedCartLine(t, env.db, env.user.ID, lamp.ID, 2)

	_, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		UserID:    env.user.ID,
		CartIDs:   []int64{l1.ID, l2.ID, l3.ID},
		AddressID: env.address.ID,
	})
	require.ErrorIs(t, err, usecase.ErrInsufficientStock)

	// the first two decrements were rolled back
	assert.Equal(t, int64(5), dbtest.Stock(t, env.db, pen.ID))
	assert.Equal(t, int64(3), dbtest.Stock(t, env.db, mug.ID))
	assert.Equal(t, int64(1), dbtest.Stock(t, env.db, lamp.ID))
	assert.Zero(t, dbtest.Count(t, env.db, &model.Order{}))
	assert.Zero(t, dbtest.Count(t, env.db, &model.OrderItem{}))
	assert.Zero(t, dbtest.Count(t, env.db, &model.AuditLog{}))
	assert.Equal(t, int64(3), dbtest.Count(t, env.db, &model.CartLine{}))
}

func TestPlaceOrder_MultipleLinesTotal(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	pen := dbtest.SeedProduct(t, env.db, "pen", "9.99", 5)
	mug := dbtest.SeedProduct(t, env.db, "mug", "0.10", 10)
	l1 := dbtest.SeedCartLine(t, env.db, env.user.ID, pen.ID, 1)
	l2 := dbtest.SeedCartLine(t, env.db, env.user.ID, mug.ID, 3)
	keep := dbtest.SeedCartLine(t, env.db, env.user.ID, dbtest.SeedProduct(t, env.db, "cup", "1.00", 1).ID, 1)

	out, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		UserID:    env.user.ID,
		CartIDs:   []int64{l2.ID, l1.ID},
		AddressID: env.address.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.29", out.TotalAmount.StringFixed(2))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "mug", out.Items[0].ProductName)
	assert.Equal(t, "pen", out.Items[1].ProductName)

	// only the selected lines are consumed
	var left []model.CartLine
	require.NoError(t, env.db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	p := dbtest.SeedProduct(t, env.db, "pen", "9.99", 5)
	mine := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 1)

	stranger := dbtest.SeedUser(t, env.db)
	theirs := dbtest.SeedCartLine(t, env.db, stranger.ID, p.ID, 1)
	theirAddress := dbtest.SeedAddress(t, env.db, stranger.ID)

	cases := []struct {
		name string
		in   usecase.PlaceOrderInput
		want error
	}{
		{"no caller", usecase.PlaceOrderInput{CartIDs: []int64{mine.ID}, AddressID: env.address.ID}, usecase.ErrUnauthorized},
		{"empty cart ids", usecase.PlaceOrderInput{UserID: env.user.ID, AddressID: env.address.ID}, usecase.ErrValidation},
		{"missing address id", usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{mine.ID}}, usecase.ErrValidation},
		{"foreign cart line", usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{mine.ID, theirs.ID}, AddressID: env.address.ID}, usecase.ErrValidation},
		{"unknown cart line", usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{9999}, AddressID: env.address.ID}, usecase.ErrValidation},
		{"foreign address", usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{mine.ID}, AddressID: theirAddress.ID}, usecase.ErrValidation},
		{"unknown address", usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{mine.ID}, AddressID: 9999}, usecase.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.PlaceOrder(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, int64(5), dbtest.Stock(t, env.db, p.ID))
	assert.Zero(t, dbtest.Count(t, env.db, &model.Order{}))
	assert.Equal(t, int64(2), dbtest.Count(t, env.db, &model.CartLine{}))
}

func TestPlaceOrder_RetriesOrderNoCollision(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	p := dbtest.SeedProduct(t, env.db, "pen", "1.00", 5)

	first := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 1)
	env.orderNo.next = []string{"20240315100000000001"}
	out1, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{first.ID}, AddressID: env.address.ID})
	require.NoError(t, err)

	second := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 1)
	env.orderNo.next = []string{out1.OrderNo, out1.OrderNo, "20240315100000000002"}
	out2, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{second.ID}, AddressID: env.address.ID})
	require.NoError(t, err)
	assert.Equal(t, "20240315100000000002", out2.OrderNo)
	assert.Equal(t, int64(3), dbtest.Stock(t, env.db, p.ID))
}

func TestPlaceOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	p := dbtest.SeedProduct(t, env.db, "pen", "1.00", 5)

	first := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 1)
	env.orderNo.next = []string{"X"}
	_, err := env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{first.ID}, AddressID: env.address.ID})
	require.NoError(t, err)

	second := dbtest.SeedCartLine(t, env.db, env.user.ID, p.ID, 1)
	env.orderNo.next = []string{"X", "X", "X"}
	_, err = env.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{UserID: env.user.ID, CartIDs: []int64{second.ID}, AddressID: env.address.ID})
	require.ErrorIs(t, err, usecase.ErrConflict)

	assert.Equal(t, int64(4), dbtest.Stock(t, env.db, p.ID))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.Order{}))
	assert.Equal(t, int64(1), dbtest.Count(t, env.db, &model.CartLine{}))
}

func TestPlaceOrder_ConcurrentCheckoutsDoNotOversell(t *testing.T) {
	ctx := context.Background()
	env := newCheckoutEnv(t)
	p := dbtest.SeedProduct(t, env.db, "lamp", "30.00", 5)

	const buyers = 8
	inputs := make([]usecase.PlaceOrderInput, 0, buyers)
	for i := 0; i < buyers; i++ {
		u := dbtest.SeedUser(t, env.db)
		a := dbtest.SeedAddress(t, env.db, u.ID)
		l := dbtest.SeedCartLine(t, env.db, u.ID, p.ID, 2)
		inputs = append(inputs, usecase.PlaceOrderInput{UserID: u.ID, CartIDs: []int64{l.ID}, AddressID: a.ID})
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		outOfStk int
	)
	for _, in := range inputs {
		wg.Add(1)
		go func(in usecase.PlaceOrderInput) {
			defer wg.Done()
			_, err := env.uc.PlaceOrder(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, usecase.ErrInsufficientStock):
				outOfStk++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(in)
	}
	wg.Wait()

	assert.Equal(t, 2, ok)
	assert.Equal(t, buyers-2, outOfStk)
	assert.Equal(t, int64(1), dbtest.Stock(t, env.db, p.ID))
	assert.Equal(t, int64(2), dbtest.Count(t, env.db, &model.Order{}))
}

func TestPlaceOrder_TransactionErrorIsReturned(t *testing.T) {
	txm := new(TxManagerMock)
	events := new(PublisherMock)
	boom := errors.New("could not begin")
	txm.On("WithinTx", mock.Anything).Return(boom).Once()

	uc := usecase.NewCheckoutUsecase(txm, usecase.TimestampOrderNo{}, usecase.SystemClock{}, events)
	_, err := uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{UserID: 1, CartIDs: []int64{1}, AddressID: 1})

	assert.ErrorIs(t, err, boom)
	txm.AssertExpectations(t)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	events := new(PublisherMock)
	events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	uc := usecase.NewCheckoutUsecase(infraRepo.NewTxManagerGorm(gdb), usecase.TimestampOrderNo{}, newStepClock(), events)

	u := dbtest.SeedUser(t, gdb)
	a := dbtest.SeedAddress(t, gdb, u.ID)
	p := dbtest.SeedProduct(t, gdb, "pen", "2.00", 1)
	l := dbtest.SeedCartLine(t, gdb, u.ID, p.ID, 1)

	out, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{UserID: u.ID, CartIDs: []int64{l.ID}, AddressID: a.ID})
	require.NoError(t, err)
	assert.Regexp(t, `^20240315100\d{3}\d{6}$`, out.OrderNo)
	events.AssertExpectations(t)
}
