package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	repo "github.com/SteampunkGill/Docker-final-assignment/internal/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// repository mocks
// =====================

type CartLineRepoMock struct {
	mock.Mock
}

func (m *CartLineRepoMock) ListByIDs(ctx context.Context, ids []int64) ([]model.CartLine, error) {
	args := m.Called(ctx, ids)
	v, _ := args.Get(0).([]model.CartLine)
	return v, args.Error(1)
}
func (m *CartLineRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	panic("not used in this test")
}
func (m *CartLineRepoMock) FindByID(ctx context.Context, id int64) (model.CartLine, error) {
	panic("not used in this test")
}
func (m *CartLineRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartLine, error) {
	panic("not used in this test")
}
func (m *CartLineRepoMock) Create(ctx context.Context, line *model.CartLine) error {
	panic("not used in this test")
}
func (m *CartLineRepoMock) UpdateQuantity(ctx context.Context, id int64, qty int64) error {
	panic("not used in this test")
}
func (m *CartLineRepoMock) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

type InventoryRepoMock struct {
	mock.Mock
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}
func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}
func (m *InventoryRepoMock) GetStock(ctx context.Context, productID int64) (int64, error) {
	panic("not used in this test")
}

type ProductRepoMock struct {
	mock.Mock
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}
func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	panic("not used in this test")
}

// =====================
// TxManager mock
// =====================

type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Repos)
}

// =====================
// collaborators
// =====================

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, ev usecase.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// stepClock moves forward one second per call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// scriptedOrderNo hands out the given numbers in order, then unique ones.
type scriptedOrderNo struct {
	mu   sync.Mutex
	next []string
	n    int
}

func (g *scriptedOrderNo) Next(now time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.next) > 0 {
		no := g.next[0]
		g.next = g.next[1:]
		return no, nil
	}
	g.n++
	return fmt.Sprintf("%s%06d", now.Format("20060102150405"), g.n), nil
}
