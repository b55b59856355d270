package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SteampunkGill/Docker-final-assignment/internal/config"
	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/handler"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/db/dbtest"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/event"
	infraRepo "github.com/SteampunkGill/Docker-final-assignment/internal/infra/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/token"
	"github.com/SteampunkGill/Docker-final-assignment/internal/server"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"
	auth "github.com/SteampunkGill/Docker-final-assignment/internal/usecase/auth_usecase"
	"github.com/SteampunkGill/Docker-final-assignment/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testApp struct {
	e      *echo.Echo
	db     *gorm.DB
	issuer *token.JWTIssuer
}

// newTestApp wires the real router against a fresh sqlite database.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gdb := dbtest.Open(t)
	cfg := config.Config{JWTSecret: testSecret, JWTTTL: time.Hour}
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)

	users := infraRepo.NewUserGormRepository(gdb)
	products := infraRepo.NewProductGormRepository(gdb)
	lines := infraRepo.NewCartLineGormRepository(gdb)
	addresses := infraRepo.NewAddressGormRepository(gdb)
	orders := infraRepo.NewOrderGormRepository(gdb)
	items := infraRepo.NewOrderItemGormRepository(gdb)
	tm := infraRepo.NewTxManagerGorm(gdb)
	clock := usecase.SystemClock{}
	events := event.NopPublisher{}

	h := server.Handlers{
		Auth: handler.NewAuthHandler(
			auth.NewRegisterUserUsecase(users, validator.NewAuthValidator(users), auth.NewBcryptPasswordHasher(4)),
			auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), issuer, clock),
			auth.NewGetProfileUsecase(users),
		),
		Product: handler.NewProductHandler(usecase.NewProductUsecase(products)),
		Cart:    handler.NewCartHandler(usecase.NewCartUsecase(lines, products)),
		Address: handler.NewAddressHandler(usecase.NewAddressUsecase(addresses)),
		Order: handler.NewOrderHandler(
			usecase.NewCheckoutUsecase(tm, usecase.TimestampOrderNo{}, clock, events),
			usecase.NewOrderUsecase(tm, orders, items, clock, events),
		),
	}

	return &testApp{
		e:      server.New(cfg, zerolog.Nop(), h),
		db:     gdb,
		issuer: issuer,
	}
}

// bearer returns an access token for u.
func (a *testApp) bearer(t *testing.T, u model.User) string {
	t.Helper()
	s, _, err := a.issuer.Issue(u.ID, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return s
}

func (a *testApp) do(t *testing.T, method string, path string, bearer string, body interface{}) (*httptest.ResponseRecorder, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec, rec.Body.Bytes()
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int, body []byte) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, want, string(body))
	}
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(%T) failed: %v body=%s", v, err, string(body))
	}
	return v
}

type orderItemDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

type orderDTO struct {
	ID           int64              `json:"id"`
	OrderNo      string             `json:"order_no"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       int                `json:"status"`
	StatusText   string             `json:"status_text"`
	ReceiverInfo model.ReceiverInfo `json:"receiver_info"`
	PaymentTime  *time.Time         `json:"payment_time"`
	Items        []orderItemDTO     `json:"items"`
}

type orderListDTO struct {
	Items []orderDTO `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}
