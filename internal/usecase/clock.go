package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// OrderNoGenerator produces human readable order numbers.
type OrderNoGenerator interface {
	Next(now time.Time) (string, error)
}

// TimestampOrderNo is yyyyMMddHHmmss followed by 6 random digits.
// Uniqueness is enforced by the unique index on orders.order_no.
type TimestampOrderNo struct{}

var orderNoSuffixMax = big.NewInt(1_000_000)

func (TimestampOrderNo) Next(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, orderNoSuffixMax)
	if err != nil {
		return "", fmt.Errorf("order no: %w", err)
	}
	return fmt.Sprintf("%s%06d", now.Format("20060102150405"), n.Int64()), nil
}
