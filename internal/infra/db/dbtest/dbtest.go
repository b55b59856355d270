// Package dbtest opens throwaway sqlite databases and seeds rows for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/SteampunkGill/Docker-final-assignment/internal/domain/model"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated database in the test's temp dir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func SeedUser(t testing.TB, gdb *gorm.DB) model.User {
	t.Helper()
	u := model.User{
		Username: fmt.Sprintf("user_%d", seq.Add(1)),
		Password: "x",
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func SeedProduct(t testing.TB, gdb *gorm.DB, name string, price string, stock int64) model.Product {
	t.Helper()
	p := model.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		ImageURL: "https://img.example.com/" + name + ".png",
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func SeedAddress(t testing.TB, gdb *gorm.DB, userID int64) model.Address {
	t.Helper()
	a := model.Address{
		UserID:   userID,
		Name:     "Taro",
		Phone:    "090-0000-0000",
		Province: "Tokyo",
		City:     "Shibuya",
		Detail:   "1-2-3",
	}
	require.NoError(t, gdb.Create(&a).Error)
	return a
}

func SeedCartLine(t testing.TB, gdb *gorm.DB, userID int64, productID int64, qty int64) model.CartLine {
	t.Helper()
	l := model.CartLine{UserID: userID, ProductID: productID, Quantity: qty}
	require.NoError(t, gdb.Create(&l).Error)
	return l
}

func Stock(t testing.TB, gdb *gorm.DB, productID int64) int64 {
	t.Helper()
	var p model.Product
	require.NoError(t, gdb.Select("stock").Where("id = ?", productID).First(&p).Error)
	return p.Stock
}

// Count returns the number of rows in the table of m.
func Count(t testing.TB, gdb *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(m).Count(&n).Error)
	return n
}
