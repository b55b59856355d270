package usecase_test

import (
	"context"
	"testing"

	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/db/dbtest"
	infraRepo "github.com/SteampunkGill/Docker-final-assignment/internal/infra/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_FirstBecomesDefault(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	uc := usecase.NewAddressUsecase(infraRepo.NewAddressGormRepository(gdb))
	u := dbtest.SeedUser(t, gdb)

	in := usecase.CreateAddressInput{Name: " Hanako ", Phone: "080-1111-2222", Province: "Osaka", City: "Kita", Detail: "4-5-6"}
	first, err := uc.CreateAddress(ctx, u.ID, in)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "Hanako", first.Name)

	second, err := uc.CreateAddress(ctx, u.ID, in)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	list, err := uc.ListAddresses(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	others, err := uc.ListAddresses(ctx, dbtest.SeedUser(t, gdb).ID)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestAddress_RequiredFields(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	uc := usecase.NewAddressUsecase(infraRepo.NewAddressGormRepository(gdb))
	u := dbtest.SeedUser(t, gdb)

	full := usecase.CreateAddressInput{Name: "n", Phone: "p", Province: "pr", City: "c", Detail: "d"}
	blank := []func(*usecase.CreateAddressInput){
		func(in *usecase.CreateAddressInput) { in.Name = "" },
		func(in *usecase.CreateAddressInput) { in.Phone = " " },
		func(in *usecase.CreateAddressInput) { in.Province = "" },
		func(in *usecase.CreateAddressInput) { in.City = "" },
		func(in *usecase.CreateAddressInput) { in.Detail = "" },
	}
	for _, f := range blank {
		in := full
		f(&in)
		_, err := uc.CreateAddress(ctx, u.ID, in)
		assert.ErrorIs(t, err, usecase.ErrValidation)
	}

	_, err := uc.CreateAddress(ctx, 0, full)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}
