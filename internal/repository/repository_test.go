package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/migrations"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	var scripts []string
	for _, name := range migrations.UpScripts() {
		scripts = append(scripts, "../migrations/"+name)
	}

	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(scripts...),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func createUser(t *testing.T, repos port.Repositories) domain.User {
	t.Helper()

	user, err := repos.Users.Create(t.Context(), domain.User{
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.Password(true, true, true, false, false, 20),
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	})
	require.NoError(t, err)

	return user
}

func createProduct(t *testing.T, repos port.Repositories, stock int) domain.Product {
	t.Helper()

	description := gofakeit.Sentence(6)
	product, err := repos.Products.Create(t.Context(), domain.NewProduct{
		Name:        gofakeit.ProductName(),
		Description: &description,
		Price:       randomPrice(),
		Stock:       stock,
	})
	require.NoError(t, err)

	return product
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   randomPrice(),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}
