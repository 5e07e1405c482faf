package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colorstock/internal/infrastructure/postgres"
	"github.com/jhoicas/colorstock/pkg/config"
)

func TestNewPool_DSNInvalido(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.DBConfig
	}{
		{name: "DATABASE_URL", cfg: config.DBConfig{DatabaseURL: "postgres://u@localhost:5432/db?sslmode=bogus"}},
		{name: "campos sueltos", cfg: config.DBConfig{Host: "localhost", Port: 5432, User: "u", DBName: "db", SSLMode: "bogus"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool, err := postgres.NewPool(context.Background(), tc.cfg)
			require.Error(t, err)
			assert.Nil(t, pool)
			assert.Contains(t, err.Error(), "parse DSN")
		})
	}
}
