package usecase_test

import (
	"context"
	"errors"
	"testing"

	"recruitment-console/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthUsecase_Check(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	t.Run("no dependencies", func(t *testing.T) {
		assert.Equal(t, map[string]string{"status": "ok"}, usecase.NewHealthUsecase().Check(context.Background()))
	})

	t.Run("one dependency down", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(
			usecase.HealthCheck{Name: "redis", Check: ok},
			usecase.HealthCheck{Name: "clamav", Check: down},
		)
		assert.Equal(t, map[string]string{
			"status": "degraded",
			"redis":  "ok",
			"clamav": "down",
		}, uc.Check(context.Background()))
	})
}
