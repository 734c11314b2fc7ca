package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/repository"
	"github.com/credsure/admin-api/internal/service"
)

type noopActivityRepo struct{}

func (noopActivityRepo) Insert(context.Context, *domain.ActivityLog) error { return nil }
func (noopActivityRepo) List(context.Context, int) ([]*domain.ActivityLog, error) {
	return nil, nil
}

func newPublicConfigFixture(t *testing.T) (*fiber.App, *repository.FinanceConfigStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewFinanceConfigStore(client)
	configService := service.NewFinanceConfigService(store,
		service.NewActivityService(noopActivityRepo{}, zap.NewNop()))

	app := newHandlerTestApp()
	handler := NewPublicHandler(nil, configService, nil)
	app.Get("/public/finance-config", handler.FinanceConfig)
	return app, store, mr
}

func TestPublicFinanceConfigIncludesPublishedContent(t *testing.T) {
	app, _, _ := newPublicConfigFixture(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/finance-config", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data, "interestRate")
	assert.Contains(t, body.Data, "loanTenuresInMonths")
	assert.Contains(t, body.Data, "calculator")
	require.Contains(t, body.Data, "content")

	var content domain.FinancialContent
	require.NoError(t, json.Unmarshal(body.Data["content"], &content))
	assert.Equal(t, domain.ContentPublished, content.Status)
}

func TestPublicFinanceConfigOmitsDraftContent(t *testing.T) {
	app, store, _ := newPublicConfigFixture(t)
	require.NoError(t, store.SetContent(context.Background(), domain.FinancialContent{
		Title:     "Festive rates",
		Body:      "Not ready yet.",
		Status:    domain.ContentDraft,
		UpdatedAt: time.Now().UTC(),
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/finance-config", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data, "interestRate")
	assert.NotContains(t, body.Data, "content")
}

// A failing store must surface as an error response, never as a config
// payload with the content silently missing.
func TestPublicFinanceConfigSurfacesStoreFailure(t *testing.T) {
	app, _, mr := newPublicConfigFixture(t)
	mr.SetError("redis is down")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/finance-config", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}
