package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/credsure/admin-api/internal/domain"
	"github.com/credsure/admin-api/internal/repository"
)

func newConfigFixture(t *testing.T) (*FinanceConfigService, *stubActivityRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	activityRepo := &stubActivityRepo{}
	svc := NewFinanceConfigService(
		repository.NewFinanceConfigStore(client),
		NewActivityService(activityRepo, zap.NewNop()),
	)
	return svc, activityRepo
}

func TestUpdateInterestRateRounds(t *testing.T) {
	svc, activityRepo := newConfigFixture(t)
	actor := testActor()

	rate, err := svc.UpdateInterestRate(context.Background(), actor, 7.256)
	require.NoError(t, err)
	assert.Equal(t, 7.26, rate.AnnualRatePct)
	assert.Contains(t, activityRepo.actions(), "UPDATE_INTEREST_RATE")

	cfg, err := svc.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.26, cfg.InterestRate.AnnualRatePct)
}

func TestTenureLifecycle(t *testing.T) {
	svc, _ := newConfigFixture(t)
	actor := testActor()
	ctx := context.Background()

	tenures, err := svc.AddTenure(ctx, actor, 18)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 18, 24, 36, 48, 60}, tenures)

	_, err = svc.AddTenure(ctx, actor, 18)
	assertErrorCode(t, err, "BAD_REQUEST")

	tenures, err = svc.UpdateTenure(ctx, actor, 18, 20)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 20, 24, 36, 48, 60}, tenures)

	_, err = svc.UpdateTenure(ctx, actor, 20, 24)
	assertErrorCode(t, err, "BAD_REQUEST")

	_, err = svc.UpdateTenure(ctx, actor, 99, 100)
	assertErrorCode(t, err, "NOT_FOUND")

	tenures, err = svc.DeleteTenure(ctx, actor, 20)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 24, 36, 48, 60}, tenures)

	_, err = svc.DeleteTenure(ctx, actor, 20)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestContentDraftAndPublish(t *testing.T) {
	svc, activityRepo := newConfigFixture(t)
	actor := testActor()
	ctx := context.Background()

	draft, err := svc.SaveContentDraft(ctx, actor, "New offer", "Body text", "Terms apply")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	// drafts are invisible to the public surface
	_, err = svc.PublishedContent(ctx)
	assertErrorCode(t, err, "NOT_FOUND")

	published, err := svc.PublishContent(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, domain.ContentPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	visible, err := svc.PublishedContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New offer", visible.Title)

	assert.Contains(t, activityRepo.actions(), "SAVE_FINANCIAL_CONTENT_DRAFT")
	assert.Contains(t, activityRepo.actions(), "PUBLISH_FINANCIAL_CONTENT")
}

func TestUpdateCalculator(t *testing.T) {
	svc, _ := newConfigFixture(t)

	calc, err := svc.UpdateCalculator(context.Background(), testActor(), 25, 3, 120000)
	require.NoError(t, err)
	assert.Equal(t, 25.0, calc.DownPaymentPct)

	cfg, err := svc.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120000.0, cfg.Calculator.InsuranceCost)
}
