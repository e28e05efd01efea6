package dataaccess

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockstream/internal/platform/config"
	"blockstream/internal/platform/database"
	"blockstream/internal/platform/ids"
	"blockstream/internal/platform/models"
	"blockstream/internal/platform/observability"
	"blockstream/internal/platform/repositories"
	"blockstream/internal/platform/repositories/memory"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type auditCall struct {
	action     string
	resourceID string
}

type recordingAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (r *recordingAudit) Log(_ context.Context, action, _, resourceID, _ string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, auditCall{action: action, resourceID: resourceID})
}

func newTestService(t *testing.T, opts ...Option) (*Service, repositories.Set) {
	t.Helper()
	repos, err := memory.NewSeeded()
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithWorkers(4)}, opts...)
	svc := NewService(repos, ids.UUID{}, opts...)
	t.Cleanup(svc.Close)
	return svc, repos
}

// failingWebhooks fails every call and counts them.
type failingWebhooks struct {
	calls int
	err   error
}

func (f *failingWebhooks) List(context.Context) ([]*models.WebhookConfig, error) {
	f.calls++
	return nil, f.err
}

func (f *failingWebhooks) GetByID(context.Context, string) (*models.WebhookConfig, error) {
	f.calls++
	return nil, f.err
}

func (f *failingWebhooks) Create(context.Context, *models.WebhookConfig) error {
	f.calls++
	return f.err
}

func (f *failingWebhooks) Update(context.Context, *models.WebhookConfig) error {
	f.calls++
	return f.err
}

func TestListWebhooksSeeded(t *testing.T) {
	svc, _ := newTestService(t)

	webhooks, err := svc.ListWebhooks(context.Background())
	require.NoError(t, err)
	require.Len(t, webhooks, 2)
	assert.Equal(t, "NFT Bids Webhook", webhooks[0].Name)
	assert.Equal(t, models.WebhookStatusInactive, webhooks[1].Status)
}

func TestCreateWebhook(t *testing.T) {
	audit := &recordingAudit{}
	svc, _ := newTestService(t, WithAudit(audit))
	ctx := context.Background()

	in := WebhookInput{
		Name:   "Sales",
		URL:    "not even a url",
		APIKey: "k",
		Events: []models.WebhookEventType{models.EventNFTSale, models.EventNFTBid, models.EventNFTSale},
		Status: models.WebhookStatusInactive,
	}

	first, err := svc.CreateWebhook(ctx, in)
	require.NoError(t, err)
	second, err := svc.CreateWebhook(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, models.WebhookStatusActive, first.Status)
	assert.True(t, strings.HasPrefix(first.ID, ids.PrefixWebhook))
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.Nil(t, first.LastTriggered)
	assert.Equal(t, []models.WebhookEventType{models.EventNFTSale, models.EventNFTBid}, first.Events)
	assert.True(t, first.HasEvent(models.EventNFTSale))
	assert.True(t, first.HasEvent(models.EventNFTBid))
	assert.False(t, first.HasEvent(models.EventTokenSwap))

	list, err := svc.ListWebhooks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, first.ID, list[2].ID)

	got, err := svc.GetWebhook(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	require.Len(t, audit.calls, 2)
	assert.Equal(t, "webhook.created", audit.calls[0].action)
	assert.Equal(t, first.ID, audit.calls[0].resourceID)
}

func TestCreateWebhookValidation(t *testing.T) {
	tests := []struct {
		name   string
		in     WebhookInput
		fields []string
	}{
		{
			name:   "no events",
			in:     WebhookInput{Name: "n", URL: "u", APIKey: "k"},
			fields: []string{"events"},
		},
		{
			name:   "blank fields",
			in:     WebhookInput{Name: " ", Events: []models.WebhookEventType{models.EventNFTBid}},
			fields: []string{"name", "url", "apiKey"},
		},
		{
			name:   "unknown event",
			in:     WebhookInput{Name: "n", URL: "u", APIKey: "k", Events: []models.WebhookEventType{"nft.burn"}},
			fields: []string{"events"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &failingWebhooks{err: errors.New("must not be called")}
			svc := NewService(repositories.Set{Webhooks: repo}, ids.UUID{})
			t.Cleanup(svc.Close)

			_, err := svc.CreateWebhook(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindValidation))
			for _, f := range tt.fields {
				assert.True(t, FieldErrors(err).Has(f), f)
			}
			assert.Zero(t, repo.calls)
		})
	}
}

func TestGetWebhookNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetWebhook(context.Background(), "wh_missing")
	assert.True(t, IsKind(err, KindNotFound))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBackendFailureIsUnavailable(t *testing.T) {
	repo := &failingWebhooks{err: errors.New("connection reset")}
	svc := NewService(repositories.Set{Webhooks: repo}, ids.UUID{})
	t.Cleanup(svc.Close)

	_, err := svc.ListWebhooks(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "ListWebhooks", e.Op)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCreateIndexingConfig(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	defaults, err := svc.CreateIndexingConfig(ctx, IndexingInput{Name: "Bids", Type: models.IndexingNFTBids})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(defaults.ID, ids.PrefixIndexing))
	assert.False(t, defaults.Enabled)
	assert.Equal(t, models.IndexingNFTBids.DefaultFilters(), defaults.Filters)
	assert.Equal(t, fixedNow, defaults.CreatedAt)

	custom := map[string]any{"anything": []any{"goes", float64(3)}}
	kept, err := svc.CreateIndexingConfig(ctx, IndexingInput{Name: "Lending", Type: models.IndexingTokenLending, Enabled: true, Filters: custom})
	require.NoError(t, err)
	assert.True(t, kept.Enabled)
	assert.Equal(t, custom, kept.Filters)

	listings, err := svc.CreateIndexingConfig(ctx, IndexingInput{Name: "Listings", Type: models.IndexingNFTListings})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, listings.Filters)

	_, err = svc.CreateIndexingConfig(ctx, IndexingInput{Name: "x", Type: "nft-sales"})
	assert.True(t, IsKind(err, KindValidation))

	all, err := svc.ListIndexingConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestCreateIndexingConfigFromText(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	in := IndexingInput{Name: "Prices", Type: models.IndexingTokenPricing, Enabled: true}

	_, err := svc.CreateIndexingConfigFromText(ctx, in, `{"tokens": [SOL]}`)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMalformed))

	_, err = svc.CreateIndexingConfigFromText(ctx, in, `["SOL"]`)
	assert.True(t, IsKind(err, KindMalformed))

	all, err := svc.ListIndexingConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cfg, err := svc.CreateIndexingConfigFromText(ctx, in, `{"tokens":["SOL"]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tokens": []any{"SOL"}}, cfg.Filters)

	cfg, err = svc.CreateIndexingConfigFromText(ctx, in, "  ")
	require.NoError(t, err)
	assert.Equal(t, models.IndexingTokenPricing.DefaultFilters(), cfg.Filters)
}

func TestToggleIndexingConfig(t *testing.T) {
	audit := &recordingAudit{}
	svc, _ := newTestService(t, WithAudit(audit))
	ctx := context.Background()

	cfg, err := svc.ToggleIndexingConfig(ctx, "1")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	cfg, err = svc.GetIndexingConfig(ctx, "1")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	cfg, err = svc.SetIndexingEnabled(ctx, "1", true)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)

	_, err = svc.ToggleIndexingConfig(ctx, "nope")
	assert.True(t, IsKind(err, KindNotFound))

	require.Len(t, audit.calls, 2)
	assert.Equal(t, "indexing.disabled", audit.calls[0].action)
	assert.Equal(t, "indexing.enabled", audit.calls[1].action)
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const toggles = 50
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ToggleIndexingConfig(ctx, "1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cfg, err := svc.GetIndexingConfig(ctx, "1")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled, "an even number of toggles restores the seeded state")
}

func TestConcurrentDatabaseUpdatesKeepEveryField(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	host, port := "replica.internal", 6543
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Host: &host})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Port: &port})
		assert.NoError(t, err)
	}()
	wg.Wait()

	cfg, err := svc.GetDatabaseConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, host, cfg.Host)
	assert.Equal(t, port, cfg.Port)
}

func TestUpdateDatabaseConfigMergesPort(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.GetDatabaseConfig(ctx)
	require.NoError(t, err)

	port := 5433
	after, err := svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Port: &port})
	require.NoError(t, err)

	want := before
	want.Port = 5433
	assert.Equal(t, want, after)

	stored, err := svc.GetDatabaseConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestUpdateDatabaseConfigRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	before, err := svc.GetDatabaseConfig(ctx)
	require.NoError(t, err)

	for _, port := range []int{0, 65536, -1} {
		p := port
		_, err := svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Port: &p})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
		assert.True(t, FieldErrors(err).Has("port"))
	}

	empty := ""
	_, err = svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Host: &empty})
	assert.True(t, IsKind(err, KindValidation))

	bad := models.DatabaseStatus("degraded")
	_, err = svc.UpdateDatabaseConfig(ctx, models.DatabaseConfigPatch{Status: &bad})
	assert.True(t, IsKind(err, KindValidation))

	after, err := svc.GetDatabaseConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveDatabaseConfig(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	host := "db.internal"
	_, err := svc.SaveDatabaseConfig(ctx, models.DatabaseConfigPatch{Host: &host})
	require.Error(t, err)
	fields := FieldErrors(err)
	for _, f := range []string{"port", "username", "password", "database"} {
		assert.True(t, fields.Has(f), f)
	}

	port, user, db, ssl := 6543, "admin", "analytics", false
	realPassword := "s3cret"
	require.NoError(t, repos.Database.Save(ctx, func() models.DatabaseConfig {
		c, _ := repos.Database.Get(ctx)
		c.Password = realPassword
		return c
	}()))

	mask := models.PasswordMask
	saved, err := svc.SaveDatabaseConfig(ctx, models.DatabaseConfigPatch{
		Host: &host, Port: &port, Username: &user, Password: &mask, Database: &db, SSL: &ssl,
	})
	require.NoError(t, err)
	assert.Equal(t, "db.internal", saved.Host)
	assert.Equal(t, 6543, saved.Port)
	assert.False(t, saved.SSL)
	assert.Equal(t, realPassword, saved.Password)
	assert.Equal(t, models.DatabaseConnected, saved.Status)
}

func TestTestDatabaseConnection(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.TestDatabaseConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "postgres.example.com:5432/blockstream_db", res.Target)

	empty := NewService(memory.NewSet(), ids.UUID{})
	t.Cleanup(empty.Close)
	_, err = empty.TestDatabaseConnection(context.Background())
	assert.True(t, IsKind(err, KindNotFound))
}

func TestMarketData(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	bids, err := svc.ListNFTBids(ctx)
	require.NoError(t, err)
	assert.Len(t, bids, 3)

	prices, err := svc.ListTokenPrices(ctx)
	require.NoError(t, err)
	assert.Len(t, prices, 3)

	status, err := svc.GetSystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(685412), status.Uptime)
}

func TestLoadDashboard(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.LoadDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Status.WebhooksActive)
	assert.Len(t, d.Webhooks, 2)
	assert.Len(t, d.Indexing, 2)
}

func TestLoadDashboardAllOrNothing(t *testing.T) {
	repos, err := memory.NewSeeded()
	require.NoError(t, err)
	repos.Webhooks = &failingWebhooks{err: errors.New("timeout")}

	svc := NewService(repos, ids.UUID{})
	t.Cleanup(svc.Close)

	d, err := svc.LoadDashboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Equal(t, Dashboard{}, d)
}

func TestLoadExplorer(t *testing.T) {
	svc, _ := newTestService(t)

	e, err := svc.LoadExplorer(context.Background())
	require.NoError(t, err)
	assert.Len(t, e.NFTBids, 3)
	assert.Len(t, e.TokenPrices, 3)
}

func TestOperationMetrics(t *testing.T) {
	m := observability.NewMetrics("test")
	svc, _ := newTestService(t, WithMetrics(m))
	ctx := context.Background()

	_, _ = svc.ListWebhooks(ctx)
	_, _ = svc.GetWebhook(ctx, "missing")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("ListWebhooks", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("GetWebhook", "error")))
}

func TestCreatedRecordsMatchSQLiteReads(t *testing.T) {
	db, err := database.Open(config.StorageConfig{SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))

	now := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	svc := NewService(repositories.NewSQLSet(db), ids.UUID{},
		WithClock(func() time.Time { return now }),
		WithWorkers(2),
	)
	t.Cleanup(svc.Close)

	webhook, err := svc.CreateWebhook(ctx, WebhookInput{
		Name:   "Bids",
		URL:    "https://hooks.example.com/bids",
		APIKey: "k",
		Events: []models.WebhookEventType{models.EventNFTBid},
	})
	require.NoError(t, err)
	assert.Equal(t, now.Truncate(time.Millisecond), webhook.CreatedAt)

	storedWebhook, err := svc.GetWebhook(ctx, webhook.ID)
	require.NoError(t, err)
	assert.Equal(t, webhook, storedWebhook)

	cfg, err := svc.CreateIndexingConfig(ctx, IndexingInput{Name: "Prices", Type: models.IndexingTokenPricing, Enabled: true})
	require.NoError(t, err)

	storedCfg, err := svc.GetIndexingConfig(ctx, cfg.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg, storedCfg)
}
