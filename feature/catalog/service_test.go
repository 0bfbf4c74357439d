package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"catalog-sync/core/server"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func feedServers(t *testing.T) feed.Config {
	t.Helper()

	midocean := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"master_code":  "AR1249",
				"master_id":    "40001449",
				"product_name": "Arusha Notebook",
				"variants": []map[string]any{
					{"variant_id": "10001449", "sku": "AR1249-03", "digital_assets": []map[string]any{
						{"url": "https://cdn.example.com/front.jpg", "type": "image", "subtype": "item_picture_front"},
					}},
				},
			},
			{"master_code": "KC5083", "product_name": "Colours Mug"},
		})
	}))
	t.Cleanup(midocean.Close)

	xd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"ItemCode": "P705.229", "ItemName": "Impact AWARE bottle", "MainImage": "https://xd.example.com/b.jpg"},
		})
	}))
	t.Cleanup(xd.Close)

	return feed.Config{
		Midocean:   feed.MidoceanConfig{BaseURL: midocean.URL, ApiKey: "test-key"},
		XDConnects: feed.XDConnectsConfig{ProductFeedURL: xd.URL},
	}
}

func TestService_Sync(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, feedServers(t), zap.NewNop())

	report, err := svc.Sync(context.Background(), nil, 0)
	require.NoError(t, err)
	require.Len(t, report.Suppliers, 2)
	assert.Equal(t, 3, report.Saved())

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// Second run updates in place instead of duplicating.
	report, err = svc.Sync(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Saved())
	for _, s := range report.Suppliers {
		assert.Equal(t, 0, s.Created)
	}
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestService_Sync_SingleSupplier(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, feedServers(t), zap.NewNop())

	report, err := svc.Sync(context.Background(), []string{server.SupplierXDConnects}, 0)
	require.NoError(t, err)
	require.Len(t, report.Suppliers, 1)
	assert.Equal(t, server.SupplierXDConnects, report.Suppliers[0].Supplier)
	assert.Equal(t, 1, report.Saved())
}

func TestService_Sync_KeylessXDRecordNeverDuplicates(t *testing.T) {
	db := setupDB(t)

	xd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"ItemName": "Mystery bottle"},
			{"ItemCode": "P705.229", "ItemName": "Impact AWARE bottle"},
		})
	}))
	t.Cleanup(xd.Close)

	svc := NewService(db, feed.Config{
		XDConnects: feed.XDConnectsConfig{ProductFeedURL: xd.URL},
	}, zap.NewNop())

	// Two full runs: the record without an ItemCode has no identity key, so
	// it must be skipped both times instead of inserting a new row per run.
	for i := 0; i < 2; i++ {
		report, err := svc.Sync(context.Background(), []string{server.SupplierXDConnects}, 0)
		require.NoError(t, err)

		rep := report.Suppliers[0]
		assert.Equal(t, 2, rep.Fetched)
		assert.Equal(t, 1, rep.Saved)
		assert.Equal(t, 1, rep.Skipped)
		assert.Equal(t, 0, rep.Errored)
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).
		Where("source = ?", server.SupplierXDConnects).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestService_Sync_UnknownSupplier(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, feedServers(t), zap.NewNop())

	_, err := svc.Sync(context.Background(), []string{"aliexpress"}, 0)
	assert.ErrorContains(t, err, "unknown supplier")
}

func TestService_StartImport(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, feedServers(t), zap.NewNop())

	handle := svc.StartImport(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := handle.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Saved())
	assert.NotNil(t, handle.Report())
}

func TestService_ListProducts_RejectsUnknownSource(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, feedServers(t), zap.NewNop())

	_, _, err := svc.ListProducts(context.Background(), repository.ListFilter{Source: "aliexpress"})
	assert.ErrorContains(t, err, "unknown supplier")
}

func setupApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()

	db := setupDB(t)
	f := NewFeature(db, feedServers(t), zap.NewNop())

	app := fiber.New()
	require.NoError(t, f.Load(app))
	return app, f.Service()
}

func TestHandler_Sync(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/catalog/sync", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Suppliers []struct {
			Supplier string `json:"supplier"`
			Saved    int    `json:"saved"`
		} `json:"suppliers"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &report))
	require.Len(t, report.Suppliers, 2)
}

func TestHandler_Sync_UnknownSupplier(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/catalog/sync",
		strings.NewReader(`{"suppliers": ["aliexpress"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Products(t *testing.T) {
	app, svc := setupApp(t)

	_, err := svc.Sync(context.Background(), nil, 0)
	require.NoError(t, err)

	t.Run("List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/products?source=midocean", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Total    int              `json:"total"`
			Products []models.Product `json:"products"`
		}
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &page))
		assert.Equal(t, 2, page.Total)
		require.NotEmpty(t, page.Products)
	})

	t.Run("Get by id", func(t *testing.T) {
		products, _, err := svc.ListProducts(context.Background(), repository.ListFilter{Source: "midocean"})
		require.NoError(t, err)
		require.NotEmpty(t, products)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/products/"+products[0].ID, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown id is 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/products/no-such-id", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
