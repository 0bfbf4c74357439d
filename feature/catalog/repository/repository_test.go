package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"catalog-sync/core/server"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/normalize"
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

func strPtr(s string) *string { return &s }

func canonicalFixture(code string) *normalize.Canonical {
	return &normalize.Canonical{
		Product: models.Product{
			Source:      server.SupplierMidocean,
			Name:        "Arusha Notebook",
			ProductCode: strPtr(code),
			ExternalID:  strPtr("ext-" + code),
		},
		Variants: []models.ProductVariant{
			{VariantID: "10001449", SKU: strPtr(code + "-03")},
			{VariantID: "10001450", SKU: strPtr(code + "-04")},
		},
		Assets: []normalize.Asset{
			{SourceVariantID: "10001449", URL: "https://cdn.example.com/front.jpg"},
			{SourceVariantID: "", URL: "https://cdn.example.com/declaration.pdf"},
		},
	}
}

func TestRepository_Persist_CreateThenUpdate(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := canonicalFixture("AR1249")
	created, err := repo.Persist(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := c.Product.ID
	require.NotEmpty(t, firstID)

	// Re-ingest the same record with a changed name: same row, updated fields.
	c2 := canonicalFixture("AR1249")
	c2.Product.Name = "Arusha Notebook A5"
	created, err = repo.Persist(ctx, c2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, c2.Product.ID)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := repo.Get(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "Arusha Notebook A5", stored.Name)
}

func TestRepository_Persist_MatchesByProductCodeWithoutExternalID(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := &normalize.Canonical{
		Product: models.Product{
			Source:      server.SupplierXDConnects,
			Name:        "Bottle",
			ProductCode: strPtr("P705.229"),
		},
	}
	created, err := repo.Persist(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)

	c2 := &normalize.Canonical{
		Product: models.Product{
			Source:      server.SupplierXDConnects,
			Name:        "Bottle 600ml",
			ProductCode: strPtr("P705.229"),
		},
	}
	created, err = repo.Persist(ctx, c2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c.Product.ID, c2.Product.ID)
}

func TestRepository_Persist_SourcesNeverMerge(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	a := &normalize.Canonical{Product: models.Product{
		Source: server.SupplierMidocean, Name: "A", ProductCode: strPtr("SAME-CODE"),
	}}
	b := &normalize.Canonical{Product: models.Product{
		Source: server.SupplierXDConnects, Name: "B", ProductCode: strPtr("SAME-CODE"),
	}}

	_, err := repo.Persist(ctx, a)
	require.NoError(t, err)
	created, err := repo.Persist(ctx, b)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a.Product.ID, b.Product.ID)
}

func TestRepository_Persist_ReplacesChildren(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := canonicalFixture("AR1249")
	_, err := repo.Persist(ctx, c)
	require.NoError(t, err)

	// The next feed run carries one variant instead of two.
	c2 := canonicalFixture("AR1249")
	c2.Variants = c2.Variants[:1]
	c2.Assets = []normalize.Asset{
		{SourceVariantID: "10001449", URL: "https://cdn.example.com/front-v2.jpg"},
	}
	_, err = repo.Persist(ctx, c2)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, c.Product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Variants, 1)
	assert.Equal(t, "10001449", stored.Variants[0].VariantID)
	require.Len(t, stored.Assets, 1)
	assert.Equal(t, "https://cdn.example.com/front-v2.jpg", stored.Assets[0].URL)
	require.NotNil(t, stored.Assets[0].VariantID)
	assert.Equal(t, stored.Variants[0].ID, *stored.Assets[0].VariantID)
}

func TestRepository_Persist_ChildEdgeCases(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := canonicalFixture("AR1249")
	// A variant without a supplier id is skipped; its asset becomes an orphan
	// attached at product level. URL-less assets are dropped.
	c.Variants = append(c.Variants, models.ProductVariant{SKU: strPtr("AR1249-05")})
	c.Assets = append(c.Assets,
		normalize.Asset{SourceVariantID: "99999999", URL: "https://cdn.example.com/orphan.jpg"},
		normalize.Asset{SourceVariantID: "10001449", URL: ""},
	)

	_, err := repo.Persist(ctx, c)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, c.Product.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Variants, 2)
	require.Len(t, stored.Assets, 3)

	var orphan *models.DigitalAsset
	for i := range stored.Assets {
		if stored.Assets[i].URL == "https://cdn.example.com/orphan.jpg" {
			orphan = &stored.Assets[i]
		}
	}
	require.NotNil(t, orphan)
	assert.Nil(t, orphan.VariantID)
}

func TestRepository_List(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	for _, code := range []string{"AR1249", "AR1250", "AR1251"} {
		_, err := repo.Persist(ctx, canonicalFixture(code))
		require.NoError(t, err)
	}
	_, err := repo.Persist(ctx, &normalize.Canonical{Product: models.Product{
		Source: server.SupplierXDConnects, Name: "Bottle", ProductCode: strPtr("P705.229"),
	}})
	require.NoError(t, err)

	all, total, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, all, 4)

	midocean, total, err := repo.List(ctx, ListFilter{Source: server.SupplierMidocean})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, midocean, 3)

	page, total, err := repo.List(ctx, ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, page, 2)
}

func TestRepository_Get_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())

	_, err := repo.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_PersistMatchesWhatFindExistingReports(t *testing.T) {
	// Persist resolves identity through the same lookup FindExisting exposes,
	// so a record carrying only its secondary key still lands on the row the
	// resolver reports.
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := canonicalFixture("AR1249")
	_, err := repo.Persist(ctx, c)
	require.NoError(t, err)

	resolved, err := repo.FindExisting(ctx, server.SupplierMidocean, nil, strPtr("AR1249"))
	require.NoError(t, err)
	require.NotNil(t, resolved)

	c2 := canonicalFixture("AR1249")
	c2.Product.ExternalID = nil
	created, err := repo.Persist(ctx, c2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, resolved.ID, c2.Product.ID)
}

func TestRepository_FindExisting(t *testing.T) {
	db := setupDB(t)
	repo := New(db, zap.NewNop())
	ctx := context.Background()

	c := canonicalFixture("AR1249")
	_, err := repo.Persist(ctx, c)
	require.NoError(t, err)

	t.Run("By external id", func(t *testing.T) {
		p, err := repo.FindExisting(ctx, server.SupplierMidocean, strPtr("ext-AR1249"), nil)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, c.Product.ID, p.ID)
	})

	t.Run("By product code when external id misses", func(t *testing.T) {
		p, err := repo.FindExisting(ctx, server.SupplierMidocean, strPtr("no-such-ext"), strPtr("AR1249"))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, c.Product.ID, p.ID)
	})

	t.Run("Miss is nil, not an error", func(t *testing.T) {
		p, err := repo.FindExisting(ctx, server.SupplierMidocean, nil, strPtr("nope"))
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
