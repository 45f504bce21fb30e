package invoice

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB skips unless TEST_DATABASE_DSN points at a disposable Postgres database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Invoice{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestInvoiceRepository_StatusTransitions(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	id := "HD-" + uuid.NewString()
	require.NoError(t, db.Create(&entities.Invoice{
		ID:           id,
		CustomerName: "Toko Maju",
		Items:        []entities.LineItem{{Name: "Beras", Quantity: 2, Price: 75000}},
		Total:        150000,
		Tags:         []string{},
	}).Error)
	t.Cleanup(func() { db.Delete(&entities.Invoice{}, "id = ?", id) })

	invoice, err := repo.GetInvoiceByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Toko Maju", invoice.CustomerName)
	assert.Equal(t, entities.AIStatusNone, invoice.CurrentAIStatus())

	require.NoError(t, repo.MarkAIPending(ctx, id))
	invoice, err = repo.GetInvoiceByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.AIStatusPending, invoice.AIStatus)
	assert.NotNil(t, invoice.AIUpdatedAt)

	require.NoError(t, repo.MarkAIError(ctx, id, "AI analysis failed: boom"))
	invoice, err = repo.GetInvoiceByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.AIStatusError, invoice.AIStatus)
	assert.Equal(t, "AI analysis failed: boom", invoice.AIErrorReason)

	require.NoError(t, repo.MarkAIDone(ctx, id, "Groceries", "Retail", []string{"Food"}))
	invoice, err = repo.GetInvoiceByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.AIStatusDone, invoice.AIStatus)
	assert.Equal(t, "Groceries", invoice.AISummary)
	assert.Equal(t, "Retail", invoice.AIClassification)
	assert.Equal(t, []string{"Food"}, invoice.AISuggestedTags)
	assert.Empty(t, invoice.AIErrorReason)

	// Fields outside ai_* are left alone.
	assert.Equal(t, "Toko Maju", invoice.CustomerName)
	assert.Equal(t, 150000.0, invoice.Total)
}

func TestInvoiceRepository_NotFound(t *testing.T) {
	repo := NewInvoiceRepository(newTestDB(t))
	ctx := context.Background()
	missing := "missing-" + uuid.NewString()

	_, err := repo.GetInvoiceByID(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	assert.ErrorIs(t, repo.MarkAIPending(ctx, missing), domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.MarkAIDone(ctx, missing, "s", "c", nil), domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.MarkAIError(ctx, missing, "boom"), domain.ErrInvoiceNotFound)
}
