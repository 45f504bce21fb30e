package qrcode

import (
	"billora-backend/entities"
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestQRRepository_SaveOverwrites(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.QRCode{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewQRRepository(db)
	ctx := context.Background()
	id := "HD-" + uuid.NewString()
	t.Cleanup(func() { db.Delete(&entities.QRCode{}, "invoice_id = ?", id) })

	first := &entities.QRCode{InvoiceID: id, Data: "first", Type: entities.QRTypeInvoiceLookup}
	require.NoError(t, repo.SaveQRCode(ctx, first))
	assert.False(t, first.GeneratedAt.IsZero())

	require.NoError(t, repo.SaveQRCode(ctx, &entities.QRCode{InvoiceID: id, Data: "second", Type: entities.QRTypeInvoiceLookup}))

	var rows []entities.QRCode
	require.NoError(t, db.Where("invoice_id = ?", id).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0].Data)
	assert.Equal(t, entities.QRTypeInvoiceLookup, rows[0].Type)
}

func TestQRFirestoreRepository_SaveOverwrites(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "billora-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	repo := NewQRFirestoreRepository(client)
	id := "HD-" + uuid.NewString()

	require.NoError(t, repo.SaveQRCode(ctx, &entities.QRCode{InvoiceID: id, Data: "first", Type: entities.QRTypeInvoiceLookup}))
	require.NoError(t, repo.SaveQRCode(ctx, &entities.QRCode{InvoiceID: id, Data: "second", Type: entities.QRTypeInvoiceLookup}))

	snap, err := client.Collection(qrCodesCollection).Doc(id).Get(ctx)
	require.NoError(t, err)

	var stored entities.QRCode
	require.NoError(t, snap.DataTo(&stored))
	assert.Equal(t, id, stored.InvoiceID)
	assert.Equal(t, "second", stored.Data)
	// A zero GeneratedAt is filled in by the server.
	assert.False(t, stored.GeneratedAt.IsZero())
}
