package qrcode

import (
	"billora-backend/entities"
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const qrCodesCollection = "qr_codes"

type (
	QRRepository interface {
		// SaveQRCode replaces the record stored for the same invoice.
		SaveQRCode(ctx context.Context, qr *entities.QRCode) error
	}

	qrRepository struct {
		db *gorm.DB
	}

	qrFirestoreRepository struct {
		client *firestore.Client
	}
)

func NewQRRepository(db *gorm.DB) QRRepository {
	return &qrRepository{db: db}
}

func (r *qrRepository) SaveQRCode(ctx context.Context, qr *entities.QRCode) error {
	if qr.GeneratedAt.IsZero() {
		qr.GeneratedAt = time.Now()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(qr).Error
}

func NewQRFirestoreRepository(client *firestore.Client) QRRepository {
	return &qrFirestoreRepository{client: client}
}

func (r *qrFirestoreRepository) SaveQRCode(ctx context.Context, qr *entities.QRCode) error {
	_, err := r.client.Collection(qrCodesCollection).Doc(qr.InvoiceID).Set(ctx, qr)
	return err
}
