package invoice

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	// InvoiceRepository only writes the ai_* fields; invoices are owned by the client app.
	InvoiceRepository interface {
		GetInvoiceByID(ctx context.Context, id string) (*entities.Invoice, error)
		MarkAIPending(ctx context.Context, id string) error
		MarkAIDone(ctx context.Context, id string, summary string, classification string, tags []string) error
		MarkAIError(ctx context.Context, id string, reason string) error
	}

	invoiceRepository struct {
		db *gorm.DB
	}
)

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*entities.Invoice, error) {
	var invoice entities.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) MarkAIPending(ctx context.Context, id string) error {
	now := time.Now()
	return r.update(ctx, id, &entities.Invoice{
		AIStatus:    entities.AIStatusPending,
		AIUpdatedAt: &now,
	}, "ai_status", "ai_updated_at")
}

func (r *invoiceRepository) MarkAIDone(ctx context.Context, id string, summary string, classification string, tags []string) error {
	now := time.Now()
	return r.update(ctx, id, &entities.Invoice{
		AIStatus:         entities.AIStatusDone,
		AISummary:        summary,
		AIClassification: classification,
		AISuggestedTags:  tags,
		AIUpdatedAt:      &now,
	}, "ai_status", "ai_summary", "ai_classification", "ai_suggested_tags", "ai_updated_at", "ai_error_reason")
}

func (r *invoiceRepository) MarkAIError(ctx context.Context, id string, reason string) error {
	now := time.Now()
	return r.update(ctx, id, &entities.Invoice{
		AIStatus:      entities.AIStatusError,
		AIErrorReason: reason,
		AIUpdatedAt:   &now,
	}, "ai_status", "ai_error_reason", "ai_updated_at")
}

// update writes only the selected columns, zero values included.
func (r *invoiceRepository) update(ctx context.Context, id string, values *entities.Invoice, columns ...string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Invoice{}).
		Where("id = ?", id).
		Select(columns).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
