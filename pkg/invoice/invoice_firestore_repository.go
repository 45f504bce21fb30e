package invoice

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const invoicesCollection = "invoices"

type invoiceFirestoreRepository struct {
	client *firestore.Client
}

func NewInvoiceFirestoreRepository(client *firestore.Client) InvoiceRepository {
	return &invoiceFirestoreRepository{client: client}
}

func (r *invoiceFirestoreRepository) GetInvoiceByID(ctx context.Context, id string) (*entities.Invoice, error) {
	snap, err := r.client.Collection(invoicesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	var invoice entities.Invoice
	if err := snap.DataTo(&invoice); err != nil {
		return nil, err
	}
	if invoice.ID == "" {
		invoice.ID = snap.Ref.ID
	}
	return &invoice, nil
}

func (r *invoiceFirestoreRepository) MarkAIPending(ctx context.Context, id string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "ai_status", Value: entities.AIStatusPending},
		{Path: "ai_updated_at", Value: firestore.ServerTimestamp},
	})
}

func (r *invoiceFirestoreRepository) MarkAIDone(ctx context.Context, id string, summary string, classification string, tags []string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "ai_status", Value: entities.AIStatusDone},
		{Path: "ai_summary", Value: summary},
		{Path: "ai_classification", Value: classification},
		{Path: "ai_suggested_tags", Value: tags},
		{Path: "ai_updated_at", Value: firestore.ServerTimestamp},
		{Path: "ai_error_reason", Value: firestore.Delete},
	})
}

func (r *invoiceFirestoreRepository) MarkAIError(ctx context.Context, id string, reason string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "ai_status", Value: entities.AIStatusError},
		{Path: "ai_error_reason", Value: reason},
		{Path: "ai_updated_at", Value: firestore.ServerTimestamp},
	})
}

func (r *invoiceFirestoreRepository) update(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := r.client.Collection(invoicesCollection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrInvoiceNotFound
	}
	return err
}
