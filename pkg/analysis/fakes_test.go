package analysis

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"billora-backend/pkg/ai"
	"context"
	"sync"
)

type invoiceCall struct {
	Method string
	ID     string
}

type fakeInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[string]*entities.Invoice
	calls    []invoiceCall
	failOn   map[string]error
}

func newFakeInvoiceRepository(invoices ...*entities.Invoice) *fakeInvoiceRepository {
	repo := &fakeInvoiceRepository{
		invoices: map[string]*entities.Invoice{},
		failOn:   map[string]error{},
	}
	for _, inv := range invoices {
		repo.invoices[inv.ID] = inv
	}
	return repo
}

func (r *fakeInvoiceRepository) record(method, id string) (*entities.Invoice, error) {
	r.calls = append(r.calls, invoiceCall{Method: method, ID: id})
	if err := r.failOn[method]; err != nil {
		return nil, err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepository) GetInvoiceByID(_ context.Context, id string) (*entities.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, err := r.record("GetInvoiceByID", id)
	if err != nil {
		return nil, err
	}
	clone := *inv
	return &clone, nil
}

func (r *fakeInvoiceRepository) MarkAIPending(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, err := r.record("MarkAIPending", id)
	if err != nil {
		return err
	}
	inv.AIStatus = entities.AIStatusPending
	return nil
}

func (r *fakeInvoiceRepository) MarkAIDone(_ context.Context, id string, summary string, classification string, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, err := r.record("MarkAIDone", id)
	if err != nil {
		return err
	}
	inv.AIStatus = entities.AIStatusDone
	inv.AISummary = summary
	inv.AIClassification = classification
	inv.AISuggestedTags = tags
	inv.AIErrorReason = ""
	return nil
}

func (r *fakeInvoiceRepository) MarkAIError(_ context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, err := r.record("MarkAIError", id)
	if err != nil {
		return err
	}
	inv.AIStatus = entities.AIStatusError
	inv.AIErrorReason = reason
	return nil
}

func (r *fakeInvoiceRepository) get(id string) entities.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.invoices[id]
}

func (r *fakeInvoiceRepository) methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	methods := make([]string, 0, len(r.calls))
	for _, call := range r.calls {
		methods = append(methods, call.Method)
	}
	return methods
}

type fakeAnalysisRepository struct {
	mu       sync.Mutex
	analyses map[string]*entities.AIAnalysis
	err      error
}

func newFakeAnalysisRepository() *fakeAnalysisRepository {
	return &fakeAnalysisRepository{analyses: map[string]*entities.AIAnalysis{}}
}

func (r *fakeAnalysisRepository) SaveAnalysis(_ context.Context, analysis *entities.AIAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	clone := *analysis
	r.analyses[analysis.ID] = &clone
	return nil
}

func (r *fakeAnalysisRepository) GetAnalysisByID(_ context.Context, id string) (*entities.AIAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.analyses[id], nil
}

type fakeGenerator struct {
	mu       sync.Mutex
	requests []ai.GenerationRequest
	generate func(ctx context.Context, req ai.GenerationRequest) (string, error)
}

func respondWith(text string) *fakeGenerator {
	return &fakeGenerator{generate: func(context.Context, ai.GenerationRequest) (string, error) {
		return text, nil
	}}
}

func (g *fakeGenerator) GenerateText(ctx context.Context, req ai.GenerationRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	return g.generate(ctx, req)
}

func (g *fakeGenerator) ModelInfo() entities.ModelInfo {
	return entities.ModelInfo{Provider: "fake", ModelID: "fake-1", Version: "1.0"}
}

func (g *fakeGenerator) lastRequest() ai.GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}
