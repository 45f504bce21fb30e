package analysis

import (
	"billora-backend/entities"
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const analysesCollection = "ai_analyses"

type analysisFirestoreRepository struct {
	client *firestore.Client
}

func NewAnalysisFirestoreRepository(client *firestore.Client) AnalysisRepository {
	return &analysisFirestoreRepository{client: client}
}

func (r *analysisFirestoreRepository) SaveAnalysis(ctx context.Context, analysis *entities.AIAnalysis) error {
	_, err := r.client.Collection(analysesCollection).Doc(analysis.ID).Set(ctx, analysis)
	return err
}

func (r *analysisFirestoreRepository) GetAnalysisByID(ctx context.Context, id string) (*entities.AIAnalysis, error) {
	snap, err := r.client.Collection(analysesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var analysis entities.AIAnalysis
	if err := snap.DataTo(&analysis); err != nil {
		return nil, err
	}
	if analysis.ID == "" {
		analysis.ID = snap.Ref.ID
	}
	return &analysis, nil
}
