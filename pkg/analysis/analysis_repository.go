package analysis

import (
	"billora-backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	AnalysisRepository interface {
		// SaveAnalysis replaces any analysis stored under the same id.
		SaveAnalysis(ctx context.Context, analysis *entities.AIAnalysis) error
		// GetAnalysisByID returns nil, nil when no analysis exists.
		GetAnalysisByID(ctx context.Context, id string) (*entities.AIAnalysis, error)
	}

	analysisRepository struct {
		db *gorm.DB
	}
)

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) SaveAnalysis(ctx context.Context, analysis *entities.AIAnalysis) error {
	if analysis.GeneratedAt.IsZero() {
		analysis.GeneratedAt = time.Now()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(analysis).Error
}

func (r *analysisRepository) GetAnalysisByID(ctx context.Context, id string) (*entities.AIAnalysis, error) {
	var analysis entities.AIAnalysis
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}
