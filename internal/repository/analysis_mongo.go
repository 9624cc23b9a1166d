package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"bizchess/internal/domain/analysis"
	errs "bizchess/internal/errors"
)

const analysesCollection = "analyses"

type AnalysisRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewAnalysisRepository(log *zap.SugaredLogger, mongo *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{
		log:   log,
		mongo: mongo,
	}
}

func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, a analysis.Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(analysesCollection)

	_, err := collection.InsertOne(ctx, a)
	if err != nil {
		r.log.Errorf("failed to insert analysis %s: %v", a.ID, err)
		return err
	}
	return nil
}

func (r *AnalysisRepository) GetAnalysis(ctx context.Context, id string) (analysis.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(analysesCollection)

	var found analysis.Analysis
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return analysis.Analysis{}, fmt.Errorf("%w: %s", errs.ErrAnalysisNotFound, id)
	} else if err != nil {
		r.log.Error(err)
		return analysis.Analysis{}, err
	}
	return found, nil
}

// ListSessionAnalyses returns one page of a session's analyses, newest first.
// One extra document is fetched to tell whether another page exists.
func (r *AnalysisRepository) ListSessionAnalyses(ctx context.Context, sessionID string, page, limit int) ([]analysis.Analysis, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := r.mongo.Collection(analysesCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit + 1))

	cursor, err := collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		r.log.Error(err)
		return nil, false, err
	}
	defer cursor.Close(ctx)

	var result []analysis.Analysis
	for cursor.Next(ctx) {
		var item analysis.Analysis
		if err = cursor.Decode(&item); err != nil {
			r.log.Error(err)
			return nil, false, err
		}
		result = append(result, item)
	}
	if err = cursor.Err(); err != nil {
		return nil, false, err
	}

	hasMore := len(result) > limit
	if hasMore {
		result = result[:limit]
	}
	return result, hasMore, nil
}
