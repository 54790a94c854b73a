package repository

import (
	"context"
	"fmt"
	"time"

	"grocerflow-backend/dal"
	"grocerflow-backend/models"
	"grocerflow-backend/utils/logger"
)

type JourneyRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *JourneyRepository {
	return &JourneyRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *JourneyRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_journeys"
}

func journeyPK(journeyID string) string {
	return "JOURNEY#" + journeyID
}

func stageSK(order int, stageID string) string {
	return fmt.Sprintf("STAGE#%02d#%s", order, stageID)
}

// journeyMetadataItem is the METADATA row of a journey partition
type journeyMetadataItem struct {
	PK         string         `dynamodbav:"PK"`
	SK         string         `dynamodbav:"SK"`
	EntityType string         `dynamodbav:"EntityType"`
	GSI1PK     string         `dynamodbav:"GSI1PK"`
	GSI1SK     string         `dynamodbav:"GSI1SK"`
	Data       models.Journey `dynamodbav:"Data"`
}

// journeyStageItem is one STAGE#nn row of a journey partition
type journeyStageItem struct {
	PK         string                 `dynamodbav:"PK"`
	SK         string                 `dynamodbav:"SK"`
	EntityType string                 `dynamodbav:"EntityType"`
	GSI1PK     string                 `dynamodbav:"GSI1PK"`
	GSI1SK     string                 `dynamodbav:"GSI1SK"`
	Data       models.StageDefinition `dynamodbav:"Data"`
}

// SaveJourney writes the journey metadata row
func (r *JourneyRepository) SaveJourney(ctx context.Context, journey *models.Journey) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if journey.CreatedAt == "" {
		journey.CreatedAt = now
	}
	journey.UpdatedAt = now

	item := journeyMetadataItem{
		PK:         journeyPK(journey.JourneyID),
		SK:         "METADATA",
		EntityType: "Journey",
		GSI1PK:     "JOURNEYS",
		GSI1SK:     journey.CreatedAt,
		Data:       *journey,
	}
	return r.db.PutItem(ctx, r.table(), item)
}

// SaveStage writes one stage definition row under the journey partition.
// GSI1SK carries the zero-padded order so stages list in sequence.
func (r *JourneyRepository) SaveStage(ctx context.Context, journeyID string, stage *models.StageDefinition) error {
	item := journeyStageItem{
		PK:         journeyPK(journeyID),
		SK:         stageSK(stage.Order, stage.StageID),
		EntityType: "StageDefinition",
		GSI1PK:     journeyPK(journeyID) + "#STAGES",
		GSI1SK:     fmt.Sprintf("%02d", stage.Order),
		Data:       *stage,
	}
	return r.db.PutItem(ctx, r.table(), item)
}

func (r *JourneyRepository) GetJourney(ctx context.Context, journeyID string) (*models.Journey, error) {
	item := &journeyMetadataItem{}
	key := map[string]string{"PK": journeyPK(journeyID), "SK": "METADATA"}
	if err := r.db.GetItem(ctx, r.table(), key, item); err != nil {
		return nil, err
	}
	if item.PK == "" {
		return nil, fmt.Errorf("journey %s not found", journeyID)
	}
	return &item.Data, nil
}

func (r *JourneyRepository) ListJourneys(ctx context.Context) ([]*models.Journey, error) {
	var items []journeyMetadataItem
	if err := r.db.QueryByIndex(ctx, r.table(), "GSI1", "GSI1PK", "JOURNEYS", &items); err != nil {
		return nil, err
	}
	journeys := make([]*models.Journey, 0, len(items))
	for i := range items {
		journeys = append(journeys, &items[i].Data)
	}
	return journeys, nil
}

func (r *JourneyRepository) ListStages(ctx context.Context, journeyID string) ([]*models.StageDefinition, error) {
	var items []journeyStageItem
	if err := r.db.QueryByPrefix(ctx, r.table(), "PK", journeyPK(journeyID), "SK", "STAGE#", &items); err != nil {
		return nil, err
	}
	stages := make([]*models.StageDefinition, 0, len(items))
	for i := range items {
		stages = append(stages, &items[i].Data)
	}
	return stages, nil
}

// UpdateProgress records stage completion on the metadata row. The
// whole Data blob is rewritten; journeys are single-writer so a
// read-modify-write is fine here.
func (r *JourneyRepository) UpdateProgress(ctx context.Context, journey *models.Journey, stageIndex int, status string) error {
	journey.CurrentStageIndex = stageIndex
	journey.Status = status
	return r.SaveJourney(ctx, journey)
}
