package visits

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/store"
)

const (
	CollectionName = "visits"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repository.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Get(ctx context.Context, id string) (*Visit, error)
	ListByPatient(ctx context.Context, patientId string) ([]Visit, error)
	Create(ctx context.Context, visit Visit) (*Visit, error)
	Update(ctx context.Context, id string, visit Visit) (*Visit, error)
}

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "visitDate", Value: 1},
			},
			Options: options.Index().
				SetName("PatientVisits"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*Visit, error) {
	objId, err := store.ObjectIDFromHex(id, "visit")
	if err != nil {
		return nil, err
	}

	visit := &Visit{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(visit); err != nil {
		return nil, store.Translate(err, "fetching visit")
	}

	return visit, nil
}

func (r *repository) ListByPatient(ctx context.Context, patientId string) ([]Visit, error) {
	objId, err := store.ObjectIDFromHex(patientId, "patient")
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "visitDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": objId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing visits: %w", err)
	}

	var visits []Visit
	if err = cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("error decoding visits: %w", err)
	}

	return visits, nil
}

func (r *repository) Create(ctx context.Context, visit Visit) (*Visit, error) {
	if visit.PatientId == nil {
		return nil, fmt.Errorf("%w: visit must belong to a patient", errors.BadRequest)
	}

	id := primitive.NewObjectID()
	now := time.Now().UTC()
	visit.Id = &id
	visit.CreatedTime = now
	visit.UpdatedTime = now

	if _, err := r.collection.InsertOne(ctx, visit); err != nil {
		return nil, store.Translate(err, "creating visit")
	}

	r.logger.Debugw("created visit", "visitId", id.Hex(), "patientId", visit.PatientId.Hex())
	return &visit, nil
}

// Update replaces the clinical content of a visit. The owner and creation time are kept.
func (r *repository) Update(ctx context.Context, id string, visit Visit) (*Visit, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	visit.Id = existing.Id
	visit.PatientId = existing.PatientId
	visit.CreatedTime = existing.CreatedTime
	visit.UpdatedTime = time.Now().UTC()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.Id}, visit)
	if err != nil {
		return nil, fmt.Errorf("error updating visit: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, errors.NotFound
	}

	return &visit, nil
}
