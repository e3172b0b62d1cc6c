package patients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/errors"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/store"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

const (
	CollectionName = "patients"
)

//go:generate mockgen --build_flags=--mod=mod -source=./repository.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Get(ctx context.Context, id string) (*Patient, error)
	// GetWithVisits returns the patient with all of its visits.
	GetWithVisits(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, unitCode string, pagination store.Pagination) ([]Patient, error)
	// ListCohort returns the patients cared for by the unit at any point of the window,
	// each with its visits. All patients and visits are read from a single snapshot.
	ListCohort(ctx context.Context, unitCode string, window audit.Window) ([]Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, id string, patient Patient) (*Patient, error)
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
				{Key: "sites.unitCode", Value: 1},
				{Key: "sites.dateLeftService", Value: 1},
			},
			Options: options.Index().
				SetName("UnitPatients"),
		},
		{
			Keys: bson.D{
				{Key: "nhsNumber", Value: 1},
			},
			Options: options.Index().
				SetName("NhsNumber"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*Patient, error) {
	objId, err := store.ObjectIDFromHex(id, "patient")
	if err != nil {
		return nil, err
	}

	patient := &Patient{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(patient); err != nil {
		return nil, store.Translate(err, "fetching patient")
	}

	return patient, nil
}

func (r *repository) GetWithVisits(ctx context.Context, id string) (*Patient, error) {
	objId, err := store.ObjectIDFromHex(id, "patient")
	if err != nil {
		return nil, err
	}

	list, err := store.ReadSnapshot(ctx, r.collection.Database().Client(), func(sessCtx mongo.SessionContext) ([]Patient, error) {
		return r.aggregateWithVisits(sessCtx, bson.M{"_id": objId})
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching patient with visits: %w", err)
	}
	if len(list) == 0 {
		return nil, errors.NotFound
	}

	return &list[0], nil
}

func (r *repository) List(ctx context.Context, unitCode string, pagination store.Pagination) ([]Patient, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit))

	cursor, err := r.collection.Find(ctx, bson.M{"sites.unitCode": normalizeUnitCode(unitCode)}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}

	var patients []Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %w", err)
	}

	return patients, nil
}

func (r *repository) ListCohort(ctx context.Context, unitCode string, window audit.Window) ([]Patient, error) {
	selector := bson.M{
		"sites": bson.M{
			"$elemMatch": bson.M{
				"unitCode": normalizeUnitCode(unitCode),
				"$or": bson.A{
					bson.M{"dateLeftService": bson.M{"$exists": false}},
					bson.M{"dateLeftService": nil},
					bson.M{"dateLeftService": bson.M{"$gte": window.Start}},
				},
			},
		},
	}

	cohort, err := store.ReadSnapshot(ctx, r.collection.Database().Client(), func(sessCtx mongo.SessionContext) ([]Patient, error) {
		return r.aggregateWithVisits(sessCtx, selector)
	})
	if err != nil {
		return nil, fmt.Errorf("error loading cohort for unit %s: %w", unitCode, err)
	}

	r.logger.Debugw("loaded cohort", "unitCode", unitCode, "window", window.String(), "patients", len(cohort))
	return cohort, nil
}

func (r *repository) aggregateWithVisits(ctx context.Context, selector bson.M) ([]Patient, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: selector}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from": visits.CollectionName,
			"let":  bson.M{"patientId": "$_id"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$patientId", "$$patientId"}}}}},
				{{Key: "$sort", Value: bson.D{{Key: "visitDate", Value: 1}, {Key: "_id", Value: 1}}}},
			},
			"as": "visits",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating patients: %w", err)
	}

	patients := make([]Patient, 0)
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients: %w", err)
	}

	return patients, nil
}

func (r *repository) Create(ctx context.Context, patient Patient) (*Patient, error) {
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	patient.Id = &id
	patient.Visits = nil
	patient.CreatedTime = now
	patient.UpdatedTime = now
	for i := range patient.Sites {
		patient.Sites[i].UnitCode = normalizeUnitCode(patient.Sites[i].UnitCode)
	}

	if _, err := r.collection.InsertOne(ctx, patient); err != nil {
		return nil, store.Translate(err, "creating patient")
	}

	return &patient, nil
}

func (r *repository) Update(ctx context.Context, id string, patient Patient) (*Patient, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.Id = existing.Id
	patient.Visits = nil
	patient.CreatedTime = existing.CreatedTime
	patient.UpdatedTime = time.Now().UTC()
	for i := range patient.Sites {
		patient.Sites[i].UnitCode = normalizeUnitCode(patient.Sites[i].UnitCode)
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.Id}, patient)
	if err != nil {
		return nil, fmt.Errorf("error updating patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, errors.NotFound
	}

	return &patient, nil
}

func normalizeUnitCode(unitCode string) string {
	return strings.ToUpper(strings.TrimSpace(unitCode))
}
