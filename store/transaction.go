package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type Transaction = func(sessCtx mongo.SessionContext) (interface{}, error)

// WithTransaction runs txn in a transaction with snapshot read concern, so every read
// inside it observes the same point-in-time view of the data.
func WithTransaction(ctx context.Context, dbClient *mongo.Client, txn Transaction) (interface{}, error) {
	session, err := dbClient.StartSession()
	if err != nil {
		return nil, fmt.Errorf("unable to start sessions %w", err)
	}
	defer session.EndSession(ctx)

	wc := writeconcern.Majority()
	rc := readconcern.Snapshot()
	txnOpts := options.Transaction().SetWriteConcern(wc).SetReadConcern(rc)
	return session.WithTransaction(ctx, txn, txnOpts)
}

// ReadSnapshot is WithTransaction for read-only work returning a typed result.
func ReadSnapshot[T any](ctx context.Context, dbClient *mongo.Client, read func(sessCtx mongo.SessionContext) (T, error)) (T, error) {
	var empty T
	result, err := WithTransaction(ctx, dbClient, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return read(sessCtx)
	})
	if err != nil {
		return empty, err
	}

	typed, ok := result.(T)
	if !ok {
		return empty, fmt.Errorf("unexpected transaction result %T", result)
	}
	return typed, nil
}
