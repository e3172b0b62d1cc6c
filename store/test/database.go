package test

import (
	"context"
	"fmt"
	"time"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/test"
)

const (
	mongoTestHost = "mongodb://127.0.0.1:27017/?replicaSet=rs0&directConnection=true"
	mongoTimeout  = time.Second * 5
)

var (
	database *mongo.Database
)

// SetupDatabase connects to the local test replica set. Snapshot transactions are
// not available on standalone servers.
func SetupDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoTestHost))
	Expect(err).ToNot(HaveOccurred())
	Expect(client.Ping(ctx, nil)).To(Succeed())

	databaseName := fmt.Sprintf("npda_test_%s_%d", test.Faker.Lorem().Word(), ginkgo.GinkgoParallelProcess())
	database = client.Database(databaseName)
}

func TeardownDatabase() {
	Expect(database).ToNot(BeNil())
	err := database.Drop(context.Background())
	Expect(err).ToNot(HaveOccurred())

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	Expect(database.Client().Disconnect(ctx)).ToNot(HaveOccurred())
	database = nil
}

func GetTestDatabase() *mongo.Database {
	Expect(database).ToNot(BeNil())
	return database
}
