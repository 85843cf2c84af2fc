// Package testinfra starts the MongoDB container shared by the store and
// HTTP tests.
package testinfra

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MongoImage = "mongo:7.0"

type Mongo struct {
	Container testcontainers.Container
	Client    *mongo.Client
	URI       string
}

// IsDockerAvailable checks if the Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// StartMongo starts a throwaway mongod and connects a client to it.
func StartMongo(ctx context.Context) (*Mongo, error) {
	if !IsDockerAvailable() {
		return nil, fmt.Errorf("docker not available")
	}

	req := testcontainers.ContainerRequest{
		Image:        MongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mongo container: %w", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mongo endpoint: %w", err)
	}
	uri := "mongodb://" + endpoint

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to test mongo: %w", err)
	}

	return &Mongo{Container: container, Client: client, URI: uri}, nil
}

func (m *Mongo) Close(ctx context.Context) {
	if m == nil {
		return
	}
	_ = m.Client.Disconnect(ctx)
	_ = m.Container.Terminate(ctx)
}

// SkipIfNoMongo skips the test when StartMongo failed in TestMain.
func SkipIfNoMongo(t *testing.T, m *Mongo) {
	t.Helper()
	if m == nil {
		t.Skip("Skipping test: MongoDB container not available")
	}
}

// ResetDB drops every collection of the named database.
func ResetDB(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		t.Fatalf("failed to list collections: %v", err)
	}

	for _, coll := range collections {
		if err := db.Collection(coll).Drop(ctx); err != nil {
			t.Fatalf("failed to drop collection %s: %v", coll, err)
		}
	}
}

// Main is a TestMain body: it starts the container into *target, runs the
// tests and tears everything down. Tests skip themselves through
// SkipIfNoMongo when Docker is missing.
func Main(m *testing.M, target **Mongo) {
	ctx := context.Background()

	mg, err := StartMongo(ctx)
	if err != nil {
		log.Printf("integration tests will be skipped: %v", err)
	}
	*target = mg

	code := m.Run()

	mg.Close(ctx)
	os.Exit(code)
}
