package repositories

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sajidk24/recipeshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var mongoClient *mongo.Client

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		// Container-backed tests skip themselves when mongoClient is nil
		log.Printf("Docker not available, skipping container-backed tests: %s", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start mongo container: %s", err)
	}

	uri := "mongodb://localhost:" + resource.GetPort("27017/tcp")
	if err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			return err
		}
		mongoClient = client
		return nil
	}); err != nil {
		log.Fatalf("Could not connect to mongo container: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge mongo container: %s", err)
	}

	os.Exit(code)
}

func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if mongoClient == nil {
		t.Skip("docker not available")
	}
	db := mongoClient.Database("recipeshare_test_" + t.Name())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

func seedChefs(t *testing.T, repo *MongoChefRepository, userIDs ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))
	for _, id := range userIDs {
		require.NoError(t, repo.CreateChef(ctx, &models.Chef{UserID: id}))
	}
}

func TestToggleFollow_Symmetry(t *testing.T) {
	repo := NewMongoChefRepository(testDatabase(t))
	seedChefs(t, repo, "1", "2")
	ctx := context.Background()

	followed, err := repo.ToggleFollow(ctx, "2", "1")
	require.NoError(t, err)
	assert.True(t, followed)

	actor, err := repo.GetChefByUserID(ctx, "1")
	require.NoError(t, err)
	target, err := repo.GetChefByUserID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, actor.Following)
	assert.Equal(t, []string{"1"}, target.Followers)
	assert.Empty(t, actor.Followers)
	assert.Empty(t, target.Following)

	followed, err = repo.ToggleFollow(ctx, "2", "1")
	require.NoError(t, err)
	assert.False(t, followed)

	actor, err = repo.GetChefByUserID(ctx, "1")
	require.NoError(t, err)
	target, err = repo.GetChefByUserID(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, actor.Following)
	assert.Empty(t, target.Followers)
}

func TestToggleFollow_SelfAndMissing(t *testing.T) {
	repo := NewMongoChefRepository(testDatabase(t))
	seedChefs(t, repo, "1")
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "1", "1")
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = repo.ToggleFollow(ctx, "missing", "1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.ToggleFollow(ctx, "1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleFollow_ConcurrentTogglesStaySymmetric(t *testing.T) {
	repo := NewMongoChefRepository(testDatabase(t))
	seedChefs(t, repo, "1", "2")
	ctx := context.Background()

	// An even number of toggles must land back on the unfollowed state
	// regardless of interleaving.
	const toggles = 10
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ToggleFollow(ctx, "2", "1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	actor, err := repo.GetChefByUserID(ctx, "1")
	require.NoError(t, err)
	target, err := repo.GetChefByUserID(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, actor.Following)
	assert.Empty(t, target.Followers)
}

func TestToggleFollow_DistinctPairsDoNotInterfere(t *testing.T) {
	repo := NewMongoChefRepository(testDatabase(t))
	seedChefs(t, repo, "1", "2", "3")
	ctx := context.Background()

	_, err := repo.ToggleFollow(ctx, "2", "1")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "3", "1")
	require.NoError(t, err)
	_, err = repo.ToggleFollow(ctx, "1", "2")
	require.NoError(t, err)

	actor, err := repo.GetChefByUserID(ctx, "1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2", "3"}, actor.Following)
	assert.Equal(t, []string{"2"}, actor.Followers)
}

func TestGetConversation_OrderedAndSymmetric(t *testing.T) {
	repo := NewMongoMessageRepository(testDatabase(t))
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, m := range []models.Message{
		{Sender: "u2", Receiver: "u1", Body: "second", Timestamp: base.Add(time.Minute)},
		{Sender: "u1", Receiver: "u2", Body: "first", Timestamp: base},
		{Sender: "u1", Receiver: "u3", Body: "other thread", Timestamp: base},
		{Sender: "u1", Receiver: "u2", Body: "third", Timestamp: base.Add(2 * time.Minute)},
	} {
		msg := m
		require.NoError(t, repo.CreateMessage(ctx, &msg))
	}

	forward, err := repo.GetConversation(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Len(t, forward, 3)
	assert.Equal(t, "first", forward[0].Body)
	assert.Equal(t, "second", forward[1].Body)
	assert.Equal(t, "third", forward[2].Body)

	reverse, err := repo.GetConversation(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, forward, reverse)
}

func TestCreateMessage_AssignsTimestamp(t *testing.T) {
	repo := NewMongoMessageRepository(testDatabase(t))
	ctx := context.Background()

	msg := &models.Message{Sender: "u1", Receiver: "u2", Body: "hello"}
	require.NoError(t, repo.CreateMessage(ctx, msg))
	assert.False(t, msg.Timestamp.IsZero())
	assert.False(t, msg.ID.IsZero())
}

func TestChefIndexRejectsDuplicateUserID(t *testing.T) {
	repo := NewMongoChefRepository(testDatabase(t))
	seedChefs(t, repo, "1")

	err := repo.CreateChef(context.Background(), &models.Chef{UserID: "1"})
	assert.Error(t, err)
}
