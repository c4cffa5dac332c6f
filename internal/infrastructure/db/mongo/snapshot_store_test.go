package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type state struct {
	Next int `json:"next"`
}

func TestSnapshotStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "marketplace." + snapshotCollection

	mt.Run("load missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		var st state
		found, err := NewSnapshotStore(mt.DB, "customer").Load(context.Background(), &st)
		require.NoError(t, err)
		require.False(t, found)
	})

	mt.Run("load found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "customer"},
			{Key: "state", Value: `{"next":7}`},
			{Key: "updated_at", Value: time.Now().UTC()},
		}))

		var st state
		found, err := NewSnapshotStore(mt.DB, "customer").Load(context.Background(), &st)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, 7, st.Next)
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "customer"}}}},
		))

		require.NoError(t, NewSnapshotStore(mt.DB, "customer").Save(context.Background(), state{Next: 8}))

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		require.Equal(t, "update", started.CommandName)
	})

	mt.Run("save error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "shutdown in progress"}))

		err := NewSnapshotStore(mt.DB, "product").Save(context.Background(), state{Next: 1})
		require.ErrorContains(t, err, "mongo upsert snapshot product")
	})
}
