package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRecorder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("record sets expiry", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		r := NewMongoRecorder(mt.Coll, 24*time.Hour)

		at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		err := r.Record(context.Background(), Entry{Table: "incidencia", Op: "create", RecordID: "i1", Actor: "u1", At: at})
		require.NoError(mt, err)

		sent := mt.GetStartedEvent()
		require.NotNil(mt, sent)
		assert.Equal(mt, "insert", sent.CommandName)
		doc := sent.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, "incidencia", doc.Lookup("table").StringValue())
		assert.Equal(mt, at.Add(24*time.Hour).UnixMilli(), int64(doc.Lookup("expires_at").DateTime()))
	})

	mt.Run("record reports write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		r := NewMongoRecorder(mt.Coll, 0)

		err := r.Record(context.Background(), Entry{Table: "voucher", Op: "delete", RecordID: "v1"})
		assert.ErrorContains(mt, err, "record audit delete voucher/v1")
	})

	mt.Run("list newest first", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "table", Value: "personal"}, {Key: "op", Value: "update"}, {Key: "record_id", Value: "p2"}},
				bson.D{{Key: "table", Value: "personal"}, {Key: "op", Value: "create"}, {Key: "record_id", Value: "p1"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)
		r := NewMongoRecorder(mt.Coll, 0)

		entries, err := r.List(context.Background(), "personal", 10)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, "p2", entries[0].RecordID)
		assert.Equal(mt, "create", entries[1].Op)
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	var r Recorder = Nop{}
	assert.NoError(t, r.Record(context.Background(), Entry{}))
	entries, err := r.List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
