package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/infrastructure/database/databasetest"
	"jan-server/services/qa-api/internal/infrastructure/database/entities"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

func newRecordID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	row := &entities.QARecord{Username: "alice", Question: "q"}
	require.NoError(t, db.Omit("Conversation").Create(row).Error)
	return row.ID
}

func TestCreateBatchCopiesIDs(t *testing.T) {
	db, gdb := databasetest.New(t)
	repo := NewRepository(db)
	ctx := context.Background()
	recordID := newRecordID(t, gdb)

	kind := "class"
	batch := []*domain.Entity{
		{QARecordID: recordID, EntityText: "COT", EntityType: &kind, StartPosition: 0, EndPosition: 18},
		{QARecordID: recordID, EntityText: "机器学习", EntityType: &kind, StartPosition: 23, EndPosition: 42},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	assert.NotZero(t, batch[0].ID)
	assert.Greater(t, batch[1].ID, batch[0].ID)

	found, err := repo.FindByRecordID(ctx, recordID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "COT", found[0].EntityText)
	assert.Equal(t, 23, found[1].StartPosition)
	assert.Nil(t, found[0].GraphCache)
}

func TestCreateBatchEmpty(t *testing.T) {
	db, _ := databasetest.New(t)
	repo := NewRepository(db)

	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
}

func TestFindByRecordIDsGroups(t *testing.T) {
	db, gdb := databasetest.New(t)
	repo := NewRepository(db)
	ctx := context.Background()
	first := newRecordID(t, gdb)
	second := newRecordID(t, gdb)
	third := newRecordID(t, gdb)

	require.NoError(t, repo.CreateBatch(ctx, []*domain.Entity{
		{QARecordID: first, EntityText: "a"},
		{QARecordID: second, EntityText: "b"},
		{QARecordID: first, EntityText: "c"},
	}))

	grouped, err := repo.FindByRecordIDs(ctx, []uint{first, second, third})
	require.NoError(t, err)

	require.Len(t, grouped[first], 2)
	assert.Equal(t, "a", grouped[first][0].EntityText)
	assert.Equal(t, "c", grouped[first][1].EntityText)
	assert.Len(t, grouped[second], 1)
	assert.Empty(t, grouped[third])

	empty, err := repo.FindByRecordIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIncrementClickCount(t *testing.T) {
	db, gdb := databasetest.New(t)
	repo := NewRepository(db)
	ctx := context.Background()
	batch := []*domain.Entity{{QARecordID: newRecordID(t, gdb), EntityText: "a"}}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	require.NoError(t, repo.IncrementClickCount(ctx, batch[0].ID))
	require.NoError(t, repo.IncrementClickCount(ctx, batch[0].ID))

	found, err := repo.FindByID(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ClickCount)

	err = repo.IncrementClickCount(ctx, 999)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestSetGraphCacheIfEmptyWritesOnce(t *testing.T) {
	db, gdb := databasetest.New(t)
	repo := NewRepository(db)
	ctx := context.Background()
	batch := []*domain.Entity{{QARecordID: newRecordID(t, gdb), EntityText: "COT"}}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	id := batch[0].ID

	first := &graph.Result{
		Nodes:     []graph.Node{{ID: "n1", Label: "COT", Type: graph.TargetTypeURI}},
		Relations: []graph.Relation{},
	}
	stored, err := repo.SetGraphCacheIfEmpty(ctx, id, first)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = repo.SetGraphCacheIfEmpty(ctx, id, graph.Empty())
	require.NoError(t, err)
	assert.False(t, stored)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found.GraphCache)
	require.Len(t, found.GraphCache.Nodes, 1)
	assert.Equal(t, "n1", found.GraphCache.Nodes[0].ID)
}

func TestEmptyResultIsCached(t *testing.T) {
	db, gdb := databasetest.New(t)
	repo := NewRepository(db)
	ctx := context.Background()
	batch := []*domain.Entity{{QARecordID: newRecordID(t, gdb), EntityText: "COT"}}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	stored, err := repo.SetGraphCacheIfEmpty(ctx, batch[0].ID, graph.Empty())
	require.NoError(t, err)
	require.True(t, stored)

	found, err := repo.FindByID(ctx, batch[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found.GraphCache)
	assert.Empty(t, found.GraphCache.Nodes)
}
