package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/repository"
)

func openTask(id string) domain.ShadowTask {
	return domain.ShadowTask{
		ID:        id,
		Title:     "task " + id,
		Status:    domain.TaskStatusOpen,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryTaskStore_CreateAndListKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()

	for _, id := range []string{"b", "a", "c"} {
		_, err := store.Create(ctx, "1", openTask(id))
		require.NoError(t, err)
	}

	tasks, err := store.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestMemoryTaskStore_ListUnknownTeamIsEmpty(t *testing.T) {
	tasks, err := repository.NewMemoryTaskStore().List(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestMemoryTaskStore_ListByStatus(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()

	claimed := openTask("2")
	claimed.Status = domain.TaskStatusClaimed
	review := openTask("3")
	review.Status = domain.TaskStatusReview

	for _, task := range []domain.ShadowTask{openTask("1"), claimed, review} {
		_, err := store.Create(ctx, "1", task)
		require.NoError(t, err)
	}

	tasks, err := store.ListByStatus(ctx, "1", domain.TaskStatusClaimed, domain.TaskStatusReview)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2", tasks[0].ID)
	assert.Equal(t, "3", tasks[1].ID)
}

func TestMemoryTaskStore_MutateNotFound(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()

	_, err := store.Mutate(ctx, "1", "t1", func(*domain.ShadowTask) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	_, err = store.Create(ctx, "1", openTask("t1"))
	require.NoError(t, err)

	_, err = store.Mutate(ctx, "1", "t2", func(*domain.ShadowTask) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestMemoryTaskStore_MutateFailureLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()
	_, err := store.Create(ctx, "1", openTask("t1"))
	require.NoError(t, err)

	_, err = store.Mutate(ctx, "1", "t1", func(task *domain.ShadowTask) error {
		task.Title = "changed"
		return domain.ErrAlreadyClaimed
	})
	require.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	tasks, _ := store.List(ctx, "1")
	assert.Equal(t, "task t1", tasks[0].Title)
}

func TestMemoryTaskStore_MutateTouchesFirstDuplicate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()
	_, _ = store.Create(ctx, "1", openTask("dup"))
	_, _ = store.Create(ctx, "1", openTask("dup"))

	updated, err := store.Mutate(ctx, "1", "dup", func(task *domain.ShadowTask) error {
		task.Title = "first"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Title)

	tasks, _ := store.List(ctx, "1")
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "task dup", tasks[1].Title)
}

func TestMemoryTaskStore_ConcurrentMutationsAreSerialized(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()
	_, _ = store.Create(ctx, "1", openTask("t1"))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Mutate(ctx, "1", "t1", func(task *domain.ShadowTask) error {
				task.Title += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tasks, _ := store.List(ctx, "1")
	assert.Len(t, tasks[0].Title, len("task t1")+50)
}

func TestMemoryTaskStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryTaskStore()

	now := time.Now()
	task := openTask("t1")
	task.ClaimedAt = &now
	_, _ = store.Create(ctx, "1", task)

	tasks, _ := store.List(ctx, "1")
	*tasks[0].ClaimedAt = time.Time{}

	again, _ := store.List(ctx, "1")
	assert.Equal(t, now, *again[0].ClaimedAt)
}
