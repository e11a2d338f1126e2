package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/repository"
	"github.com/mtlprog/taskchain/internal/service"
)

func TestTeamHealth_EmptyTeam(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // Monday
	health := service.NewHealthService(repository.NewMemoryTaskStore(),
		service.WithClock(func() time.Time { return now }),
		service.WithLocation(time.UTC),
	)

	h, err := health.TeamHealth(context.Background(), "1")
	require.NoError(t, err)

	assert.Zero(t, h.TotalTasks)
	assert.Zero(t, h.AvgCompletionTimeHours)
	assert.Empty(t, h.TopPerformers)
	require.Len(t, h.Trends, 7)
	assert.Equal(t, "Tue", h.Trends[0].Day)
	assert.Equal(t, "Mon", h.Trends[6].Day)
	assert.Equal(t, []domain.CategoryScore{
		{Subject: "Features", A: 0, FullMark: 150},
		{Subject: "Bugs", A: 0, FullMark: 150},
	}, h.Categories)
}

func TestTeamHealth_Metrics(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := repository.NewMemoryTaskStore()

	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	tasks := []domain.ShadowTask{
		// alice: three late-night completions, two hours each
		{ID: "1", Status: domain.TaskStatusCompleted, ClaimedBy: "alice", Category: "Dev",
			ClaimedAt: at(-60 * time.Hour), CompletedAt: at(-58 * time.Hour), CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "2", Status: domain.TaskStatusCompleted, ClaimedBy: "alice", Category: "Dev",
			ClaimedAt: at(-13 * time.Hour), CompletedAt: at(-11 * time.Hour), CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "3", Status: domain.TaskStatusCompleted, ClaimedBy: "alice", Category: "Ops",
			ClaimedAt: at(-10 * time.Hour), CompletedAt: at(-8 * time.Hour), CreatedAt: now},
		{ID: "4", Status: domain.TaskStatusClaimed, ClaimedBy: "bob", ClaimedAt: at(-time.Hour), CreatedAt: now},
		{ID: "5", Status: domain.TaskStatusOpen, ClaimedBy: domain.Unassigned, CreatedAt: now},
		{ID: "6", Status: domain.TaskStatusOpen, CreatedAt: now},
	}
	for _, task := range tasks {
		_, err := store.Create(ctx, "1", task)
		require.NoError(t, err)
	}

	health := service.NewHealthService(store,
		service.WithClock(func() time.Time { return now }),
		service.WithLocation(time.UTC),
	)
	h, err := health.TeamHealth(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, 6, h.TotalTasks)
	assert.Equal(t, 3, h.CompletedTasks)
	assert.InDelta(t, 2.0, h.AvgCompletionTimeHours, 1e-9)
	assert.Equal(t, []domain.NamedValue{
		{Name: "Open", Value: 2},
		{Name: "Claimed", Value: 1},
		{Name: "Completed", Value: 3},
	}, h.StatusBreakdown)
	assert.Equal(t, []domain.NamedValue{
		{Name: "alice", Value: 3},
		{Name: "bob", Value: 1},
	}, h.WorkloadDistribution)
	assert.Equal(t, []domain.PerformerScore{
		{User: "alice", Score: 36},
		{User: "bob", Score: 2},
	}, h.TopPerformers)
	assert.Equal(t, []string{"alice"}, h.BurnoutRiskUsers)
	assert.Equal(t, []domain.ScreenTime{
		{User: "alice", Hours: 7.5},
		{User: "bob", Hours: 2.5},
	}, h.ScreenTime)

	require.Len(t, h.Trends, 7)
	assert.Equal(t, domain.DayTrend{Day: "Mon", Completed: 2, Added: 4}, h.Trends[6])
	assert.Equal(t, domain.DayTrend{Day: "Sun", Completed: 0, Added: 1}, h.Trends[5])
	assert.Equal(t, domain.DayTrend{Day: "Sat", Completed: 1, Added: 1}, h.Trends[4])

	assert.Equal(t, []domain.CategoryScore{
		{Subject: "Dev", A: 20, FullMark: 150},
		{Subject: "Ops", A: 10, FullMark: 150},
		{Subject: "Uncategorized", A: 30, FullMark: 150},
	}, h.Categories)
}
