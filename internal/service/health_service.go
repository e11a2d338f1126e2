package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mtlprog/taskchain/internal/domain"
)

const (
	pointsPerCompletion  = 10
	pointsPerClaim       = 2
	screenHoursPerTask   = 2.5
	burnoutLateNightTask = 2
	categoryScale        = 10
	categoryFullMark     = 150
	trendDays            = 7
	uncategorized        = "Uncategorized"
)

// HealthService computes the team health dashboard from shadow tasks.
type HealthService struct {
	store TaskStore
	clock clock
}

// NewHealthService creates a new HealthService.
func NewHealthService(store TaskStore, opts ...Option) *HealthService {
	return &HealthService{store: store, clock: newClock(opts)}
}

type userStats struct {
	claimed   int
	completed int
	lateNight int
}

// TeamHealth computes workload, wellbeing and trend metrics for the team.
// An unknown team yields an all-zero dashboard.
func (s *HealthService) TeamHealth(ctx context.Context, teamID string) (*domain.TeamHealth, error) {
	tasks, err := s.store.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list shadow tasks: %w", err)
	}

	h := &domain.TeamHealth{
		TotalTasks:           len(tasks),
		BurnoutRiskUsers:     []string{},
		TopPerformers:        []domain.PerformerScore{},
		WorkloadDistribution: []domain.NamedValue{},
		ScreenTime:           []domain.ScreenTime{},
	}

	var (
		users     []string
		stats     = make(map[string]*userStats)
		totalDur  float64
		durations int
		byStatus  = make(map[domain.TaskStatus]int)
	)

	for _, t := range tasks {
		byStatus[t.Status]++

		user := t.ClaimedBy
		if user == "" {
			user = domain.Unassigned
		}
		st, ok := stats[user]
		if !ok {
			st = &userStats{}
			stats[user] = st
			users = append(users, user)
		}
		st.claimed++

		if t.Status == domain.TaskStatusCompleted && t.ClaimedAt != nil && t.CompletedAt != nil {
			totalDur += t.CompletedAt.Sub(*t.ClaimedAt).Hours()
			durations++
			st.completed++

			hour := t.CompletedAt.In(s.clock.loc).Hour()
			if hour >= 20 || hour < 5 {
				st.lateNight++
			}
		}
	}

	h.CompletedTasks = byStatus[domain.TaskStatusCompleted]
	if durations > 0 {
		h.AvgCompletionTimeHours = totalDur / float64(durations)
	}

	h.StatusBreakdown = []domain.NamedValue{
		{Name: "Open", Value: byStatus[domain.TaskStatusOpen]},
		{Name: "Claimed", Value: byStatus[domain.TaskStatusClaimed]},
		{Name: "Completed", Value: h.CompletedTasks},
	}

	for _, user := range users {
		if user == domain.Unassigned {
			continue
		}
		st := stats[user]
		h.WorkloadDistribution = append(h.WorkloadDistribution, domain.NamedValue{Name: user, Value: st.claimed})
		h.TopPerformers = append(h.TopPerformers, domain.PerformerScore{
			User:  user,
			Score: st.completed*pointsPerCompletion + st.claimed*pointsPerClaim,
		})
		if st.lateNight > burnoutLateNightTask {
			h.BurnoutRiskUsers = append(h.BurnoutRiskUsers, user)
		}
		h.ScreenTime = append(h.ScreenTime, domain.ScreenTime{
			User:  user,
			Hours: float64(st.claimed) * screenHoursPerTask,
		})
	}
	sort.SliceStable(h.TopPerformers, func(i, j int) bool {
		return h.TopPerformers[i].Score > h.TopPerformers[j].Score
	})

	h.Trends = s.trends(tasks)
	h.Categories = categories(tasks)

	return h, nil
}

func (s *HealthService) trends(tasks []domain.ShadowTask) []domain.DayTrend {
	now := s.clock.now().In(s.clock.loc)
	trends := make([]domain.DayTrend, 0, trendDays)

	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		trend := domain.DayTrend{Day: day.Weekday().String()[:3]}
		for _, t := range tasks {
			if t.CompletedAt != nil && sameDay(t.CompletedAt.In(s.clock.loc), day) {
				trend.Completed++
			}
			if !t.CreatedAt.IsZero() && sameDay(t.CreatedAt.In(s.clock.loc), day) {
				trend.Added++
			}
		}
		trends = append(trends, trend)
	}
	return trends
}

func categories(tasks []domain.ShadowTask) []domain.CategoryScore {
	var order []string
	counts := make(map[string]int)
	for _, t := range tasks {
		cat := t.Category
		if cat == "" {
			cat = uncategorized
		}
		if _, ok := counts[cat]; !ok {
			order = append(order, cat)
		}
		counts[cat]++
	}

	if len(order) == 0 {
		return []domain.CategoryScore{
			{Subject: "Features", A: 0, FullMark: categoryFullMark},
			{Subject: "Bugs", A: 0, FullMark: categoryFullMark},
		}
	}

	out := make([]domain.CategoryScore, 0, len(order))
	for _, cat := range order {
		out = append(out, domain.CategoryScore{
			Subject:  cat,
			A:        counts[cat] * categoryScale,
			FullMark: categoryFullMark,
		})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
