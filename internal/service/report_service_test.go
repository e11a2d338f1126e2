package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/indexer"
	"github.com/mtlprog/taskchain/internal/service"
)

type reportFixture struct {
	now     time.Time
	ix      *indexer.Indexer
	reports *service.ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{now: time.Date(2025, 3, 10, 15, 30, 0, 123_000_000, time.UTC)}
	clock := func() time.Time { return f.now }
	f.ix = indexer.New(indexer.WithClock(clock))
	f.reports = service.NewReportService(service.NewActivityService(f.ix), service.WithClock(clock))
	return f
}

func (f *reportFixture) apply(taskID uint64, actor, tx string, d domain.Details) {
	f.ix.Apply(context.Background(), domain.ChainEvent{TaskID: taskID, Actor: actor, TxHash: tx, Details: d})
}

func TestContributionReport_Empty(t *testing.T) {
	f := newReportFixture()

	report, err := f.reports.ContributionReport(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "1", report.TeamID)
	assert.Zero(t, report.TotalTasks)
	assert.Empty(t, report.RecentActivity)
	assert.Empty(t, report.Disputes)
	require.Len(t, report.Velocity, 7)
	assert.Equal(t, "2025-03-04", report.Velocity[0].Date)
	assert.Equal(t, "2025-03-10", report.Velocity[6].Date)
}

func TestContributionReport_CountsAndVelocity(t *testing.T) {
	f := newReportFixture()
	f.now = f.now.AddDate(0, 0, -10)
	f.apply(1, "0xAA", "0x1", domain.CreatedDetails{Category: "Dev"})
	f.apply(1, "0xBB", "0x2", domain.ClaimedDetails{})
	f.apply(1, "0xBB", "0x3", domain.CompletedDetails{Creator: "0xAA"})

	f.now = f.now.AddDate(0, 0, 9)
	f.apply(2, "0xaa", "0x4", domain.CreatedDetails{Category: "Dev"})
	f.apply(2, "0xCC", "0x5", domain.ClaimedDetails{})
	f.apply(2, "0xCC", "0x6", domain.CompletedDetails{Creator: "0xAA", IPFSCid: "bafy"})

	f.now = f.now.AddDate(0, 0, 1)
	report, err := f.reports.ContributionReport(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTasks)
	assert.Equal(t, 2, report.CompletedTasks)
	assert.Equal(t, 3, report.TotalContributors)
	require.Len(t, report.RecentActivity, 5)
	assert.Equal(t, "0x6", report.RecentActivity[0].TxHash)

	require.Len(t, report.Velocity, 7)
	assert.Equal(t, domain.VelocityPoint{Date: "2025-03-09", Count: 1}, report.Velocity[5])
	assert.Zero(t, report.Velocity[6].Count)

	require.Len(t, report.Disputes, 1)
	assert.Equal(t, "0x3", report.Disputes[0].TxHash)
}

func TestContributionReport_ProofLinkIsNotADispute(t *testing.T) {
	f := newReportFixture()
	f.apply(1, "0xBB", "0x1", domain.CompletedDetails{ProofLink: "https://proof"})

	report, err := f.reports.ContributionReport(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, report.Disputes)
}

func TestExportCSV_MissingProofIsNAAndDisputed(t *testing.T) {
	f := newReportFixture()
	f.apply(7, "0xAA", "0x1", domain.CreatedDetails{Category: "Dev"})
	f.apply(7, "0xBB", "0x2", domain.ClaimedDetails{})
	f.apply(7, "0xBB", domain.UnknownTxHash, domain.CompletedDetails{Creator: "0xAA"})

	var buf bytes.Buffer
	require.NoError(t, f.reports.ExportCSV(context.Background(), "1", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Task ID", "Executor", "Timestamp", "Proof Link", "Tx Hash"}, rows[0])
	assert.Equal(t, []string{"7", "0xBB", "2025-03-10T15:30:00.123Z", "N/A", "unknown"}, rows[1])

	report, err := f.reports.ContributionReport(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, report.Disputes, 1)
	assert.Equal(t, uint64(7), report.Disputes[0].TaskID)
}

func TestExportCSV_UsesProofLinkAndNewestFirst(t *testing.T) {
	f := newReportFixture()
	f.apply(1, "0xBB", "0x1", domain.CompletedDetails{ProofLink: "https://a"})
	f.now = f.now.Add(time.Minute)
	f.apply(2, "0xCC", "0x2", domain.CompletedDetails{ProofLink: "https://b,c"})

	var buf bytes.Buffer
	require.NoError(t, f.reports.ExportCSV(context.Background(), "1", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "https://b,c", rows[1][3])
	assert.Equal(t, "https://a", rows[2][3])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestExportCSV_PropagatesWriteError(t *testing.T) {
	f := newReportFixture()
	f.apply(1, "0xBB", "0x1", domain.CompletedDetails{})

	err := f.reports.ExportCSV(context.Background(), "1", failingWriter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestActivityService_TaskNotFound(t *testing.T) {
	f := newReportFixture()
	activity := service.NewActivityService(f.ix)

	_, err := activity.Task(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	f.apply(1, "0xAA", "0x1", domain.CreatedDetails{})
	p, err := activity.Task(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "0xAA", p.Creator)
	assert.Len(t, activity.Tasks(context.Background()), 1)
}
