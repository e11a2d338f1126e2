package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/taskchain/internal/config"
	"github.com/mtlprog/taskchain/internal/domain"
	"github.com/mtlprog/taskchain/internal/handler"
	"github.com/mtlprog/taskchain/internal/handler/dto"
	"github.com/mtlprog/taskchain/internal/indexer"
	"github.com/mtlprog/taskchain/internal/kanban"
	"github.com/mtlprog/taskchain/internal/live"
	"github.com/mtlprog/taskchain/internal/repository"
	"github.com/mtlprog/taskchain/internal/service"
	"github.com/mtlprog/taskchain/internal/syncbridge"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubListener bool

func (l stubListener) Listening() bool { return bool(l) }

type HandlerTestSuite struct {
	suite.Suite
	now  time.Time
	ix   *indexer.Indexer
	deps handler.Deps
	mux  *http.ServeMux
}

func (s *HandlerTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }

	s.ix = indexer.New(indexer.WithClock(clock))
	activity := service.NewActivityService(s.ix)
	store := repository.NewMemoryTaskStore()
	tasks := service.NewTaskService(store, nil, service.WithClock(clock))
	hub := live.NewHub(config.Live{}, nil)

	s.deps = handler.Deps{
		Tasks:    tasks,
		Activity: activity,
		Reports:  service.NewReportService(activity, service.WithClock(clock)),
		Health:   service.NewHealthService(store, service.WithClock(clock), service.WithLocation(time.UTC)),
		Boards:   kanban.NewService(syncbridge.New(tasks, nil), hub),
		Hub:      hub,
		Metrics:  telemetry.NewMetrics(),
		Listener: stubListener(true),
	}
	s.mount()
}

func (s *HandlerTestSuite) mount() {
	s.mux = http.NewServeMux()
	handler.New(s.deps).RegisterRoutes(s.mux)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// Helper to make a JSON request
func (s *HandlerTestSuite) makeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	switch b := body.(type) {
	case nil:
		bodyReader = bytes.NewReader([]byte{})
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *HandlerTestSuite) assertError(w *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, w.Code, w.Body.String())
	var resp dto.ErrorResponse
	s.decode(w, &resp)
	s.Equal(code, resp.Error.Code)
}

func (s *HandlerTestSuite) createTask(teamID string, task map[string]any) domain.ShadowTask {
	w := s.makeRequest(http.MethodPost, "/api/task/create", map[string]any{
		"teamId": teamID,
		"task":   task,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TaskResponse
	s.decode(w, &resp)
	return resp.Task
}

func (s *HandlerTestSuite) apply(taskID uint64, actor string, d domain.Details) {
	s.ix.Apply(context.Background(), domain.ChainEvent{TaskID: taskID, Actor: actor, TxHash: "0xfeed", Details: d})
}

// Healthz

func (s *HandlerTestSuite) TestHealthz_WithoutDatabase() {
	w := s.makeRequest(http.MethodGet, "/healthz", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.HealthzResponse
	s.decode(w, &resp)
	s.Equal("ok", resp.Status)
	s.Equal("disabled", resp.Database)
	s.True(resp.Listening)
}

func (s *HandlerTestSuite) TestHealthz_DatabaseDown() {
	s.deps.DB = stubPinger{err: errors.New("connection refused")}
	s.mount()

	w := s.makeRequest(http.MethodGet, "/healthz", nil)

	s.Equal(http.StatusServiceUnavailable, w.Code)
	var resp dto.HealthzResponse
	s.decode(w, &resp)
	s.Equal("unavailable", resp.Database)
}

func (s *HandlerTestSuite) TestMetrics_Exposed() {
	s.makeRequest(http.MethodPost, "/api/task/create", map[string]any{
		"teamId": "1",
		"task":   map[string]any{"id": "a", "title": "A"},
	})
	s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "claimed", "claimedBy": "alice"})

	w := s.makeRequest(http.MethodGet, "/metrics", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "taskchain_")
}

// Shadow tasks

func (s *HandlerTestSuite) TestCreateTask_Defaults() {
	task := s.createTask("1", map[string]any{"title": "Write docs"})

	s.NotEmpty(task.ID)
	s.Equal("Write docs", task.Title)
	s.Equal(domain.TaskStatusOpen, task.Status)
	s.True(task.CreatedAt.Equal(s.now))
}

func (s *HandlerTestSuite) TestCreateTask_MissingFields() {
	w := s.makeRequest(http.MethodPost, "/api/task/create", map[string]any{"teamId": "1"})
	s.assertError(w, http.StatusBadRequest, "INVALID_REQUEST")

	w = s.makeRequest(http.MethodPost, "/api/task/create", map[string]any{"task": map[string]any{"title": "x"}})
	s.assertError(w, http.StatusBadRequest, "INVALID_REQUEST")
}

func (s *HandlerTestSuite) TestCreateTask_InvalidJSON() {
	w := s.makeRequest(http.MethodPost, "/api/task/create", "{not json")
	s.assertError(w, http.StatusBadRequest, "INVALID_JSON")
}

func (s *HandlerTestSuite) TestCreateTask_InvalidStatus() {
	w := s.makeRequest(http.MethodPost, "/api/task/create", map[string]any{
		"teamId": "1",
		"task":   map[string]any{"title": "x", "status": "blocked"},
	})
	s.assertError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
}

func (s *HandlerTestSuite) TestListTasks() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})
	s.createTask("1", map[string]any{"id": "b", "title": "B"})
	s.createTask("2", map[string]any{"id": "c", "title": "C"})

	w := s.makeRequest(http.MethodGet, "/api/task/1", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.TaskListResponse
	s.decode(w, &resp)
	s.Equal("1", resp.TeamID)
	s.Require().Len(resp.Tasks, 2)
	s.Equal("a", resp.Tasks[0].ID)
	s.Equal("b", resp.Tasks[1].ID)
}

func (s *HandlerTestSuite) TestListTasks_UnknownTeamIsEmpty() {
	w := s.makeRequest(http.MethodGet, "/api/task/nope", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.TaskListResponse
	s.decode(w, &resp)
	s.Empty(resp.Tasks)
}

func (s *HandlerTestSuite) TestUpdateTask_ClaimThenComplete() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "claimed", "claimedBy": "alice"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var claimed dto.TaskResponse
	s.decode(w, &claimed)
	s.Equal(domain.TaskStatusClaimed, claimed.Task.Status)
	s.Equal("alice", claimed.Task.ClaimedBy)
	s.Require().NotNil(claimed.Task.ClaimedAt)

	s.now = s.now.Add(time.Hour)
	w = s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "completed"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var completed dto.TaskResponse
	s.decode(w, &completed)
	s.Equal(domain.TaskStatusCompleted, completed.Task.Status)
	s.Require().NotNil(completed.Task.CompletedAt)
	s.True(completed.Task.CompletedAt.Equal(s.now))
}

func (s *HandlerTestSuite) TestUpdateTask_AlreadyClaimed() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})
	s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "claimed", "claimedBy": "alice"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "claimed", "claimedBy": "bob"})

	s.assertError(w, http.StatusConflict, "TASK_ALREADY_CLAIMED")
}

func (s *HandlerTestSuite) TestUpdateTask_NotYetClaimed() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "completed"})

	s.assertError(w, http.StatusConflict, "NOT_YET_CLAIMED")
}

func (s *HandlerTestSuite) TestUpdateTask_ClaimedByAnother() {
	s.createTask("1", map[string]any{"id": "a", "title": "A", "claimedBy": "alice"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "claimed", "claimedBy": "bob"})

	s.assertError(w, http.StatusConflict, "CLAIMED_BY_ANOTHER")
}

func (s *HandlerTestSuite) TestUpdateTask_InvalidStatus() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/a", map[string]any{"status": "archived"})

	s.assertError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
}

func (s *HandlerTestSuite) TestUpdateTask_NotFound() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})

	w := s.makeRequest(http.MethodPatch, "/api/task/1/missing", map[string]any{"title": "x"})
	s.assertError(w, http.StatusNotFound, "TASK_NOT_FOUND")

	w = s.makeRequest(http.MethodPatch, "/api/task/9/a", map[string]any{"title": "x"})
	s.assertError(w, http.StatusNotFound, "TEAM_NOT_FOUND")
}

func (s *HandlerTestSuite) TestActiveClaims() {
	s.createTask("1", map[string]any{"id": "a", "title": "A"})
	s.createTask("1", map[string]any{"id": "b", "title": "B", "status": "review", "claimedBy": "bob"})
	s.createTask("1", map[string]any{"id": "c", "title": "C", "status": "completed"})

	w := s.makeRequest(http.MethodGet, "/api/task/1/active", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ActiveClaimsResponse
	s.decode(w, &resp)
	s.True(resp.OK)
	s.Require().Len(resp.Active, 1)
	s.Equal("b", resp.Active[0].TaskID)
	s.Equal("bob", resp.Active[0].ClaimedBy)
}

// Analytics

func (s *HandlerTestSuite) TestGlobalActivity_NewestFirst() {
	s.apply(1, "0xAA", domain.CreatedDetails{Category: "Dev"})
	s.now = s.now.Add(time.Minute)
	s.apply(1, "0xBB", domain.ClaimedDetails{Commitment: domain.CommitmentLevel(1)})

	w := s.makeRequest(http.MethodGet, "/api/analytics/activity", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp struct {
		OK       bool `json:"ok"`
		Activity []struct {
			Kind  domain.EventKind `json:"kind"`
			Actor string           `json:"actor"`
		} `json:"activity"`
	}
	s.decode(w, &resp)
	s.True(resp.OK)
	s.Require().Len(resp.Activity, 2)
	s.Equal(domain.EventKindClaimed, resp.Activity[0].Kind)
	s.Equal(domain.EventKindCreated, resp.Activity[1].Kind)
}

func (s *HandlerTestSuite) TestUserHistory_CaseInsensitive() {
	s.apply(1, "0xAbC", domain.CreatedDetails{Category: "Dev"})
	s.apply(2, "0xdef", domain.CreatedDetails{Category: "Ops"})

	w := s.makeRequest(http.MethodGet, "/api/analytics/history/0xabc", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp struct {
		Actor   string `json:"actor"`
		History []struct {
			TaskID uint64 `json:"taskId"`
		} `json:"history"`
	}
	s.decode(w, &resp)
	s.Equal("0xabc", resp.Actor)
	s.Require().Len(resp.History, 1)
	s.Equal(uint64(1), resp.History[0].TaskID)
}

func (s *HandlerTestSuite) TestProjections() {
	s.apply(7, "0xAA", domain.CreatedDetails{Category: "Dev"})
	s.apply(7, "0xBB", domain.ClaimedDetails{})

	w := s.makeRequest(http.MethodGet, "/api/analytics/tasks", nil)
	s.Equal(http.StatusOK, w.Code)
	var list struct {
		Tasks []struct {
			TaskID uint64 `json:"taskId"`
		} `json:"tasks"`
	}
	s.decode(w, &list)
	s.Require().Len(list.Tasks, 1)

	w = s.makeRequest(http.MethodGet, "/api/analytics/tasks/7", nil)
	s.Equal(http.StatusOK, w.Code)
	var one struct {
		Task struct {
			Status   domain.ProjectionStatus `json:"status"`
			Executor *string                 `json:"executor"`
		} `json:"task"`
	}
	s.decode(w, &one)
	s.Equal(domain.ProjectionClaimed, one.Task.Status)
	s.Require().NotNil(one.Task.Executor)
	s.Equal("0xBB", *one.Task.Executor)
}

func (s *HandlerTestSuite) TestProjection_Errors() {
	w := s.makeRequest(http.MethodGet, "/api/analytics/tasks/42", nil)
	s.assertError(w, http.StatusNotFound, "TASK_NOT_FOUND")

	w = s.makeRequest(http.MethodGet, "/api/analytics/tasks/abc", nil)
	s.assertError(w, http.StatusBadRequest, "INVALID_REQUEST")
}

// Reporting

func (s *HandlerTestSuite) TestContributionReport() {
	s.apply(1, "0xAA", domain.CreatedDetails{Category: "Dev"})
	s.apply(1, "0xBB", domain.ClaimedDetails{})
	s.apply(1, "0xBB", domain.CompletedDetails{Creator: "0xAA"})

	w := s.makeRequest(http.MethodGet, "/api/business/report/1", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ReportResponse
	s.decode(w, &resp)
	s.Require().NotNil(resp.Report)
	s.Equal("1", resp.Report.TeamID)
	s.Equal(1, resp.Report.TotalTasks)
	s.Equal(1, resp.Report.CompletedTasks)
	s.Equal(2, resp.Report.TotalContributors)
	s.Len(resp.Report.Velocity, 7)
	s.Equal(1, resp.Report.Velocity[6].Count)
}

func (s *HandlerTestSuite) TestExportCSV() {
	s.apply(1, "0xBB", domain.CompletedDetails{Creator: "0xAA", ProofLink: "https://proof"})

	w := s.makeRequest(http.MethodGet, "/api/business/export/csv/5", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("text/csv", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "contribution_report_5.csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	s.Require().Len(lines, 2)
	s.Equal("Task ID,Executor,Timestamp,Proof Link,Tx Hash", strings.TrimSpace(lines[0]))
	s.Contains(lines[1], "https://proof")
}

func (s *HandlerTestSuite) TestTeamHealth() {
	s.createTask("1", map[string]any{"id": "a", "title": "A", "category": "Bugs"})

	w := s.makeRequest(http.MethodGet, "/api/health/team/1", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp domain.TeamHealth
	s.decode(w, &resp)
	s.Equal(1, resp.TotalTasks)
	s.Len(resp.Trends, 7)
}

// Boards

func (s *HandlerTestSuite) TestBoard_CreateAndMoveMirrorsShadowTask() {
	w := s.makeRequest(http.MethodPost, "/api/board/issue", map[string]any{
		"boardId":  "default-1",
		"title":    "Fix login",
		"priority": "high",
		"assignee": "alice",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.IssueResponse
	s.decode(w, &created)
	s.Equal(domain.ColumnTodo, created.Issue.ColumnID)

	w = s.makeRequest(http.MethodPatch, "/api/board/issue/"+created.Issue.ID+"/move", map[string]any{
		"boardId":        "default-1",
		"targetColumnId": domain.ColumnInProgress,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/api/board/default-1", nil)
	var board dto.BoardResponse
	s.decode(w, &board)
	s.Require().Len(board.Issues, 1)
	s.Equal(domain.ColumnInProgress, board.Issues[0].ColumnID)

	w = s.makeRequest(http.MethodGet, "/api/task/1", nil)
	var tasks dto.TaskListResponse
	s.decode(w, &tasks)
	s.Require().Len(tasks.Tasks, 1)
	s.Equal(created.Issue.ID, tasks.Tasks[0].ID)
	s.Equal(domain.TaskStatusClaimed, tasks.Tasks[0].Status)
	s.Equal("alice", tasks.Tasks[0].ClaimedBy)
}

func (s *HandlerTestSuite) TestBoard_SyncFailureDoesNotFailRequest() {
	w := s.makeRequest(http.MethodPost, "/api/board/issue", map[string]any{"boardId": "default-3", "title": "A"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var created dto.IssueResponse
	s.decode(w, &created)

	// done without a claim is rejected by the shadow store but the move stands.
	w = s.makeRequest(http.MethodPatch, "/api/board/issue/"+created.Issue.ID+"/move", map[string]any{
		"targetColumnId": domain.ColumnDone,
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestBoard_Errors() {
	w := s.makeRequest(http.MethodPost, "/api/board/issue", map[string]any{"boardId": "default-1"})
	s.assertError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR")

	w = s.makeRequest(http.MethodPatch, "/api/board/issue/missing/move", map[string]any{"targetColumnId": "done"})
	s.assertError(w, http.StatusNotFound, "ISSUE_NOT_FOUND")

	w = s.makeRequest(http.MethodPatch, "/api/board/issue/missing/move", "[")
	s.assertError(w, http.StatusBadRequest, "INVALID_JSON")
}

func (s *HandlerTestSuite) TestIndex() {
	w := s.makeRequest(http.MethodGet, "/", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), "/api/analytics/activity")

	w = s.makeRequest(http.MethodGet, "/nope", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
