// Package live fans board updates out to websocket viewers.
package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/mtlprog/taskchain/internal/config"
	"github.com/mtlprog/taskchain/internal/logger"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

// Update types.
const (
	UpdateIssueCreated = "issue_created"
	UpdateIssueMoved   = "issue_moved"
)

const (
	subscriberBuffer = 32
	writeTimeout     = 5 * time.Second
)

// Update is a change notification for one board.
type Update struct {
	BoardID string `json:"boardId"`
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub keeps the viewers of each board. Broadcast never blocks: a viewer that
// is behind misses the update.
type Hub struct {
	mu      sync.RWMutex
	boards  map[string]map[chan Update]struct{}
	origins []string
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewHub creates a Hub. metrics may be nil.
func NewHub(cfg config.Live, metrics *telemetry.Metrics) *Hub {
	return &Hub{
		boards:  make(map[string]map[chan Update]struct{}),
		origins: cfg.OriginPatterns,
		metrics: metrics,
		logger:  logger.Component("live"),
	}
}

// Subscribe registers a viewer of boardID. The returned function removes the
// viewer and closes the channel.
func (h *Hub) Subscribe(boardID string) (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.boards[boardID]
	if !ok {
		subs = make(map[chan Update]struct{})
		h.boards[boardID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()
	h.metrics.ViewerConnected(1)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.boards, boardID)
			}
			h.mu.Unlock()
			close(ch)
			h.metrics.ViewerConnected(-1)
		})
	}
}

// Broadcast sends u to every viewer of u.BoardID and returns how many received it.
func (h *Hub) Broadcast(u Update) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered, dropped := 0, 0
	for ch := range h.boards[u.BoardID] {
		select {
		case ch <- u:
			delivered++
		default:
			dropped++
		}
	}
	h.metrics.Broadcast(dropped)
	if dropped > 0 {
		h.logger.Warn("viewers behind, update dropped", "board_id", u.BoardID, "dropped", dropped)
	}
	return delivered
}

// SubscriberCount returns the number of viewers of boardID.
func (h *Hub) SubscriberCount(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}

// ServeBoard upgrades the request to a websocket and streams the updates of
// the board named by the boardId path value until the viewer disconnects.
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "board_id", boardID, "error", err)
		return
	}
	defer conn.CloseNow()

	// Viewers only listen; CloseRead handles control frames and cancels ctx on disconnect.
	ctx := conn.CloseRead(r.Context())

	updates, unsubscribe := h.Subscribe(boardID)
	defer unsubscribe()

	h.logger.Info("board viewer connected", "board_id", boardID)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("board viewer disconnected", "board_id", boardID)
			return
		case u := <-updates:
			if err := write(ctx, conn, u); err != nil {
				h.logger.Warn("board viewer write failed", "board_id", boardID, "error", err)
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, u Update) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, u)
}
