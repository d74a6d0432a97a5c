// Package tools exposes the mail operations as MCP tools over stdio or
// streamable HTTP.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.io/infrasutra/mailbridge/internal/auth"
	"github.io/infrasutra/mailbridge/internal/config"
	"github.io/infrasutra/mailbridge/internal/journal"
	"github.io/infrasutra/mailbridge/internal/mail"
	"github.io/infrasutra/mailbridge/internal/pagination"
	"github.io/infrasutra/mailbridge/internal/sse"
)

const serverName = "mailbridge"

type Server struct {
	cfg     config.Config
	mail    *mail.Client
	journal *journal.Journal
	hub     *sse.Hub
	auth    *auth.Manager
	logger  *slog.Logger
	mcp     *mcp.Server
	mux     *http.ServeMux
	now     func() time.Time
}

// NewServer registers every tool. A nil journal disables activity
// recording, a nil hub disables the live feed, and a nil auth manager leaves
// the HTTP endpoints open.
func NewServer(cfg config.Config, client *mail.Client, j *journal.Journal, hub *sse.Hub, authManager *auth.Manager, logger *slog.Logger, version string) *Server {
	server := &Server{
		cfg:     cfg,
		mail:    client,
		journal: j,
		hub:     hub,
		auth:    authManager,
		logger:  logger,
		mcp:     mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		now:     time.Now,
	}
	server.registerTools()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.handleHealth)
	mux.HandleFunc("/ready", server.handleReady)
	mux.Handle("/activity", server.protect(http.HandlerFunc(server.handleActivity)))
	mux.Handle("/activity/stream", server.protect(http.HandlerFunc(server.handleStream)))
	mux.Handle("/mcp", server.protect(mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.mcp
	}, nil)))
	server.mux = mux
	return server
}

// Run serves MCP over stdin/stdout until ctx is done or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session over transport. It is used for in-process
// clients.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, transport, nil)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// invoke runs one tool call with logging and journaling. Failures become
// error results; the MCP request itself always succeeds.
func (s *Server) invoke(ctx context.Context, tool string, run func(context.Context) (string, int, error)) *mcp.CallToolResult {
	id := uuid.NewString()
	started := s.now()
	text, items, err := run(ctx)
	duration := s.now().Sub(started)

	activity := journal.Activity{
		ID:        id,
		Tool:      tool,
		Success:   err == nil,
		Duration:  duration,
		Items:     items,
		CreatedAt: started,
	}
	if err != nil {
		activity.Error = err.Error()
		s.logger.Warn("tool failed", "tool", tool, "invocation", id, "duration", duration, "error", err)
		text = errorText(err)
	} else {
		s.logger.Info("tool", "tool", tool, "invocation", id, "duration", duration, "items", items)
	}
	s.record(ctx, activity)
	s.publish(activity)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: err != nil,
	}
}

func (s *Server) record(ctx context.Context, activity journal.Activity) {
	if s.journal == nil || !s.cfg.JournalEnabled {
		return
	}
	// the journal entry outlives a cancelled call
	if err := s.journal.Record(context.WithoutCancel(ctx), activity); err != nil {
		s.logger.Error("record activity", "tool", activity.Tool, "error", err)
	}
}

func (s *Server) publish(activity journal.Activity) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(toSummary(activity))
	if err != nil {
		s.logger.Error("encode activity", "error", err)
		return
	}
	s.hub.Broadcast(activity.Tool, "activity", payload)
}

func (s *Server) protect(next http.Handler) http.Handler {
	if s.auth == nil {
		return next
	}
	return s.auth.Require(next)
}

// addTool registers a tool whose handler produces text, an item count for
// the journal, and an error.
func addTool[In any](s *Server, name, description string, run func(context.Context, In) (string, int, error)) {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
			return s.invoke(ctx, name, func(ctx context.Context) (string, int, error) {
				return run(ctx, in)
			}), nil, nil
		})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondText(w, http.StatusOK, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.journal != nil {
		if err := s.journal.Ping(r.Context()); err != nil {
			s.logger.Error("journal not ready", "error", err)
			s.respondText(w, http.StatusServiceUnavailable, "journal unavailable")
			return
		}
	}
	s.respondText(w, http.StatusOK, "ready")
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.journal == nil {
		http.Error(w, "activity journal disabled", http.StatusNotFound)
		return
	}
	params := pagination.FromQuery(r.URL.Query())
	activities, total, err := s.journal.Recent(r.Context(), r.URL.Query().Get("tool"), params.Offset, params.Limit)
	if err != nil {
		s.logger.Error("list activity", "error", err)
		http.Error(w, "unable to list activity", http.StatusInternalServerError)
		return
	}

	response := struct {
		Activity []activitySummary `json:"activity"`
		Total    int               `json:"total"`
		Page     int               `json:"page"`
		HasMore  bool              `json:"hasMore"`
	}{
		Activity: make([]activitySummary, 0, len(activities)),
		Total:    total,
		Page:     params.Page,
		HasMore:  pagination.HasNext(params.Offset, params.Limit, total),
	}
	for _, activity := range activities {
		response.Activity = append(response.Activity, toSummary(activity))
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.hub == nil {
		http.Error(w, "activity feed disabled", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	tool := r.URL.Query().Get("tool")
	ch, unsubscribe := s.hub.Subscribe(tool)
	s.logger.Debug("activity stream opened", "tool", tool, "subscribers", s.hub.Subscribers())
	defer func() {
		unsubscribe()
		s.logger.Debug("activity stream closed", "tool", tool, "subscribers", s.hub.Subscribers())
	}()

	_, _ = w.Write(sse.Frame("ready", []byte("{}")))
	flusher.Flush()

	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(payload)
			flusher.Flush()
		case <-ticker.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		}
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) respondText(w http.ResponseWriter, status int, payload string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(payload))
}

type activitySummary struct {
	ID         string `json:"id"`
	Tool       string `json:"tool"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"durationMs"`
	Items      int    `json:"items"`
	CreatedAt  string `json:"createdAt"`
}

func toSummary(activity journal.Activity) activitySummary {
	return activitySummary{
		ID:         activity.ID,
		Tool:       activity.Tool,
		Success:    activity.Success,
		Error:      activity.Error,
		DurationMS: activity.Duration.Milliseconds(),
		Items:      activity.Items,
		CreatedAt:  activity.CreatedAt.UTC().Format(time.RFC3339),
	}
}
