package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/kwikkconnect/kwikkconnect/pkg/service/chat"
	"github.com/kwikkconnect/kwikkconnect/pkg/usecase"
	"github.com/kwikkconnect/kwikkconnect/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// Wire representations. Domain models stay transport-free; every
// response goes through these.

type caseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toCaseResponse(c *model.Case) caseResponse {
	return caseResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		Priority:    c.Priority.String(),
		Status:      c.Status.String(),
		AssignedTo:  c.AssignedTo,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCaseResponses(cases []*model.Case) []caseResponse {
	out := make([]caseResponse, len(cases))
	for i, c := range cases {
		out[i] = toCaseResponse(c)
	}
	return out
}

type expertResponse struct {
	Name     string `json:"name"`
	IsOnline bool   `json:"isOnline"`
}

type messageResponse struct {
	ID        int64  `json:"id"`
	Sender    string `json:"sender"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsAI      bool   `json:"isAI"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode response")
	}
}

// writeError maps the use case error taxonomy onto HTTP statuses
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case usecase.IsValidation(err):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	case usecase.IsNotFound(err):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func (s *Server) handleRegisterExpert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	expert, err := s.uc.Expert.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"success": true,
		"expert":  expertResponse{Name: expert.Name, IsOnline: expert.IsOnline},
	})
}

func (s *Server) handleListExperts(w http.ResponseWriter, r *http.Request) {
	experts, err := s.uc.Expert.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	byEmail := make(map[string]expertResponse, len(experts))
	for _, e := range experts {
		byEmail[e.Email] = expertResponse{Name: e.Name, IsOnline: e.IsOnline}
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"experts": byEmail})
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		AssignedTo  string `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Case.Create(r.Context(), req.Title, req.Description, types.Priority(req.Priority), req.AssignedTo)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"success": true,
		"case":    toCaseResponse(created),
	})
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.uc.Case.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"cases": toCaseResponses(cases)})
}

func (s *Server) handleExpertCases(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	cases, err := s.uc.Case.ListByAssignee(r.Context(), email)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"cases": toCaseResponses(cases)})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := types.CaseID(chi.URLParam(r, "id"))

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	updated, _, err := s.uc.Case.UpdateStatus(r.Context(), id, types.CaseStatus(req.Status))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"success": true,
		"case":    toCaseResponse(updated),
	})
}

func (s *Server) openRoom(w http.ResponseWriter, r *http.Request) (*chat.Session, bool) {
	id := types.CaseID(chi.URLParam(r, "id"))

	c, err := s.uc.Case.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return nil, false
	}

	session, err := s.rooms.Get(r.Context(), c)
	if err != nil {
		writeError(r.Context(), w, err)
		return nil, false
	}

	return session, true
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	room, ok := s.openRoom(w, r)
	if !ok {
		return
	}

	messages := room.Messages()
	out := make([]messageResponse, len(messages))
	for i, m := range messages {
		out[i] = messageResponse{
			ID:        m.ID,
			Sender:    m.Sender,
			Kind:      m.Kind.String(),
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339),
			IsAI:      m.IsAI,
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"messages": out})
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Sender == "" {
		req.Sender = "Anonymous"
	}

	room, ok := s.openRoom(w, r)
	if !ok {
		return
	}

	if err := room.SendUserMessage(r.Context(), req.Sender, req.Content); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleRequestSummary(w http.ResponseWriter, r *http.Request) {
	room, ok := s.openRoom(w, r)
	if !ok {
		return
	}

	room.RequestSummary(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{"success": true})
}
