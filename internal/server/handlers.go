package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"newsdigest/internal/core"
)

// DigestRequest is the body of POST /digest.
type DigestRequest struct {
	Topic            string `json:"topic"`
	GenerateAIDigest *bool  `json:"generate_ai_digest,omitempty"` // defaults to true
	PhoneNumber      string `json:"phone_number,omitempty"`
}

// DigestResponse is the body of a successful POST /digest.
type DigestResponse struct {
	Status    string             `json:"status"`
	RequestID string             `json:"request_id"`
	Topic     string             `json:"topic"`
	Digest    string             `json:"digest"`
	Articles  []core.Article     `json:"articles"`
	AIDigest  *core.DigestResult `json:"ai_digest,omitempty"`
	SMSStatus string             `json:"sms_status"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of any error response.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleDigest handles POST /digest
func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	var req DigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		s.respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	aiDigest := true
	if req.GenerateAIDigest != nil {
		aiDigest = *req.GenerateAIDigest
	}

	s.log.Info("Digest requested", "topic", req.Topic, "ai", aiDigest)

	result := s.pipeline.GenerateDigest(r.Context(), req.Topic, aiDigest)

	smsStatus, err := s.notifier.Send(r.Context(), req.PhoneNumber, result.Digest)
	if err != nil {
		s.log.Warn("Digest notification failed", "error", err)
		smsStatus = "delivery failed"
	}

	s.respondJSON(w, http.StatusOK, DigestResponse{
		Status:    "success",
		RequestID: uuid.NewString(),
		Topic:     result.Topic,
		Digest:    result.Digest,
		Articles:  result.Articles,
		AIDigest:  result.AI,
		SMSStatus: smsStatus,
	})
}

// handleFashionNews handles GET /fashion-news, a fixed-topic variant of the
// digest pipeline kept for an early front-end integration.
func (s *Server) handleFashionNews(w http.ResponseWriter, r *http.Request) {
	result := s.pipeline.GenerateDigest(r.Context(), "fashion", false)

	s.respondJSON(w, http.StatusOK, DigestResponse{
		Status:    "success",
		RequestID: uuid.NewString(),
		Topic:     result.Topic,
		Digest:    result.Digest,
		Articles:  result.Articles,
		SMSStatus: "not requested",
	})
}

// respondJSON writes a JSON response with the given status code
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Status: "error", Error: message})
}
