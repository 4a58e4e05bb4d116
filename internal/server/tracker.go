package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"royale-tracker/internal/api"
	"royale-tracker/internal/config"
	"royale-tracker/internal/constants"
	"royale-tracker/internal/metrics"
	"royale-tracker/internal/middleware"
	"royale-tracker/internal/repository"
	"royale-tracker/internal/service"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	syncSvc   *service.SyncService
	fleetSvc  *service.FleetService
	friendSvc *service.FriendService
	accounts  *repository.AccountRepository
	cfg       *config.Config
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewTrackerServer(
	syncSvc *service.SyncService,
	fleetSvc *service.FleetService,
	friendSvc *service.FriendService,
	accounts *repository.AccountRepository,
	cfg *config.Config,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		syncSvc:   syncSvc,
		fleetSvc:  fleetSvc,
		friendSvc: friendSvc,
		accounts:  accounts,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
	}
}

// Handler builds the route table. The account-facing API sits behind the
// static API token; the fleet endpoint behind the scheduler secret; metrics
// are open.
func (s *TrackerServer) Handler() http.Handler {
	apiAuth := middleware.BearerAuth(s.cfg.APIToken, s.logger)
	cronAuth := middleware.BearerAuth(s.cfg.CronSecret, s.logger)

	mux := http.NewServeMux()
	mux.Handle("POST /v1/sync", apiAuth(http.HandlerFunc(s.handleSync)))
	mux.Handle("POST /v1/sync-all", cronAuth(http.HandlerFunc(s.handleSyncAll)))
	mux.Handle("POST /v1/friends", apiAuth(http.HandlerFunc(s.handleAddFriend)))
	mux.Handle("DELETE /v1/friends", apiAuth(http.HandlerFunc(s.handleRemoveFriend)))
	mux.Handle("GET /v1/friends", apiAuth(http.HandlerFunc(s.handleListFriends)))
	mux.Handle("POST /v1/friends/ratings", apiAuth(http.HandlerFunc(s.handleFriendRatings)))
	mux.Handle("POST /v1/players/validate", apiAuth(http.HandlerFunc(s.handleValidatePlayer)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	return mux
}

type syncRequest struct {
	AccountID string `json:"accountId"`
}

// handleSync runs one account's sync. Partial per-battle errors still come
// back as 200 with the error list in the payload; only a failed fetch turns
// into a 4xx/5xx.
func (s *TrackerServer) handleSync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "accountId is required")
		return
	}

	account, err := s.accounts.Get(ctx, req.AccountID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", req.AccountID).Msg("failed to load account")
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	if account.PlayerTag == "" {
		writeError(w, http.StatusBadRequest, "player tag not linked")
		return
	}

	outcome, err := s.syncSvc.SyncAccount(ctx, account.ID, account.PlayerTag)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "sync timed out")
			return
		}
		if api.IsNotFound(err) {
			writeError(w, http.StatusBadRequest, "player tag not recognized upstream")
			return
		}
		s.logger.Error().Err(err).Str("account_id", account.ID).Msg("sync failed")
		writeError(w, http.StatusBadGateway, "failed to sync battles")
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *TrackerServer) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	result, err := s.fleetSvc.SyncAll(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("fleet sync failed")
		writeError(w, http.StatusInternalServerError, "failed to sync accounts")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type addFriendRequest struct {
	AccountID string `json:"accountId"`
	FriendTag string `json:"friendTag"`
}

func (s *TrackerServer) handleAddFriend(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	var req addFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountID == "" || req.FriendTag == "" {
		writeError(w, http.StatusBadRequest, "accountId and friendTag are required")
		return
	}

	friend, err := s.friendSvc.AddFriend(ctx, req.AccountID, req.FriendTag)
	switch {
	case errors.Is(err, service.ErrInvalidPlayerTag):
		writeError(w, http.StatusBadRequest, "invalid player tag")
	case errors.Is(err, repository.ErrAlreadyTracking):
		writeError(w, http.StatusBadRequest, "already tracking this friend")
	case err != nil:
		s.logger.Error().Err(err).Str("account_id", req.AccountID).Msg("failed to add friend")
		writeError(w, http.StatusInternalServerError, "failed to add friend")
	default:
		writeJSON(w, http.StatusOK, friend)
	}
}

type removeFriendRequest struct {
	AccountID string `json:"accountId"`
	FriendID  string `json:"friendId"`
}

func (s *TrackerServer) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	var req removeFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccountID == "" || req.FriendID == "" {
		writeError(w, http.StatusBadRequest, "accountId and friendId are required")
		return
	}

	if err := s.friendSvc.RemoveFriend(r.Context(), req.AccountID, req.FriendID); err != nil {
		s.logger.Error().Err(err).Str("account_id", req.AccountID).Msg("failed to remove friend")
		writeError(w, http.StatusInternalServerError, "failed to remove friend")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *TrackerServer) handleListFriends(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "accountId is required")
		return
	}

	friends, err := s.friendSvc.ListFriends(r.Context(), accountID)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to list friends")
		writeError(w, http.StatusInternalServerError, "failed to list friends")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"friends": friends})
}

type friendRatingsRequest struct {
	PlayerTags []string `json:"playerTags"`
}

func (s *TrackerServer) handleFriendRatings(w http.ResponseWriter, r *http.Request) {
	var req friendRatingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "playerTags is required")
		return
	}

	ratings, err := s.friendSvc.FriendRatings(r.Context(), req.PlayerTags)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch friend ratings")
		writeError(w, http.StatusInternalServerError, "failed to fetch ratings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}

type validatePlayerRequest struct {
	PlayerTag string `json:"playerTag"`
}

func (s *TrackerServer) handleValidatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.ExternalAPITimeout)
	defer cancel()

	var req validatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerTag == "" {
		writeError(w, http.StatusBadRequest, "playerTag is required")
		return
	}

	info, err := s.friendSvc.ValidatePlayer(ctx, req.PlayerTag)
	if errors.Is(err, service.ErrInvalidPlayerTag) {
		writeError(w, http.StatusBadRequest, "invalid player tag")
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to validate player")
		writeError(w, http.StatusBadGateway, "failed to validate player")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "playerInfo": info})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
