package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
)

type VoteHandler struct {
	service ports.VoteService
	logger  *slog.Logger
}

func NewVoteHandler(service ports.VoteService, logger *slog.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  orDiscard(logger),
	}
}

type voterIdentityRequest struct {
	Kind     string `json:"kind"`
	DeviceID string `json:"device_id"`
}

type voteRequest struct {
	TopicID       int64                 `json:"topic_id"`
	Choice        domain.Choice         `json:"choice"`
	Region        string                `json:"region"`
	DeviceID      string                `json:"device_id"`
	VoterIdentity *voterIdentityRequest `json:"voter_identity"`
}

// Vote godoc
// @Summary      Casts or changes a vote
// @Description  Records the caller's choice for a topic. A second vote on the same topic is accepted only after the cooldown.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      404
// @Failure      409
// @Router       /api/votes [post]
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	deviceID := req.DeviceID
	if req.VoterIdentity != nil {
		switch domain.VoterKind(req.VoterIdentity.Kind) {
		case domain.VoterKindAnonymous:
			deviceID = req.VoterIdentity.DeviceID
		case domain.VoterKindUser:
			if _, ok := userFromContext(r.Context()); !ok {
				http.Error(w, "Unauthorized: user identity requires a token", http.StatusUnauthorized)
				return
			}
		default:
			writeError(w, r, h.logger, domain.ErrInvalidVoterKind)
			return
		}
	}

	input := ports.VoteInput{
		TopicID: req.TopicID,
		Choice:  req.Choice,
		Region:  req.Region,
		Voter:   requestVoter(r, deviceID),
	}

	vote, err := h.service.Vote(r.Context(), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

type claimRequest struct {
	DeviceID string `json:"device_id"`
}

// Claim moves the votes a device cast anonymously to the authenticated user.
func (h *VoteHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req claimRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.DeviceID == "" {
		req.DeviceID = r.Header.Get(deviceIDHeader)
	}

	n, err := h.service.ClaimDeviceVotes(r.Context(), req.DeviceID, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"reassigned_votes": n})
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logger.Discard()
	}
	return l
}
