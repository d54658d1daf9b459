package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type StatsHandler struct {
	persona ports.PersonaService
	logger  *slog.Logger
}

func NewStatsHandler(persona ports.PersonaService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		persona: persona,
		logger:  orDiscard(logger),
	}
}

func (h *StatsHandler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}
	h.writeStats(w, r, domain.UserVoter(userID))
}

func (h *StatsHandler) GetVoterStats(w http.ResponseWriter, r *http.Request) {
	voter := requestVoter(r, r.URL.Query().Get("device_id"))
	if voter.IsZero() {
		writeError(w, r, h.logger, domain.ErrMissingVoter)
		return
	}
	h.writeStats(w, r, voter)
}

func (h *StatsHandler) writeStats(w http.ResponseWriter, r *http.Request, voter domain.VoterIdentity) {
	stats, err := h.persona.ComputeUserStats(r.Context(), voter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
