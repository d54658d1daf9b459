package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type TopicHandler struct {
	topics  ports.TopicCatalog
	results ports.ResultService
	votes   ports.VoteService
	logger  *slog.Logger
}

func NewTopicHandler(topics ports.TopicCatalog, results ports.ResultService, votes ports.VoteService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		topics:  topics,
		results: results,
		votes:   votes,
		logger:  orDiscard(logger),
	}
}

// GetCurrent godoc
// @Summary      Returns the topic currently open for voting
// @Tags         topics
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /api/topics/current [get]
func (h *TopicHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topics.GetCurrent(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// GetResults godoc
// @Summary      Returns the regional and global tally of a topic
// @Tags         topics
// @Produce      json
// @Param        id   path      int  true  "Topic ID"
// @Success      200
// @Failure      400
// @Failure      404
// @Router       /api/topics/{id}/results [get]
func (h *TopicHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	topicID, err := topicIDParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.topics.GetByID(r.Context(), topicID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	tally, err := h.results.ComputeResults(r.Context(), topicID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

// GetEligibility reports whether the caller may vote on the topic now.
func (h *TopicHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	topicID, err := topicIDParam(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	voter := requestVoter(r, r.URL.Query().Get("device_id"))
	status, err := h.votes.CheckStatus(r.Context(), topicID, voter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
