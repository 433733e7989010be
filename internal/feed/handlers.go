package feed

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"zentra/internal/common"
)

type FeedHandler struct {
	paginator    *Paginator
	defaultLimit int
	logger       *zap.Logger
}

func NewFeedHandler(paginator *Paginator, defaultLimit int, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{paginator: paginator, defaultLimit: defaultLimit, logger: logger}
}

func (h *FeedHandler) Register(r *mux.Router) {
	r.HandleFunc("/feed", h.Page).Methods(http.MethodGet)
}

type PageResponse struct {
	Success bool `json:"success"`
	Page
}

func (h *FeedHandler) Page(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", h.defaultLimit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	page, err := h.paginator.Page(r.Context(), skip, limit)
	if err != nil {
		if common.AsAppError(err).Status >= http.StatusInternalServerError {
			h.logger.Error("feed page failed", zap.Int("skip", skip), zap.Int("limit", limit), zap.Error(err))
		}
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, PageResponse{Success: true, Page: page})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.BadRequest(key + " must be an integer")
	}
	return n, nil
}
