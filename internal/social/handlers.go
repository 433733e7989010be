package social

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/dbmysql"
	"zentra/internal/notif"
)

type SocialHandler struct {
	service *SocialService
	logger  *zap.Logger
}

func NewSocialHandler(service *SocialService, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{service: service, logger: logger}
}

// Register mounts the routes on r. r must resolve the current user.
func (h *SocialHandler) Register(r *mux.Router) {
	r.HandleFunc("/posts/{postID}/likes", h.Like).Methods(http.MethodPost)
	r.HandleFunc("/posts/{postID}/comments", h.Comment).Methods(http.MethodPost)
	r.HandleFunc("/users/{userID}/follow", h.Follow).Methods(http.MethodPost)
}

type InteractionResponse struct {
	Success      bool                 `json:"success"`
	Comment      *dbmysql.Comment     `json:"comment,omitempty"`
	Notification *notif.EnrichedEvent `json:"notification,omitempty"`
}

type CommentRequest struct {
	Content         string `json:"content" validate:"required,max=2000"`
	ParentCommentID string `json:"parentCommentId"`
}

func (h *SocialHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	event, err := h.service.Like(r.Context(), userID, mux.Vars(r)["postID"])
	if err != nil {
		h.writeError(w, "like", err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, InteractionResponse{Success: true, Notification: event})
}

func (h *SocialHandler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	var req CommentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	result, err := h.service.Comment(r.Context(), userID, mux.Vars(r)["postID"], CommentInput{
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		h.writeError(w, "comment", err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, InteractionResponse{
		Success:      true,
		Comment:      result.Comment,
		Notification: result.Notification,
	})
}

func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	event, err := h.service.Follow(r.Context(), userID, mux.Vars(r)["userID"])
	if err != nil {
		h.writeError(w, "follow", err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, InteractionResponse{Success: true, Notification: event})
}

func (h *SocialHandler) writeError(w http.ResponseWriter, action string, err error) {
	if appErr := common.AsAppError(err); appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("interaction failed", zap.String("action", action), zap.Error(err))
	}
	common.WriteError(w, err)
}
