package notif

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"zentra/internal/common"
)

type NotificationHandler struct {
	service *NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(service *NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, logger: logger}
}

// Register mounts the routes on r. r must resolve the current user.
func (h *NotificationHandler) Register(r *mux.Router) {
	r.HandleFunc("/notifications", h.List).Methods(http.MethodGet)
	r.HandleFunc("/notifications", h.Trigger).Methods(http.MethodPost)
	r.HandleFunc("/notifications/unread-count", h.UnreadCount).Methods(http.MethodGet)
	r.HandleFunc("/notifications/read/{id}", h.MarkRead).Methods(http.MethodPut)
	r.HandleFunc("/notifications/{id}", h.Delete).Methods(http.MethodDelete)
}

type ListResponse struct {
	Success       bool            `json:"success"`
	Notifications []EnrichedEvent `json:"notifications"`
}

type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

type TriggerRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=like comment reply follow"`
	RecipientID string `json:"recipientId" validate:"required"`
	SubjectID   string `json:"subjectId"`
}

type TriggerResponse struct {
	Success      bool           `json:"success"`
	Notification *EnrichedEvent `json:"notification,omitempty"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	events, err := h.service.ListForRecipient(r.Context(), userID)
	if err != nil {
		h.logger.Error("list notifications failed", zap.String("recipient_id", userID), zap.Error(err))
		common.WriteError(w, err)
		return
	}
	if events == nil {
		events = []EnrichedEvent{}
	}
	common.WriteJSON(w, http.StatusOK, ListResponse{Success: true, Notifications: events})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, CountResponse{Success: true, Count: count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.MarkRead(r.Context(), userID, id); err != nil {
		common.WriteError(w, err)
		return
	}
	if id == common.AllSelector {
		common.WriteMessage(w, "All notifications marked as read")
		return
	}
	common.WriteMessage(w, "Notification marked as read")
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		common.WriteError(w, err)
		return
	}
	if id == common.AllSelector {
		common.WriteMessage(w, "All notifications deleted")
		return
	}
	common.WriteMessage(w, "Notification deleted")
}

// Trigger records a notification from the current user. Self-notifications
// succeed without creating anything.
func (h *NotificationHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFrom(r.Context())

	var req TriggerRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}

	event, err := h.service.Notify(r.Context(), NotifyInput{
		Kind:        common.EventKind(req.Kind),
		SenderID:    userID,
		RecipientID: req.RecipientID,
		SubjectID:   req.SubjectID,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if event == nil {
		status = http.StatusOK
	}
	common.WriteJSON(w, status, TriggerResponse{Success: true, Notification: event})
}
