package notif

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"zentra/internal/common"
)

func newTestRouter(t *testing.T, f *fixture) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(common.RequireUser(common.HeaderResolver{}))
	NewNotificationHandler(f.svc, zaptest.NewLogger(t)).Register(api)
	return router
}

func do(router http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListAndCount(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(t, f)
	_, err := f.svc.Notify(context.Background(), like("alice", "bob"))
	require.NoError(t, err)

	rec := do(router, http.MethodGet, "/api/v1/notifications", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Alice", list.Notifications[0].Sender.Name)

	rec = do(router, http.MethodGet, "/api/v1/notifications", "carol", "")
	assert.JSONEq(t, `{"success":true,"notifications":[]}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/v1/notifications/unread-count", "bob", "")
	var count CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, int64(1), count.Count)
}

func TestHandler_RequiresIdentity(t *testing.T) {
	router := newTestRouter(t, newFixture(t))
	rec := do(router, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_MarkReadAndDelete(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(t, f)
	event, err := f.svc.Notify(context.Background(), like("alice", "bob"))
	require.NoError(t, err)

	rec := do(router, http.MethodPut, "/api/v1/notifications/read/"+event.ID, "carol", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), common.CodeNotificationNotFound)

	rec = do(router, http.MethodPut, "/api/v1/notifications/read/all", "bob", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All notifications marked as read")

	rec = do(router, http.MethodDelete, "/api/v1/notifications/"+event.ID, "bob", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/notifications/"+event.ID, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodDelete, "/api/v1/notifications/all", "bob", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All notifications deleted")
}

func TestHandler_Trigger(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(t, f)

	rec := do(router, http.MethodPost, "/api/v1/notifications", "alice",
		`{"kind":"follow","recipientId":"bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp TriggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notification)
	assert.Equal(t, common.KindFollow, resp.Notification.Kind)

	rec = do(router, http.MethodPost, "/api/v1/notifications", "bob",
		`{"kind":"follow","recipientId":"bob"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/v1/notifications", "alice",
		`{"kind":"poke","recipientId":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/v1/notifications", "alice", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/v1/notifications", "alice",
		`{"kind":"like","recipientId":"bob","subjectId":"post-404"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
