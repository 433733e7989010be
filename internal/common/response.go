package common

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: message})
}

// WriteError renders err with the status of its catalogue entry. Wrapped causes are not exposed.
func WriteError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	msg := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		msg = "An unexpected error occurred. Please try again later."
	}
	WriteJSON(w, appErr.Status, ErrorResponse{
		Success: false,
		Code:    appErr.Code,
		Message: msg,
	})
}

// DecodeJSON reads the request body into v and validates it.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return BadRequest("invalid request body")
	}
	return Validate(v)
}
