package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"filmorate/internal/domain"
	"filmorate/internal/logging"
)

const (
	codeValidation    = "VALIDATION_FAILED"
	codeNotFound      = "NOT_FOUND"
	codeAlreadyExists = "ALREADY_EXISTS"
	codeRateLimited   = "RATE_LIMITED"
	codeInternal      = "INTERNAL"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		WriteError(w, http.StatusBadRequest, codeAlreadyExists, err.Error())
	default:
		logging.FromContext(r.Context()).Error("request failed", "err", err)
		WriteError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
