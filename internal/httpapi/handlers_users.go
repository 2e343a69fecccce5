package httpapi

import (
	"net/http"

	"filmorate/internal/domain"
)

func (a *api) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.usersSvc.List(r.Context())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

func (a *api) handleUsersGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	u, err := a.usersSvc.Get(r.Context(), id)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (a *api) handleUsersCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.User
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	u, err := a.usersSvc.Create(r.Context(), req)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, u)
}

func (a *api) handleUsersUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.User
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	u, err := a.usersSvc.Update(r.Context(), req)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (a *api) handleUsersDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	if err := a.usersSvc.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
