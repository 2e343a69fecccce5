package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"filmorate/internal/domain"
)

func (a *api) handleFilmsList(w http.ResponseWriter, r *http.Request) {
	films, err := a.filmsSvc.List(r.Context())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, films)
}

func (a *api) handleFilmsGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	f, err := a.filmsSvc.Get(r.Context(), id)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, f)
}

func (a *api) handleFilmsCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.Film
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	f, err := a.filmsSvc.Create(r.Context(), req)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, f)
}

func (a *api) handleFilmsUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.Film
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	f, err := a.filmsSvc.Update(r.Context(), req)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, f)
}

func (a *api) handleFilmsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	if err := a.filmsSvc.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleFilmsLike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := pathIDs(r, "id", "userId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	if err := a.filmsSvc.AddLike(r.Context(), filmID, userID); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleFilmsUnlike(w http.ResponseWriter, r *http.Request) {
	filmID, userID, err := pathIDs(r, "id", "userId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	if err := a.filmsSvc.RemoveLike(r.Context(), filmID, userID); err != nil {
		WriteDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleFilmsPopular(w http.ResponseWriter, r *http.Request) {
	count := a.popularDefault
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteDomainError(w, r, domain.NewValidationError(map[string]string{
				"count": fmt.Sprintf("must be an integer, got %q", raw),
			}))
			return
		}
		count = n
	}

	films, err := a.filmsSvc.Popular(r.Context(), count)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, films)
}
