package httpapi

import "net/http"

func (a *api) handleGenresList(w http.ResponseWriter, r *http.Request) {
	genres, err := a.catalogSvc.ListGenres(r.Context())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, genres)
}

func (a *api) handleGenresGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	g, err := a.catalogSvc.Genre(r.Context(), id)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, g)
}

func (a *api) handleRatingsList(w http.ResponseWriter, r *http.Request) {
	ratings, err := a.catalogSvc.ListRatings(r.Context())
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ratings)
}

func (a *api) handleRatingsGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	rt, err := a.catalogSvc.Rating(r.Context(), id)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rt)
}
