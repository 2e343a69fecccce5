package httpapi

import (
	"net/http"
)

func (a *api) handleFriendsList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	friends, err := a.friendsSvc.Friends(r.Context(), id)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, friends)
}

func (a *api) handleFriendsCommon(w http.ResponseWriter, r *http.Request) {
	id, otherID, err := pathIDs(r, "id", "otherId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	common, err := a.friendsSvc.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, common)
}

func (a *api) handleFriendsGet(w http.ResponseWriter, r *http.Request) {
	id, friendID, err := pathIDs(r, "id", "friendId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	fs, err := a.friendsSvc.Friendship(r.Context(), id, friendID)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, fs)
}

func (a *api) handleFriendsAdd(w http.ResponseWriter, r *http.Request) {
	id, friendID, err := pathIDs(r, "id", "friendId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	fs, err := a.friendsSvc.AddFriend(r.Context(), id, friendID)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, fs)
}

func (a *api) handleFriendsRemove(w http.ResponseWriter, r *http.Request) {
	id, friendID, err := pathIDs(r, "id", "friendId")
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	fs, err := a.friendsSvc.RemoveFriend(r.Context(), id, friendID)
	if err != nil {
		WriteDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, fs)
}
