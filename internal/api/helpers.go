package api

import (
	"net/http"
)

// findByID returns the element of list whose id matches, or nil.
func findByID[T any](list []T, id string, key func(*T) string) *T {
	for i := range list {
		if key(&list[i]) == id {
			return &list[i]
		}
	}
	return nil
}

// respondMutation writes rec. A nil rec is a 404 when the target was not in
// the mirror beforehand, and a failed write otherwise.
func respondMutation[T any](w http.ResponseWriter, rec *T, existed bool, what string) {
	switch {
	case rec != nil:
		jsonResponse(w, http.StatusOK, rec)
	case !existed:
		jsonError(w, http.StatusNotFound, what+" not found")
	default:
		jsonError(w, http.StatusInternalServerError, "failed to update "+what)
	}
}

func respondDelete(w http.ResponseWriter, ok, existed bool, what string) {
	switch {
	case ok:
		w.WriteHeader(http.StatusNoContent)
	case !existed:
		jsonError(w, http.StatusNotFound, what+" not found")
	default:
		jsonError(w, http.StatusInternalServerError, "failed to delete "+what)
	}
}
