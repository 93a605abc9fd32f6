package api

import "net/http"

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListNews(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, items)
}
