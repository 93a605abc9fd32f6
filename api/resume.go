package api

import (
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResume accepts a multipart form with an email field and the document
// in either the "resume" or the "file" field.
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeFailure(w, "Invalid upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	email := r.FormValue("email")
	if email == "" {
		writeFailure(w, "Missing fields")
		return
	}

	file, header, err := formFile(r, "resume", "file")
	if err != nil {
		writeFailure(w, "Missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, "Invalid upload")
		return
	}

	if err := h.svc.UploadResume(r.Context(), email, header.Filename, data); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "")
}

// formFile returns the first of fields present in the form.
func formFile(r *http.Request, fields ...string) (multipart.File, *multipart.FileHeader, error) {
	var lastErr error
	for _, f := range fields {
		file, header, err := r.FormFile(f)
		if err == nil {
			return file, header, nil
		}
		lastErr = err
	}
	return nil, nil, lastErr
}
