package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-shop-api/internal/application/media"
)

// MediaHandler handles S3-backed image uploads for products and avatars.
type MediaHandler struct {
	svc media.Service
}

func NewMediaHandler(svc media.Service) *MediaHandler { return &MediaHandler{svc: svc} }

// Upload accepts a multipart image. The folder query parameter groups
// objects (products, avatars); keys are server-generated.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	result, err := h.svc.Upload(r.Context(), r.URL.Query().Get("folder"), header.Filename, f, header.Header.Get("Content-Type"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *MediaHandler) UploadBase64(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileName string `json:"file_name"`
		Folder   string `json:"folder"`
		Base64   string `json:"base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.UploadBase64(r.Context(), body.Folder, body.FileName, body.Base64)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// DownloadURL returns a time-limited presigned URL for the given key.
func (h *MediaHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	url, err := h.svc.DownloadURL(r.Context(), key)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
