package handlers

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sagacms/internal/middleware"
	"sagacms/internal/models"
	"sagacms/internal/storage"
	"sagacms/internal/store"
)

// maxUploadSize is the maximum allowed file upload size (10 MB). Uploads
// are startup logos and OG cover images, so anything larger is a mistake.
const maxUploadSize = 10 << 20

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Media groups the media upload and management handlers.
type Media struct {
	mediaStore    *store.MediaStore
	storageClient *storage.Client
}

// NewMedia creates the media handler group. storageClient may be nil when
// S3 is not configured; uploads then return 503.
func NewMedia(mediaStore *store.MediaStore, storageClient *storage.Client) *Media {
	return &Media{mediaStore: mediaStore, storageClient: storageClient}
}

// mediaView is a media record plus its public URL.
type mediaView struct {
	models.Media
	URL string `json:"url"`
}

func (h *Media) view(m *models.Media) mediaView {
	return mediaView{Media: *m, URL: h.storageClient.FileURL(m.S3Key)}
}

// List returns uploaded media with public URLs.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	limit, offset := pagination(r)
	items, err := h.mediaStore.List(limit, offset)
	if err != nil {
		slog.Error("media list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	views := make([]mediaView, 0, len(items))
	for i := range items {
		views = append(views, h.view(&items[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": views})
}

// Upload handles multipart file upload to S3. The stored filename is a
// UUID; the original name is kept for display.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	if contentType == "text/xml; charset=utf-8" && filepath.Ext(header.Filename) == ".svg" {
		contentType = "image/svg+xml"
	}
	if !allowedMediaTypes[contentType] {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	filename := uuid.NewString() + filepath.Ext(header.Filename)
	key := "uploads/" + filename

	if err := h.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "storage upload failed")
		return
	}

	created, err := h.mediaStore.Create(&models.Media{
		Filename:     filename,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    header.Size,
		Bucket:       h.storageClient.Bucket(),
		S3Key:        key,
		UploaderID:   sess.UserID,
	})
	if err != nil {
		slog.Error("media record create failed", "key", key, "error", err)
		h.storageClient.Delete(r.Context(), key)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("media uploaded", "key", key, "size", header.Size, "uploader", sess.Email)
	writeJSON(w, http.StatusCreated, h.view(created))
}

type altTextRequest struct {
	AltText *string `json:"alt_text"`
}

// UpdateAltText sets the accessibility alt text on a media record.
func (h *Media) UpdateAltText(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	var req altTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.mediaStore.UpdateAltText(id, req.AltText); err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "media not found")
			return
		}
		slog.Error("alt text update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// Delete removes the object from storage and the database record.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	m, err := h.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	if err := h.storageClient.Delete(r.Context(), m.S3Key); err != nil {
		slog.Error("storage delete failed", "key", m.S3Key, "error", err)
		writeError(w, http.StatusBadGateway, "storage delete failed")
		return
	}

	if err := h.mediaStore.Delete(id); err != nil {
		slog.Error("media record delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
