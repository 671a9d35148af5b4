package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docfolio/internal/app"
	"docfolio/internal/ingest"
	"docfolio/internal/transport/http/response"
)

type DocumentHandler struct {
	ingestService *app.IngestService
}

func NewDocumentHandler(ingestService *app.IngestService) *DocumentHandler {
	return &DocumentHandler{ingestService: ingestService}
}

// Upload accepts a multipart batch under the "files" field. Extraction
// failures are reported per file; the batch itself succeeds when at least
// the well-formed files could be ingested.
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid multipart payload")
		return
	}

	headers := form.File["files"]
	files := make([]ingest.File, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open uploaded file failed")
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read uploaded file failed")
			return
		}
		files = append(files, ingest.File{
			Name:     header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	result, err := h.ingestService.Upload(c.Request.Context(), app.UploadInput{
		UserID:      userID,
		WorkspaceID: c.Param("id"),
		Files:       files,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrEmptyBatch), errors.Is(err, app.ErrBatchTooLarge):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrWorkspaceNotFound):
			response.Error(c, http.StatusNotFound, response.CodeWorkspaceNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	documents, err := h.ingestService.ListDocuments(userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrWorkspaceNotFound):
			response.Error(c, http.StatusNotFound, response.CodeWorkspaceNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		}
		return
	}

	response.OK(c, documents)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	documentID := c.Param("id")
	if err := h.ingestService.DeleteDocument(userID, documentID); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		}
		return
	}

	response.OK(c, gin.H{"deleted_document_id": documentID})
}
