package submissions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/shared/server/middleware"
	"resume-quality/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.submit)
	rg.GET("/submissions", h.history)
	rg.GET("/submissions/:id", h.get)
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	in := SubmitInput{
		UserID:     userID,
		TargetRole: c.PostForm("target_role"),
		ResumeText: c.PostForm("resume_text"),
	}

	if fileHeader, err := c.FormFile("resume_file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		defer file.Close()
		in.FileName = fileHeader.Filename
		in.File = file
	}

	sub, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error",
				"provide a resume file (.pdf, .doc, .docx) or pasted resume text", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store submission", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(sub))
}

func (h *Handler) history(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	subs, err := h.Svc.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list submissions", nil)
		}
		return
	}

	resp := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toResponse(sub))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sub, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch submission", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(sub))
}
