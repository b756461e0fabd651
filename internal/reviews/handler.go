package reviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-quality/internal/analysis"
	"resume-quality/internal/extract"
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

// RegisterRoutes attaches review routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.review)
}

func (h *Handler) review(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume_file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	jobDescription := c.PostForm("job_description")

	feedback, err := h.Svc.Review(c.Request.Context(), userID, fileHeader.Filename, file, jobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, extract.ErrUnsupportedFormat):
			respond.Error(c, http.StatusBadRequest, "validation_error",
				"provide a resume file with a .pdf, .docx, or .txt extension", nil)
		case errors.Is(err, analysis.ErrEmptyDocument):
			respond.Error(c, http.StatusUnprocessableEntity, "empty_document",
				"no text could be extracted from the resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "analysis_failed", "failed to analyze resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"feedback": feedback})
}
