package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plantheque/backend/internal/domain"
	"github.com/plantheque/backend/internal/usecase"
)

// allowedPhotoExt lists the accepted photo upload extensions
var allowedPhotoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	plants    *usecase.PlantService
	uploadDir string
}

// NewHandler creates a new HTTP handler
func NewHandler(plants *usecase.PlantService, uploadDir string) *Handler {
	return &Handler{
		plants:    plants,
		uploadDir: uploadDir,
	}
}

// serviceReady guards endpoints against a handler wired without its
// service (tests, partial deployments)
func (h *Handler) serviceReady(c *gin.Context) bool {
	if h.plants == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "plant service not configured",
		})
		return false
	}
	return true
}

// renderError translates domain errors into HTTP status codes
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPlantNotFound),
		errors.Is(err, domain.ErrNoRecord),
		errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "plantheque-backend",
		"version": "1.0.0",
	})
}

// Search handles plant search requests: local results first, the web
// source when local results run short or force_web is set
func (h *Handler) Search(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	forceWeb := strings.EqualFold(c.Query("force_web"), "true")

	result, err := h.plants.Search(c.Request.Context(), query, forceWeb)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PlantDetail extracts the full attribute record of one product page
func (h *Handler) PlantDetail(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	detail, err := h.plants.GetDetail(c.Request.Context(), strings.TrimSpace(c.Query("url")))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// PlantCare resolves the plant on the care source and extracts its care
// record. A low-confidence match still answers, with a warning attached.
func (h *Handler) PlantCare(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	latin := strings.TrimSpace(c.Query("latin"))
	french := strings.TrimSpace(c.Query("francais"))

	care, resolution, err := h.plants.GetCare(c.Request.Context(), latin, french)
	if err != nil {
		if errors.Is(err, domain.ErrLowConfidence) && care != nil {
			c.JSON(http.StatusOK, gin.H{
				"care":       care,
				"resolution": resolution,
				"warning":    "match confidence below threshold",
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"care":       care,
		"resolution": resolution,
	})
}

// ListLibrary returns every entry of the curated library
func (h *Handler) ListLibrary(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	entries, err := h.plants.Library(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.LibraryEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// addLibraryRequest is the POST /api/library/add payload
type addLibraryRequest struct {
	Plant    domain.PlantSummary `json:"plant"`
	Quantity int                 `json:"quantity"`
	Notes    string              `json:"notes"`
}

// AddToLibrary adds a plant to the curated library
func (h *Handler) AddToLibrary(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	var req addLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plant data required"})
		return
	}

	entry, err := h.plants.AddToLibrary(c.Request.Context(), &req.Plant, req.Quantity, req.Notes)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Plante ajoutée à la bibliothèque",
		"entry":   entry,
	})
}

// UploadPhoto stores an uploaded photo for a library entry and records
// its serving path
func (h *Handler) UploadPhoto(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPhotoExt[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported photo format %q", ext)})
		return
	}

	// Client filenames never touch the filesystem
	name := uuid.New().String() + ext

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	photoPath := path.Join("uploads", name)
	if err := h.plants.UpdatePhoto(c.Request.Context(), entryID, photoPath); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"photo_path": photoPath,
	})
}

// Stats aggregates the library for the dashboard
func (h *Handler) Stats(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	stats, err := h.plants.Stats(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Suggestions returns one scraped result per fixed suggestion query
func (h *Handler) Suggestions(c *gin.Context) {
	if !h.serviceReady(c) {
		return
	}

	c.JSON(http.StatusOK, h.plants.Suggestions(c.Request.Context()))
}
