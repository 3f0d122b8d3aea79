package file

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filecatalog/internal/pkg/response"
	"filecatalog/internal/pkg/validator"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	service   *Service
	query     *Query
	hub       *Hub
	presenter Presenter
	log       *zap.Logger
}

func NewHandler(service *Service, query *Query, hub *Hub, presenter Presenter, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, query: query, hub: hub, presenter: presenter, log: log}
}

// List godoc
// @Summary List files of a category
// @Tags Files
// @Produce json
// @Param category query string false "Category" default(all)
// @Param year query string false "Creation year"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {object} ListResponse
// @Router /files [get]
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Category: Category(c.DefaultQuery("category", "all")),
		Search:   c.Query("search"),
	}

	if raw := c.Query("year"); raw != "" {
		year, ok := parseYear(raw)
		if !ok {
			// no record has a year spelled like this
			c.JSON(http.StatusOK, ListResponse{Files: []View{}, Count: 0})
			return
		}
		f.Year = &year
	}

	res, err := h.query.List(c.Request.Context(), f)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Files: h.presenter.Views(res.Files),
		Count: res.Count,
	})
}

// GetByID godoc
// @Summary Get file metadata by ID
// @Tags Files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /files/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.presenter.View(*rec))
}

// Upload godoc
// @Summary Register an uploaded file
// @Tags Files
// @Accept json
// @Produce json
// @Param body body UploadRequest true "File metadata and base64 content"
// @Success 201 {object} UploadResponse
// @Failure 400,409,500 {object} map[string]interface{}
// @Router /files [post]
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "invalid JSON body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "invalid request", errs)
		return
	}

	in, err := req.ToInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "content must be base64 encoded")
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{
		Success: true,
		File:    h.presenter.View(*rec),
		Message: h.presenter.UploadedMessage(rec.Name),
	})
}

// Delete godoc
// @Summary Delete a file record
// @Tags Files
// @Produce json
// @Param id path string false "File ID"
// @Param id query string false "File ID (legacy form)"
// @Success 200 {object} DeleteResponse
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /files/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}

	_, err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, DeleteResponse{Success: true, Message: fmt.Sprintf("File %s deleted", id)})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, DeleteResponse{Success: false, Message: "file not found"})
	default:
		h.writeError(c, err)
	}
}

// Categories godoc
// @Summary Record counts per category
// @Tags Files
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (h *Handler) Categories(c *gin.Context) {
	stats, err := h.query.CategoryStats(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// Events upgrades to a websocket that streams catalog events.
func (h *Handler) Events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.ServeWS(conn)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidName):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidName, err.Error())
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidCategory, err.Error())
	case errors.Is(err, ErrInvalidSize):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidSize, err.Error())
	case errors.Is(err, ErrMissingID):
		response.Error(c, http.StatusBadRequest, response.CodeMissingID, err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, ErrDuplicateID):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, "internal server error")
}

// parseYear accepts only the canonical decimal spelling, so "+2023" and
// "02023" do not match 2023.
func parseYear(raw string) (int, bool) {
	year, err := strconv.Atoi(raw)
	if err != nil || strconv.Itoa(year) != raw {
		return 0, false
	}
	return year, true
}
