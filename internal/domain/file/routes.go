package file

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the catalog under r. DELETE /files?id= is kept for
// clients of the old single-endpoint API.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	files := r.Group("/files")
	{
		files.GET("", h.List)
		files.POST("", h.Upload)
		files.DELETE("", h.Delete)
		files.GET("/:id", h.GetByID)
		files.DELETE("/:id", h.Delete)
	}
	r.GET("/categories", h.Categories)
	r.GET("/events", h.Events)
}
