package router

import (
	"net/http"

	"badge-verifier/internal/handlers"
	"badge-verifier/internal/lookup"
	"badge-verifier/internal/middleware"
	"badge-verifier/internal/store"
	"badge-verifier/internal/web"

	"github.com/gin-gonic/gin"
)

// Setup registers every route. files backs scans of file-issued badges and may be primary itself.
func Setup(r *gin.Engine, primary store.Store, files store.Store) {
	r.Use(middleware.Recovery())

	bh := handlers.NewBadgeHandler(primary, lookup.NewResolver(primary, files))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": primary.Name()})
	})

	r.GET("/", web.Index)
	r.POST("/generate_qr", bh.GenerateQR)
	r.POST("/scan_data", bh.ScanData)
	r.GET("/get_records", bh.GetRecords)
	r.GET("/search_employee", bh.SearchEmployee)
	r.GET("/export_records", bh.ExportRecords)
}
