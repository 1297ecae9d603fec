package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The public API speaks a flat Spanish envelope: `success`, `mensaje`, plus
// outcome flags merged at the top level (`nuevo`, `duplicado`, ...). Errors
// additionally carry a stable machine-readable `error` kind.

// OK writes a 200 success envelope, merging any extra outcome fields.
func OK(c *gin.Context, mensaje string, extra gin.H) {
	body := gin.H{"success": true, "mensaje": mensaje}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Data writes a 200 success envelope around a single data object.
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Error writes an error envelope with a stable error kind.
func Error(c *gin.Context, httpStatus int, kind, mensaje string) {
	c.JSON(httpStatus, gin.H{"success": false, "error": kind, "mensaje": mensaje})
}

// ── shortcuts ──

// BadRequest 400
func BadRequest(c *gin.Context, kind, mensaje string) {
	Error(c, http.StatusBadRequest, kind, mensaje)
}

// NotFound 404
func NotFound(c *gin.Context, kind, mensaje string) {
	Error(c, http.StatusNotFound, kind, mensaje)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "interno", "error interno del servidor")
}

// StorageUnavailable 503
func StorageUnavailable(c *gin.Context) {
	Error(c, http.StatusServiceUnavailable, "almacen_no_disponible", "almacenamiento no disponible")
}
