package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/live"
	"github.com/IvanREAL05/control-actividades-sub000/internal/service"
	"github.com/IvanREAL05/control-actividades-sub000/pkg/response"
)

// WSHandler upgrades live table subscriptions.
type WSHandler struct {
	hub         *live.Hub
	snapshotSvc service.SnapshotService
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewWSHandler builds the WSHandler.
func NewWSHandler(hub *live.Hub, snapshotSvc service.SnapshotService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:         hub,
		snapshotSvc: snapshotSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from configured origins; CORS is
			// enforced at the HTTP layer and the socket carries no
			// credentials, so the upgrade accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Tabla subscribes a dashboard to the live table of one class. The
// snapshot is delivered as the first frame, before any event.
// GET /ws/tabla/:id_clase
func (h *WSHandler) Tabla(c *gin.Context) {
	idClase, err := strconv.ParseUint(c.Param("id_clase"), 10, 32)
	if err != nil || idClase == 0 {
		response.BadRequest(c, "parametros_invalidos", "id de clase inválido")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("fallo al actualizar a websocket", zap.Error(err))
		return
	}

	// The hub builds the snapshot under its lock so no event published
	// during the subscription can slip between snapshot and stream.
	cliente := live.NewClient(h.hub, conn, uint(idClase), h.logger)
	err = h.hub.Subscribe(cliente, func() ([]byte, error) {
		return h.snapshotSvc.SnapshotJSON(c.Request.Context(), uint(idClase))
	})
	if err != nil {
		h.logger.Error("fallo al construir snapshot",
			zap.Uint("id_clase", uint(idClase)), zap.Error(err))
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot no disponible")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	cliente.Start()
}
