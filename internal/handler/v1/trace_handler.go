package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/sanavia/clinica/internal/service"
)

type TraceHandler struct {
	traces *service.TraceService
}

func NewTraceHandler(traces *service.TraceService) *TraceHandler {
	return &TraceHandler{traces: traces}
}

func (h *TraceHandler) ListAll(c *gin.Context) {
	entries, err := h.traces.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *TraceHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	entry, err := h.traces.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entry)
}

func (h *TraceHandler) ListByEntity(c *gin.Context) {
	id, ok := parseUUID(c, "entidadId")
	if !ok {
		return
	}
	entries, err := h.traces.ListByEntity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}
