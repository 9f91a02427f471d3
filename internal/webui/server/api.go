package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cliprobe/internal/service"
	"cliprobe/internal/settings"
	"cliprobe/internal/status"
	"cliprobe/internal/tools"
	appver "cliprobe/internal/version"
)

type handlers struct {
	svc *service.Service
}

func mountAPIGin(r *gin.Engine, svc *service.Service) {
	h := &handlers{svc: svc}
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"version": appver.AppVersion})
	})

	st := api.Group("/settings")
	st.GET("/cli-status", h.cliStatus)
	st.GET("/cli-status/:cli", h.cliStatusOne)
	st.GET("/probe/:cli", h.probe)
	st.GET("/global", h.getGlobal)
	st.PUT("/global", h.putGlobal)
	st.GET("/schema", h.schema)
	st.POST("/test-permission-mode", h.testPermissionMode)
}

func (h *handlers) cliStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.AggregatedStatus(c.Request.Context()).Entries())
}

func (h *handlers) cliStatusOne(c *gin.Context) {
	rec, err := h.svc.CheckAvailability(c.Request.Context(), tools.CLIType(c.Param("cli")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status.EntryFrom(rec))
}

func (h *handlers) probe(c *gin.Context) {
	res, err := h.svc.Probe(c.Request.Context(), tools.CLIType(c.Param("cli")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) getGlobal(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings())
}

// UpdateResponse is the body returned by PUT /api/settings/global.
type UpdateResponse struct {
	Success  bool                    `json:"success"`
	Settings settings.GlobalSettings `json:"settings"`
}

func (h *handlers) putGlobal(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	if err := settings.Validate(raw); err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	var next settings.GlobalSettings
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	saved, err := h.svc.ReplaceSettings(next)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, settings.ErrInvalid) {
			code = http.StatusBadRequest
		}
		c.JSON(code, errJSON(err))
		return
	}
	c.JSON(http.StatusOK, UpdateResponse{Success: true, Settings: saved})
}

func (h *handlers) schema(c *gin.Context) {
	b, err := settings.MarshalSchema(settings.Schema())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errJSON(err))
		return
	}
	c.Data(http.StatusOK, "application/schema+json", b)
}

// PermissionRequest is the body of POST /api/settings/test-permission-mode.
type PermissionRequest struct {
	PermissionMode string `json:"permission_mode"`
}

func (h *handlers) testPermissionMode(c *gin.Context) {
	var req PermissionRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errJSON(err))
		return
	}
	c.JSON(http.StatusOK, h.svc.VerifyPermissionMode(c.Request.Context(), req.PermissionMode))
}

func writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownCLI) {
		c.JSON(http.StatusNotFound, errJSON(err))
		return
	}
	c.JSON(http.StatusInternalServerError, errJSON(err))
}

func errJSON(err error) map[string]string { return map[string]string{"error": err.Error()} }
