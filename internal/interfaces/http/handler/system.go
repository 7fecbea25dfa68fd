package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthTimeout bounds all dependency checks of one health request
const healthTimeout = 3 * time.Second

// HealthCheck probes one dependency
type HealthCheck struct {
	Name string
	// Critical checks turn the service unhealthy when they fail
	Critical bool
	Check    func(ctx context.Context) error
	// Details, when set, adds a snapshot of the dependency to the report
	Details func() any
}

// SessionCounter reports the number of open sale sessions
type SessionCounter interface {
	Len() int
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	sessions  SessionCounter
	checks    []HealthCheck
}

// NewSystemHandler creates a new SystemHandler. sessions may be nil.
func NewSystemHandler(name, version string, sessions SessionCounter, checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		sessions:  sessions,
		checks:    checks,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	Uptime       string `json:"uptime"`
	OpenSessions int    `json:"open_sessions"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns name, version, uptime and the number of open sale sessions
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.sessions != nil {
		info.OpenSessions = h.sessions.Len()
	}
	h.Success(c, info)
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping godoc
// @Summary      Ping the API
// @Description  Liveness check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=PingResponse}
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HealthResponse is the readiness report
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Checks  map[string]string `json:"checks"`
	Details map[string]any    `json:"details,omitempty"`
}

// Health runs the dependency checks. It answers 503 when a critical check
// fails and reports "degraded" when only optional ones do.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
		Checks: make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK
	for _, check := range h.checks {
		if check.Details != nil {
			if resp.Details == nil {
				resp.Details = make(map[string]any)
			}
			resp.Details[check.Name] = check.Details()
		}
		if err := check.Check(ctx); err != nil {
			resp.Checks[check.Name] = "unhealthy"
			logger.GetGinLogger(c).Warn("health check failed",
				zap.String("check", check.Name),
				zap.Error(err))
			if check.Critical {
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			} else if resp.Status == "healthy" {
				resp.Status = "degraded"
			}
			continue
		}
		resp.Checks[check.Name] = "healthy"
	}
	body := dto.NewSuccessResponse(resp)
	body.Success = status == http.StatusOK
	c.JSON(status, body)
}
