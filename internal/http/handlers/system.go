package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StoreChecker interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type SystemHandler struct {
	Store  StoreChecker
	Routes func() gin.RoutesInfo
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "dashboard backend running"})
}

func (h SystemHandler) DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Store.Ping(ctx); err != nil {
		RespondDomainError(c, err)
		return
	}
	count, err := h.Store.Count(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trips_in_db": count})
}

func (h SystemHandler) ListRoutes(c *gin.Context) {
	if h.Routes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}
	routes := h.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
