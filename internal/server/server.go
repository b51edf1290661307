// internal/server/server.go - HTTP tile delivery
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"mvtserve/internal/config"
	"mvtserve/internal/service"
)

// Server exposes the tile service over HTTP.
type Server struct {
	svc *service.MVTService
	cfg *config.ServerConfig
}

func New(svc *service.MVTService, cfg *config.ServerConfig) *Server {
	return &Server{svc: svc, cfg: cfg}
}

// Run blocks serving tile requests until the listener fails.
func (s *Server) Run() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.GET("/tiles/:tileset/:z/:x/:y", s.handleTile)

	addr := fmt.Sprintf("%s:%d", s.cfg.Bind, s.cfg.Port)
	log.Infof("serving tiles on http://%s/tiles/{tileset}/{z}/{x}/{y}.pbf", addr)
	return router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTile(c *gin.Context) {
	tileset := c.Param("tileset")

	z, errZ := parseCoord(c.Param("z"))
	x, errX := parseCoord(c.Param("x"))
	y, errY := parseCoord(c.Param("y"))
	if errZ != nil || errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tile coordinates must be unsigned integers"})
		return
	}

	tile, err := s.svc.Tile(c.Request.Context(), tileset, x, y, z)
	if err != nil {
		requestID := uuid.NewString()
		log.WithField("request_id", requestID).Errorf("tile %s/%d/%d/%d failed: %v", tileset, z, x, y, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "tile generation failed",
			"request_id": requestID,
		})
		return
	}

	data, err := tile.Marshal()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tile encoding failed"})
		return
	}

	c.Data(http.StatusOK, "application/x-protobuf", data)
}

// parseCoord parses one tile path segment, tolerating a trailing tile
// extension on the row segment.
func parseCoord(s string) (uint32, error) {
	s = strings.TrimSuffix(s, ".pbf")
	s = strings.TrimSuffix(s, ".mvt")
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
