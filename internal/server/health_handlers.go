package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

// LivenessCheck handles GET /health/live. It answers as long as the process
// can serve requests; no dependencies are consulted.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return models.RespondData(c, fiber.StatusOK, fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /health/ready. It reports degraded with a 503
// when the database or Redis is unreachable. Redis is optional at startup, so
// a nil client reports "disabled" rather than failing readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "unavailable"
		healthy = false
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unavailable"
		healthy = false
	} else if err := sqlDB.PingContext(c.Context()); err != nil {
		dbStatus = "unavailable"
		healthy = false
	}
	checks["database"] = dbStatus

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "ok"
		if err := s.redis.Ping(c.Context()).Err(); err != nil {
			redisStatus = "unavailable"
			healthy = false
		}
	}
	checks["redis"] = redisStatus

	status := fiber.StatusOK
	overall := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}

	return models.RespondData(c, status, fiber.Map{
		"status": overall,
		"checks": checks,
	})
}
