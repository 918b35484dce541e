package handler

import (
	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/pkg/logger"
	internalWS "portfolio-terminal/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ActivityHandler upgrades owner dashboard connections onto the live
// activity feed.
type ActivityHandler struct {
	hub       *internalWS.Hub
	logger    logger.ILogger
	jwtSecret string
}

func NewActivityHandler(hub *internalWS.Hub, log logger.ILogger, cfg config.AdminConfig) *ActivityHandler {
	return &ActivityHandler{
		hub:       hub,
		logger:    log,
		jwtSecret: cfg.JWTSecret,
	}
}

// ServeWs authenticates the handshake and hands the connection to the hub.
// The route carries its own token check because browsers cannot set an
// Authorization header on a websocket upgrade.
func (h *ActivityHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Token source. Priority 1: query param (browser standard).
	tokenStr := c.Query("token")

	// Priority 2: Authorization header (tooling standard).
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Parse and verify with the same secret the admin middleware uses.
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ActivityHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Only the owner gets the feed.
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: Admins only"})
	}

	// 4. Upgrade and block for the connection's lifetime.
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ActivityHandler", "Dashboard feed connected", map[string]interface{}{"clients": h.hub.ClientCount() + 1})
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("ActivityHandler", "Dashboard feed disconnected", map[string]interface{}{"clients": h.hub.ClientCount()})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the feed endpoint. It must be mounted before the
// admin JWT middleware; authentication happens inside the handshake.
func (h *ActivityHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/admin/activity/ws", h.ServeWs)
}
