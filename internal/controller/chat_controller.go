package controller

import (
	"errors"
	"fmt"
	"time"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/dto"
	"portfolio-terminal/internal/service"
	"portfolio-terminal/pkg/terminal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	burstLimit  int
}

func NewChatController(chatService service.IChatService, cfg config.AIConfig) IChatController {
	return &chatController{
		chatService: chatService,
		burstLimit:  cfg.BurstChatLimit,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.burstLimiter(), c.SendChat)
}

// burstLimiter throttles rapid-fire posts per client IP before they reach the
// provider. The 429 body keeps the kind-tagged contract so the client renders
// it like any other reply.
func (c *chatController) burstLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        c.burstLimit,
		Expiration: 30 * time.Second,
		LimitReached: func(ctx *fiber.Ctx) error {
			var req dto.ChatRequest
			_ = ctx.BodyParser(&req)

			res := terminal.Error(constant.ChatBurstLimitText)
			if req.SessionID != nil {
				res.SessionID = *req.SessionID
			}
			return ctx.Status(fiber.StatusTooManyRequests).JSON(res)
		},
	})
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	// 1. Parse body. Message-level validation (empty, too long, injection)
	// lives in the service guards so the reply stays terminal-styled.
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// 2. Run the chat flow.
	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		// 3. The daily quota is the one domain error that changes the HTTP
		// status; every other outcome is folded into the response kinds.
		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			out := terminal.Error(fmt.Sprintf(constant.ChatDailyLimitTextFmt, limitErr.Limit))
			if req.SessionID != nil {
				out.SessionID = *req.SessionID
			}
			return ctx.Status(fiber.StatusTooManyRequests).JSON(out)
		}
		return err
	}

	return ctx.JSON(res)
}
