package controller

import (
	"os"
	"strings"
	"time"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/dto"
	"portfolio-terminal/internal/service"
	"portfolio-terminal/pkg/terminal"

	"github.com/gofiber/fiber/v2"
)

type ITerminalController interface {
	RegisterRoutes(r fiber.Router)
	ExecuteCommand(ctx *fiber.Ctx) error
	DownloadCV(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type terminalController struct {
	commandService service.ICommandService
	cvFilePath     string
	startedAt      time.Time
}

func NewTerminalController(commandService service.ICommandService, cfg config.AppConfig) ITerminalController {
	return &terminalController{
		commandService: commandService,
		cvFilePath:     cfg.CVFilePath,
		startedAt:      time.Now(),
	}
}

func (c *terminalController) RegisterRoutes(r fiber.Router) {
	r.Post("/command", c.ExecuteCommand)
	r.Get("/download/cv", c.DownloadCV)
	r.Get("/health", c.Health)
}

func (c *terminalController) ExecuteCommand(ctx *fiber.Ctx) error {
	var req dto.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// 1. Empty input is answered at the boundary, the dispatcher only ever
	// sees real tokens.
	if strings.TrimSpace(req.Command) == "" {
		return ctx.JSON(terminal.Error(constant.EmptyCommandText))
	}

	// 2. Dispatch. Domain failures come back as error-kind responses, so the
	// status is 200 for every handled outcome.
	res := c.commandService.Execute(ctx.Context(), req.Command)
	return ctx.JSON(res)
}

func (c *terminalController) DownloadCV(ctx *fiber.Ctx) error {
	if _, err := os.Stat(c.cvFilePath); err != nil {
		// The client surfaces this like any other command reply instead of a
		// browser error page.
		return ctx.JSON(terminal.Error(constant.CVMissingText))
	}

	return ctx.Download(c.cvFilePath, constant.CVAttachmentName)
}

func (c *terminalController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(c.startedAt).Round(time.Second).String(),
	})
}
