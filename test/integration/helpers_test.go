package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/controller"
	"portfolio-terminal/internal/pkg/logger"
	"portfolio-terminal/internal/pkg/serverutils"
	"portfolio-terminal/internal/repository/memory"
	"portfolio-terminal/internal/service"
	"portfolio-terminal/pkg/chat/session"
	"portfolio-terminal/pkg/chat/state"
	"portfolio-terminal/pkg/llm"
	"portfolio-terminal/pkg/store"
	"portfolio-terminal/pkg/terminal"
	"portfolio-terminal/pkg/usage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// The suite wires real services onto a fiber app the same way the server
// does, swapping only the outbound edges (mail, events, the model) for
// in-memory fakes.

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendVisitorMessage(message string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, message)
	return nil
}

type stubPublisher struct{}

func (stubPublisher) Publish(context.Context, []byte) error { return nil }

// scriptedProvider answers every chat with a fixed reply.
type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, options...)
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(serverutils.ErrorHandlerMiddleware())
	return app
}

func newSessionManager() *session.Manager {
	return session.NewManager(memory.NewSessionRepository(time.Minute))
}

func quietStateManager() *state.Manager {
	return state.NewManager(log.New(io.Discard, "", 0))
}

func newTerminalApp(cvPath string) (*fiber.App, *session.Manager) {
	app := newApp()
	manager := newSessionManager()
	svc := service.NewCommandService(
		manager,
		quietStateManager(),
		&stubMailer{},
		usage.NewCollector(),
		stubPublisher{},
		nil,
	)
	controller.NewTerminalController(svc, config.AppConfig{CVFilePath: cvPath}).RegisterRoutes(app)
	return app, manager
}

func newChatApp(provider llm.LLMProvider, aiCfg config.AIConfig) *fiber.App {
	app := newApp()
	svc := service.NewChatService(
		aiCfg,
		newSessionManager(),
		quietStateManager(),
		provider,
		stubPublisher{},
		nil,
	)
	controller.NewChatController(svc, aiCfg).RegisterRoutes(app)
	return app
}

func newAdminApp(t *testing.T, adminCfg config.AdminConfig) (*fiber.App, logger.ILogger) {
	t.Helper()
	app := newApp()
	sysLogger := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "app.log"))
	svc := service.NewAdminService(adminCfg, sysLogger, usage.NewCollector(), newSessionManager())
	controller.NewAdminController(svc, adminCfg).RegisterRoutes(app.Group("/api"))
	return app, sysLogger
}

func defaultAIConfig() config.AIConfig {
	return config.AIConfig{
		Temperature:          0.2,
		MaxInputChars:        500,
		MaxConversationTurns: 10,
		DailyChatLimit:       -1,
		BurstChatLimit:       100,
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeTerminal(t *testing.T, resp *http.Response) terminal.Response {
	t.Helper()
	var res terminal.Response
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode terminal response: %v", err)
	}
	return res
}

func loadSession(t *testing.T, manager *session.Manager, id string) *store.Session {
	t.Helper()
	sess, err := manager.LoadOrCreate(context.Background(), id)
	if err != nil {
		t.Fatalf("LoadOrCreate(%s): %v", id, err)
	}
	return sess
}
