package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/dto"
	"portfolio-terminal/pkg/chat/access"
	"portfolio-terminal/pkg/chat/guard"
	"portfolio-terminal/pkg/chat/history"
	"portfolio-terminal/pkg/chat/prompt"
	"portfolio-terminal/pkg/chat/session"
	"portfolio-terminal/pkg/chat/state"
	"portfolio-terminal/pkg/events"
	"portfolio-terminal/pkg/llm"
	pktNats "portfolio-terminal/pkg/nats"
	"portfolio-terminal/pkg/store"
	"portfolio-terminal/pkg/terminal"

	"github.com/google/uuid"
)

// IChatService handles the conversational side of the terminal.
type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*terminal.Response, error)
}

// chatService coordinates the chat domain components
type chatService struct {
	sessionManager *session.Manager
	stateManager   *state.Manager
	llmProvider    llm.LLMProvider
	chatLogger     *log.Logger

	accessVerifier *access.Verifier
	systemPrompt   string
	maxInputChars  int
	maxTurns       int
	temperature    float64

	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

// NewChatService creates a chat service with its domain components. A nil
// llmProvider marks the assistant as unavailable; chats then end with a
// server-side chat_end instead of a model reply.
func NewChatService(
	aiCfg config.AIConfig,
	sessionManager *session.Manager,
	stateManager *state.Manager,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IChatService {
	chatLogger := initChatLogger()

	// The knowledge base is read once; edits to the file need a restart.
	promptBuilder := prompt.NewBuilder(aiCfg.KnowledgeBasePath, chatLogger)

	return &chatService{
		sessionManager:   sessionManager,
		stateManager:     stateManager,
		llmProvider:      llmProvider,
		chatLogger:       chatLogger,
		accessVerifier:   access.NewVerifier(aiCfg.DailyChatLimit),
		systemPrompt:     promptBuilder.SystemPrompt(),
		maxInputChars:    aiCfg.MaxInputChars,
		maxTurns:         aiCfg.MaxConversationTurns,
		temperature:      aiCfg.Temperature,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func initChatLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "chat.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[CHAT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendChat processes one chat message end to end: control words, guards,
// quota, model call, then history persistence. A *dto.LimitExceededError
// return means the caller should answer 429.
func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*terminal.Response, error) {
	sessionID := ""
	if req.SessionID != nil {
		sessionID = strings.TrimSpace(*req.SessionID)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// Serialize the read-modify-write so concurrent requests with the same
	// session id cannot interleave history appends.
	unlock := s.sessionManager.Lock(sessionID)
	defer unlock()

	sess, err := s.sessionManager.LoadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// The client only posts here while in chat mode. When the stored session
	// expired or never existed, converge it before handling the message.
	if sess.Mode != store.ModeChat {
		if err := s.stateManager.Transition(sess, state.EventStartChat); err != nil {
			return nil, err
		}
	}

	message := strings.TrimSpace(req.Message)

	// 1. Exit words end the chat without contacting the model.
	if state.IsExitWord(message) {
		return s.endChat(ctx, sess, state.EventUserExit, "user", constant.ChatEndText)
	}

	// 2. In-chat help is answered statically.
	if strings.EqualFold(message, "help") {
		if err := s.sessionManager.Touch(ctx, sess.ID); err != nil {
			s.chatLogger.Printf("touch session %s: %v", sess.ID, err)
		}
		res := terminal.AI(constant.ChatTipsText, sess.ID)
		return &res, nil
	}

	// 3. Guards run before any provider call. Rejections leave history and
	// mode untouched.
	if validation := guard.ValidateInput(message, s.maxInputChars); !validation.IsValid {
		s.publishActivity(ctx, events.NewChatRejected(sess.ID, "guard"))
		res := terminal.Error(validation.Message)
		res.SessionID = sess.ID
		return &res, nil
	}

	// 4. Without a provider the conversation cannot continue; hand the
	// visitor back to command mode.
	if s.llmProvider == nil {
		return s.endChat(ctx, sess, state.EventServerEnded, "server", constant.ChatUnavailableText)
	}

	// 5. Daily quota.
	if err := s.accessVerifier.VerifyDailyLimit(sess.ID); err != nil {
		s.publishActivity(ctx, events.NewChatRejected(sess.ID, "rate_limited"))
		return nil, err
	}

	// 6. Model call with the persona prompt and the session history.
	messages := history.ToLLM(sess.History)
	messages = append(messages, llm.Message{Role: store.RoleUser, Content: message})

	reply, err := s.llmProvider.Chat(ctx, messages,
		llm.WithSystemPrompt(s.systemPrompt),
		llm.WithTemperature(s.temperature),
	)
	if err != nil {
		s.chatLogger.Printf("chat failed for session %s: %v", sess.ID, err)
		res := terminal.Error(constant.ChatTroubleText)
		res.SessionID = sess.ID
		return &res, nil
	}
	reply = guard.SanitizeOutput(reply, guard.DefaultMaxOutputChars)

	// 7. Persist the exchange, trim old turns, bump usage.
	sess.AppendExchange(message, reply)
	sess.History = history.Trim(sess.History, s.maxTurns)
	if err := s.sessionManager.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.accessVerifier.IncrementUsage(sess.ID)
	s.publishActivity(ctx, events.NewChatMessage(sess.ID))

	res := terminal.AI(reply, sess.ID)
	return &res, nil
}

// endChat applies the ending transition, persists the session, and builds
// the chat_end response.
func (s *chatService) endChat(ctx context.Context, sess *store.Session, event state.Event, endedBy, output string) (*terminal.Response, error) {
	if err := s.stateManager.Transition(sess, event); err != nil {
		return nil, err
	}
	if err := s.sessionManager.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.publishActivity(ctx, events.NewSessionEnded(sess.ID, endedBy))

	res := terminal.ChatEnd(output)
	res.SessionID = sess.ID
	return &res, nil
}

// publishActivity mirrors the event to the in-process pipeline and NATS.
// Activity is auxiliary; failures never fail the chat request.
func (s *chatService) publishActivity(ctx context.Context, evt events.Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		fmt.Printf("[WARN] Failed to encode %s event: %v\n", evt.EventType(), err)
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", evt.EventType(), err)
		}
	}
}
