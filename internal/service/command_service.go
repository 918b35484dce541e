package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"portfolio-terminal/internal/constant"
	"portfolio-terminal/internal/pkg/mailer"
	"portfolio-terminal/pkg/chat/session"
	"portfolio-terminal/pkg/chat/state"
	"portfolio-terminal/pkg/command"
	"portfolio-terminal/pkg/events"
	pktNats "portfolio-terminal/pkg/nats"
	"portfolio-terminal/pkg/terminal"
	"portfolio-terminal/pkg/usage"
)

type ICommandService interface {
	Execute(ctx context.Context, raw string) terminal.Response
	Registry() *command.Registry
}

type commandService struct {
	registry         *command.Registry
	sessionManager   *session.Manager
	stateManager     *state.Manager
	emailService     mailer.IEmailService
	usageCollector   *usage.Collector
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewCommandService(
	sessionManager *session.Manager,
	stateManager *state.Manager,
	emailService mailer.IEmailService,
	usageCollector *usage.Collector,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) ICommandService {
	s := &commandService{
		registry:         command.NewRegistry(),
		sessionManager:   sessionManager,
		stateManager:     stateManager,
		emailService:     emailService,
		usageCollector:   usageCollector,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
	s.registerDefaultCommands()
	return s
}

// Execute dispatches one raw input line and records the outcome on the
// activity pipeline. The HTTP layer answers empty input itself.
func (s *commandService) Execute(ctx context.Context, raw string) terminal.Response {
	res := s.registry.Dispatch(ctx, raw)
	s.publishActivity(ctx, events.NewCommandExecuted(s.commandLabel(raw), string(res.Kind)))
	return res
}

func (s *commandService) Registry() *command.Registry {
	return s.registry
}

func (s *commandService) registerDefaultCommands() {
	s.registry.Register(command.Command{
		Name:        "help",
		Description: "List all available commands and what they do.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Text(s.registry.HelpText())
		},
	})
	s.registry.Register(command.Command{
		Name:        "about",
		Description: "Read a short introduction about me.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Text(constant.AboutText + "\n\n" + constant.AboutClosing)
		},
	})
	s.registry.Register(command.Command{
		Name:        "projects",
		Description: "See a selection of things I have built and worked on.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Text(constant.ProjectsText)
		},
	})
	s.registry.Register(command.Command{
		Name:        "cv",
		Description: "Download my current CV as a PDF.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Download(constant.CVDownloadText, "/download/cv")
		},
	})
	s.registry.Register(command.Command{
		Name:        "contact",
		Description: "Get my contact details and social links.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Text(constant.ContactText)
		},
	})
	s.registry.Register(command.Command{
		Name:        "msg",
		Description: "Send me a message straight from the terminal.",
		Handler:     s.msgHandler,
	})
	s.registry.Register(command.Command{
		Name:        "stats",
		Description: "Peek at live usage stats for this site.",
		Handler:     s.statsHandler,
	})
	s.registry.Register(command.Command{
		Name:        "clear",
		Description: "Clear the virtual terminal history.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.Clear()
		},
	})
	s.registry.Register(command.Command{
		Name:        "chat",
		Description: "Enter AI chat mode for a conversation about Ben.",
		Handler:     s.chatHandler,
	})
	s.registry.Register(command.Command{
		Name:        "exit",
		Description: "Exit AI chat mode and return to commands.",
		Handler: func(_ context.Context, _ string) terminal.Response {
			return terminal.ChatEnd(constant.ChatEndText)
		},
	})
}

// msgHandler relays visitor text to the owner's inbox.
func (s *commandService) msgHandler(_ context.Context, args string) terminal.Response {
	text := strings.TrimSpace(args)
	if text == "" {
		return terminal.Error(constant.MsgUsageText)
	}
	if err := s.emailService.SendVisitorMessage(text); err != nil {
		fmt.Printf("[WARN] Failed to relay visitor message: %v\n", err)
		return terminal.Error(constant.MsgFailedText)
	}
	return terminal.Text(constant.MsgSentText)
}

// statsHandler renders the live usage counters.
func (s *commandService) statsHandler(ctx context.Context, _ string) terminal.Response {
	stats := s.usageCollector.Snapshot()
	if active, err := s.sessionManager.Count(ctx); err == nil {
		stats.ActiveSessions = active
	}

	uptime := (time.Duration(stats.UptimeSeconds) * time.Second).Round(time.Second)
	var b strings.Builder
	b.WriteString("Usage so far:\n\n")
	fmt.Fprintf(&b, "  Commands served   %d\n", stats.CommandsServed)
	fmt.Fprintf(&b, "  Chat messages     %d\n", stats.ChatMessages)
	fmt.Fprintf(&b, "  Chat sessions     %d\n", stats.SessionsStarted)
	fmt.Fprintf(&b, "  Active sessions   %d\n", stats.ActiveSessions)
	fmt.Fprintf(&b, "  Uptime            %s", uptime)
	return terminal.Text(b.String())
}

// chatHandler allocates a fresh chat session and flips it into chat mode.
func (s *commandService) chatHandler(ctx context.Context, _ string) terminal.Response {
	sess, err := s.sessionManager.LoadOrCreate(ctx, "")
	if err != nil {
		fmt.Printf("[WARN] Failed to allocate chat session: %v\n", err)
		return terminal.Error(constant.ChatUnavailableText)
	}
	if err := s.stateManager.Transition(sess, state.EventStartChat); err != nil {
		return terminal.Error(constant.ChatUnavailableText)
	}
	if err := s.sessionManager.Save(ctx, sess); err != nil {
		fmt.Printf("[WARN] Failed to persist chat session: %v\n", err)
		return terminal.Error(constant.ChatUnavailableText)
	}

	s.publishActivity(ctx, events.NewSessionStarted(sess.ID))
	return terminal.ChatStart(constant.ChatStartText, sess.ID)
}

// commandLabel resolves the counter label for an input line: the matched
// command name, or a bucket for unix lookalikes and unknowns.
func (s *commandService) commandLabel(raw string) string {
	line := strings.TrimSpace(raw)
	if command.IsUnixCommand(line) {
		return "unix"
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "unknown"
	}
	name := strings.ToLower(fields[0])
	if _, ok := s.registry.Lookup(name); !ok {
		return "unknown"
	}
	return name
}

// publishActivity fans the event out to the in-process pipeline and, when
// connected, to NATS. Activity is auxiliary; failures never fail the request.
func (s *commandService) publishActivity(ctx context.Context, evt events.Event) {
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
