package command

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"portfolio-terminal/pkg/terminal"
)

// Registry maps command names to handlers. It is built once at startup and
// preserves registration order for the help listing.
type Registry struct {
	names    []string
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command, keyed case-insensitively by name. Re-registering
// a name replaces the handler but keeps its original listing position.
func (r *Registry) Register(cmd Command) {
	key := strings.ToLower(cmd.Name)
	if _, exists := r.commands[key]; !exists {
		r.names = append(r.names, key)
	}
	r.commands[key] = cmd
}

// Lookup finds a command by name, case-insensitively.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.commands[name])
	}
	return out
}

// Dispatch parses a raw input line and routes it to the matching handler.
// The caller must not pass empty input; the HTTP boundary answers that case
// itself. Unknown names and simulated Unix commands come back as error kinds.
func (r *Registry) Dispatch(ctx context.Context, raw string) terminal.Response {
	line := strings.TrimSpace(raw)

	if IsUnixCommand(line) {
		return terminal.Error(SimulatedTerminalMessage)
	}

	name, args := splitCommand(line)
	cmd, ok := r.Lookup(name)
	if !ok {
		return terminal.Error(fmt.Sprintf("Unknown command: '%s'. Type 'help' to see options.", name))
	}
	return cmd.Handler(ctx, args)
}

// HelpText renders the help banner: one line per command in registration
// order, name padded to a fixed column.
func (r *Registry) HelpText() string {
	var b strings.Builder
	b.WriteString("Available commands (type them just like you would in a terminal):\n")
	for _, cmd := range r.Commands() {
		fmt.Fprintf(&b, "  %-8s %s\n", cmd.Name, cmd.Description)
	}
	b.WriteString("\n💡 Tip: You can also just ask me questions directly!")
	return b.String()
}

// splitCommand separates the command token from its arguments on the first
// whitespace run.
func splitCommand(line string) (name, args string) {
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		return line[:i], strings.TrimSpace(line[i:])
	}
	return line, ""
}
