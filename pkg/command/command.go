package command

import (
	"context"

	"portfolio-terminal/pkg/terminal"
)

// Handler produces a response for a dispatched command. args is the raw
// remainder of the input line after the command token.
type Handler func(ctx context.Context, args string) terminal.Response

// Command is one registered terminal command.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}
