package prompt

import (
	"fmt"
	"log"
	"os"
	"strings"

	"portfolio-terminal/internal/constant"
)

// Builder assembles the assistant system prompt from the built-in persona
// text plus an optional knowledge base file.
type Builder struct {
	knowledgeBasePath string
	logger            *log.Logger
}

// NewBuilder creates a new prompt builder.
func NewBuilder(knowledgeBasePath string, logger *log.Logger) *Builder {
	return &Builder{
		knowledgeBasePath: knowledgeBasePath,
		logger:            logger,
	}
}

// SystemPrompt renders the hardened prompt with the knowledge base embedded.
func (b *Builder) SystemPrompt() string {
	return fmt.Sprintf(constant.SystemPromptTemplate, b.knowledgeBase())
}

// knowledgeBase joins the persona about text with the contents of the
// knowledge base file when one is readable.
func (b *Builder) knowledgeBase() string {
	parts := []string{"## About Ben\n\n" + constant.AboutText}

	if b.knowledgeBasePath != "" {
		data, err := os.ReadFile(b.knowledgeBasePath)
		if err != nil {
			if !os.IsNotExist(err) {
				b.logger.Printf("[PROMPT] could not load knowledge base file: %v", err)
			}
		} else {
			parts = append(parts, "\n## Additional Information\n\n"+string(data))
		}
	}

	return strings.Join(parts, "\n")
}
