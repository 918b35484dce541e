// Package guard validates visitor input and sanitizes assistant output for
// the chat endpoints.
package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxOutputChars caps assistant replies before they reach the client.
const DefaultMaxOutputChars = 1500

// Patterns that suggest prompt injection attempts.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)system\s*prompt`),
	regexp.MustCompile(`(?i)you\s+are\s+now`),
	regexp.MustCompile(`(?i)act\s+as\s+(if\s+you\s+are|a)`),
	regexp.MustCompile(`(?i)pretend\s+(to\s+be|you\s+are)`),
	regexp.MustCompile(`(?i)new\s+instructions`),
	regexp.MustCompile(`(?i)override\s+(instructions|rules)`),
	regexp.MustCompile(`(?i)<\s*system\s*>`),
	regexp.MustCompile(`(?i)\[\s*system\s*\]`),
}

// ValidationResult reports whether an input is safe to forward, and if not,
// the message to show the visitor.
type ValidationResult struct {
	IsValid bool
	Message string
}

func reject(message string) ValidationResult {
	return ValidationResult{IsValid: false, Message: message}
}

// ValidateInput checks a chat message for emptiness, length, injection
// patterns, and token stuffing before it is sent to the model.
func ValidateInput(message string, maxChars int) ValidationResult {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return reject("Message cannot be empty.")
	}

	if len([]rune(trimmed)) > maxChars {
		return reject(fmt.Sprintf("Message too long. Please keep it under %d characters.", maxChars))
	}

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(trimmed) {
			return reject("I can only answer questions about Ben's professional background.")
		}
	}

	// Excessive repetition of a single word reads like token stuffing.
	words := strings.Fields(strings.ToLower(trimmed))
	if len(words) > 5 {
		counts := make(map[string]int, len(words))
		maxRepetition := 0
		for _, word := range words {
			counts[word]++
			if counts[word] > maxRepetition {
				maxRepetition = counts[word]
			}
		}
		if float64(maxRepetition) > float64(len(words))*0.5 {
			return reject("Please ask a clear question about Ben's experience.")
		}
	}

	return ValidationResult{IsValid: true}
}

// SanitizeOutput trims and truncates an assistant reply, cutting at a word
// boundary, and substitutes a fallback line for empty output.
func SanitizeOutput(response string, maxChars int) string {
	if strings.TrimSpace(response) == "" {
		return "I couldn't generate a response. Please try again."
	}

	runes := []rune(response)
	if len(runes) > maxChars {
		cut := string(runes[:maxChars])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		response = cut + "..."
	}

	return strings.TrimSpace(response)
}
