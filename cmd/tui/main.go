package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"portfolio-terminal/internal/tui/app"
	"portfolio-terminal/internal/tui/client"
)

var version = "dev"

func main() {
	urlFlag := flag.String("url", "", "Portfolio server base URL (defaults to $PORTFOLIO_URL or http://localhost:3000)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("portfolio-terminal %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	baseURL := *urlFlag
	if baseURL == "" {
		baseURL = os.Getenv("PORTFOLIO_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	p := tea.NewProgram(app.New(client.New(baseURL)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "portfolio-terminal: %v\n", err)
		os.Exit(1)
	}
}
