//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-terminal/pkg/events"
	"portfolio-terminal/pkg/nats"

	"github.com/fatih/color"
)

// Tails the activity stream from NATS, one line per event. Useful for
// watching a deployed instance without opening the admin dashboard:
//
//	go run scripts/tail_activity.go -url nats://localhost:4222 -subject 'activity.>'
func main() {
	url := flag.String("url", "nats://localhost:4222", "NATS server URL")
	subject := flag.String("subject", "activity.>", "subject filter, e.g. activity.SESSION_STARTED")
	durable := flag.String("durable", "activity-tail", "durable consumer name")
	flag.Parse()

	sub, err := nats.NewSubscriber(*url)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(*subject, *durable, func(_ context.Context, evt events.Event) error {
		color.Yellow("%s  %s", evt.Timestamp().Format("15:04:05"), evt.EventType())
		for k, v := range evt.Payload() {
			fmt.Printf("  %s=%v", k, v)
		}
		fmt.Println()
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	color.Cyan("📡 Tailing %s on %s (ctrl+c to stop)", *subject, *url)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
