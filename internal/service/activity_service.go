package service

import (
	"context"
	"encoding/json"
	"log"

	"portfolio-terminal/internal/websocket"
	"portfolio-terminal/pkg/events"
	"portfolio-terminal/pkg/usage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IActivityService interface {
	Consume(ctx context.Context) error
}

// activityService drains the in-process activity topic, folds every event
// into the usage collector, and fans it out to the dashboard feed.
type activityService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	usageCollector *usage.Collector
	hub            *websocket.Hub
}

func NewActivityService(
	pubSub *gochannel.GoChannel,
	topicName string,
	usageCollector *usage.Collector,
	hub *websocket.Hub,
) IActivityService {
	return &activityService{
		pubSub:         pubSub,
		topicName:      topicName,
		usageCollector: usageCollector,
		hub:            hub,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		log.Printf("[ERROR] Failed to unmarshal activity event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	s.usageCollector.Record(evt)
	if s.hub != nil {
		s.hub.Broadcast(evt)
	}
	msg.Ack()
}
