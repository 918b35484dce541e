package usage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "commands_total",
		Help:      "Terminal commands dispatched, by command name.",
	}, []string{"command"})
	metricChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "chat_messages_total",
		Help:      "Chat exchanges answered by the assistant.",
	})
	metricChatRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "chat_rejections_total",
		Help:      "Chat requests turned away by guards or rate limits.",
	})
	metricSessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "chat_sessions_started_total",
		Help:      "Chat sessions opened by visitors.",
	})
)
