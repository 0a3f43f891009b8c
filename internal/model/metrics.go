package model

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	usersAdded          prometheus.Counter
	usersRestored       prometheus.Counter
	replaySkipped       prometheus.Counter
	persistenceFailures prometheus.Counter
	conversationsAdded  prometheus.Counter
	messagesAdded       prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chatstore",
			Subsystem: "model",
			Name:      name,
			Help:      help,
		})
	}
	m := &metrics{
		usersAdded:          counter("users_added_total", "Users persisted and indexed."),
		usersRestored:       counter("users_restored_total", "Users indexed from the durable log."),
		replaySkipped:       counter("replay_skipped_total", "Persisted user rows skipped during replay."),
		persistenceFailures: counter("persistence_failures_total", "Failed durable writes."),
		conversationsAdded:  counter("conversations_added_total", "Conversations indexed."),
		messagesAdded:       counter("messages_added_total", "Messages indexed."),
	}
	if reg != nil {
		reg.MustRegister(
			m.usersAdded,
			m.usersRestored,
			m.replaySkipped,
			m.persistenceFailures,
			m.conversationsAdded,
			m.messagesAdded,
		)
	}
	return m
}
