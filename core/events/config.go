package events

import "time"

// Config holds the event stream settings.
type Config struct {
	// Brokers lists Kafka bootstrap addresses. Empty disables publishing.
	Brokers []string `mapstructure:"brokers" default:""`
	// Topic receives sync lifecycle events.
	Topic string `mapstructure:"topic" default:"library.sync"`
	// WriteTimeout bounds one publish call.
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"2s"`
}
