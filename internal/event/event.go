// Package event publishes domain events so that other parts of the system
// (a frontend push channel, analytics) can react to rating changes without
// the request path knowing about them.
package event

import (
	"context"
	"time"

	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

const RatingSubmittedKey = "rating.submitted"

// RatingSubmitted is emitted after a rating was inserted or overwritten.
type RatingSubmitted struct {
	RatingID  string    `json:"ratingId"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Value     int       `json:"value"`
	Created   bool      `json:"created"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// New returns an AMQP publisher when a broker URL is configured and a
// publisher that drops events otherwise.
func New(cfg utils.AMQPConfig, log *zap.Logger) (Publisher, error) {
	if cfg.URL == "" {
		log.Info("AMQP_URL not set, domain events are disabled")
		return NewNoop(), nil
	}
	pub, err := NewAMQPPublisher(cfg.URL, cfg.Exchange, log)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

type noopPublisher struct{}

func NewNoop() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
func (noopPublisher) Close() error                              { return nil }
