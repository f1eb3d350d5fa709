package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog"
)

// Publisher sends reservation events to RabbitMQ.  It dials per publish
// with a short connect timeout.  Failures are returned, not logged.
type Publisher struct {
    url string
    log zerolog.Logger
}

const dialTimeout = 2 * time.Second

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
    return &Publisher{url: url, log: log.With().Str("component", "publisher").Logger()}
}

// Publish marshals ev and publishes it as a persistent message on
// ReservationQueue through the default exchange.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
    conn, err := amqp.DialConfig(p.url, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      amqp.DefaultDial(dialTimeout),
    })
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := declare(ch); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    ev.EventID,
        Type:         string(ev.Type),
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", ReservationQueue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    p.log.Debug().Str("event", string(ev.Type)).Uint64("reservation_id", ev.ReservationID).Msg("published")
    return nil
}

// declare makes sure the durable queue exists; it is idempotent.
func declare(ch *amqp.Channel) error {
    _, err := ch.QueueDeclare(
        ReservationQueue, // name
        true,             // durable
        false,            // autoDelete
        false,            // exclusive
        false,            // noWait
        nil,              // args
    )
    return err
}
