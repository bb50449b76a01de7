package notify

import "context"

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Queue accepts messages for asynchronous delivery. Enqueue never blocks and
// reports whether the message was accepted.
type Queue interface {
	Enqueue(msg Message) bool
}
