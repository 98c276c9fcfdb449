// Package queue defines message payloads exchanged over the message broker
// and the consumer that processes them.
package queue

// AuthorRegisteredQueue is the durable queue carrying AuthorRegisteredEvent.
const AuthorRegisteredQueue = "author.registered"

// AuthorRegisteredEvent is published after a new author is stored. It holds
// what a mailer needs to send the activation link without touching the
// database.
type AuthorRegisteredEvent struct {
	AuthorID        string `json:"author_id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ActivationToken string `json:"activation_token"`
	RegisteredAt    string `json:"registered_at"`
}
