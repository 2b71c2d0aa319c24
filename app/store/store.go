// Package store contains users of the bot and their preferences.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// Interface defines methods for store
type Interface interface {
	Put(ctx context.Context, u User) error
	Get(ctx context.Context, chatID string) (User, error)
	Update(ctx context.Context, chatID string, fn func(*User) error) (User, error)
	List(ctx context.Context, req ListRequest) ([]User, error)
	Delete(ctx context.Context, chatID string) error
}

// ListRequest defines parameters for listing users from store.
type ListRequest struct {
	// OnlySubscribed filters out users without subscription.
	OnlySubscribed bool
}

// User is a struct that contains the user's data.
type User struct {
	ChatID     string `json:"chat_id"`
	Username   string `json:"username"`
	Authorized bool   `json:"authorized"`
	Subscribed bool   `json:"subscribed"`
	Prefs      Prefs  `json:"prefs"`
}

// Prefs are the user's filters for news queries.
// Empty values stand for the defaults.
type Prefs struct {
	Count   int    `json:"count,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Country string `json:"country,omitempty"`
}
