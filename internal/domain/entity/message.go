package entity

import "time"

// Message is one assistant exchange: the user's question and the answer given.
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Question  string
	Answer    string
	Timestamp time.Time
}

// Conversation holds the recent exchanges of one user.
type Conversation struct {
	UserID   int64
	Messages []Message
	LastUsed time.Time
}
