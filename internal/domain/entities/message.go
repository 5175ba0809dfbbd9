package entities

import "time"

// ContactMessage is a submission from the public contact form. Messages
// are never deleted; operators flip the read flag.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Body      string    `json:"body" db:"body"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MessageCounts is the unread/total pair shown on the operator dashboard.
type MessageCounts struct {
	Unread int `json:"unread"`
	Total  int `json:"total"`
}
