package models

import "time"

// Message is a sent borrower message, logged to the reserved messages.json
// file alongside the scenario data.
type Message struct {
	ID            string    `json:"id"`
	BorrowerID    string    `json:"borrowerId,omitempty"`
	BorrowerName  string    `json:"borrowerName,omitempty"`
	BorrowerEmail string    `json:"borrowerEmail,omitempty"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	SentAt        time.Time `json:"sentAt"`
}
