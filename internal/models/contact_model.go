package models

import "time"

// Interaction is a logged touch point with a contact (call, email, meeting).
type Interaction struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	InteractionType string    `json:"interactionType"`
	Notes           string    `json:"notes,omitempty"`
}

// Contact is a person in the user's professional network.
type Contact struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Relationship       string        `json:"relationship,omitempty"`
	Email              string        `json:"email,omitempty"`
	Phone              string        `json:"phone,omitempty"`
	Company            string        `json:"company,omitempty"`
	Position           string        `json:"position,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	Favorite           bool          `json:"favorite"`
	InteractionHistory []Interaction `json:"interactionHistory,omitempty"`
	FollowUpDate       *time.Time    `json:"followUpDate,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}
