package domain

// Speaker is a user attached to a proposal. Notifications go to every speaker with an email.
// swagger:model Speaker
type Speaker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewSpeaker returns a new Speaker with the given fields.
func NewSpeaker(id, name, email string) *Speaker {
	return &Speaker{ID: id, Name: name, Email: email}
}
