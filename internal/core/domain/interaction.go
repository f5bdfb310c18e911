package domain

import "github.com/solvikcrm/solvik_crm/internal/apperrors"

// InteractionType classifies a logged touchpoint with a customer.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
	InteractionNote    InteractionType = "note"
)

// InteractionTypes lists the valid interaction types.
var InteractionTypes = []InteractionType{InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote}

// ParseInteractionType validates a raw type string.
func ParseInteractionType(s string) (InteractionType, error) {
	for _, t := range InteractionTypes {
		if InteractionType(s) == t {
			return t, nil
		}
	}
	return "", apperrors.NewValidationFailedError("invalid interaction type: " + s)
}

// Interaction is one logged touchpoint (call, email, meeting or note) with a
// customer. Unlike the activity log it is user-entered content, not an audit
// record, and it is deleted with its customer.
type Interaction struct {
	InteractionID string          `json:"interactionID" db:"interaction_id"`
	Type          InteractionType `json:"type" db:"type"`
	Content       string          `json:"content" db:"content"`
	CustomerID    string          `json:"customerID" db:"customer_id"`
	Ownership
	AuditFields
}

// DisplayName is what audit entries record for an interaction.
func (i Interaction) DisplayName() string {
	return string(i.Type)
}
