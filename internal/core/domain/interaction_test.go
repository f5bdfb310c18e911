package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

func TestParseInteractionType(t *testing.T) {
	for _, raw := range []string{"call", "email", "meeting", "note"} {
		parsed, err := domain.ParseInteractionType(raw)
		assert.NoError(t, err)
		assert.Equal(t, domain.InteractionType(raw), parsed)
	}

	_, err := domain.ParseInteractionType("fax")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInteraction_DisplayName(t *testing.T) {
	i := domain.Interaction{Type: domain.InteractionMeeting, Content: "Quarterly review"}
	assert.Equal(t, "meeting", i.DisplayName())
}
