package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"sent to accepted", CandidatureSent, CandidatureAccepted, true},
		{"sent to refused", CandidatureSent, CandidatureRefused, true},
		{"refused to accepted", CandidatureRefused, CandidatureAccepted, true},
		{"accepted to done", CandidatureAccepted, CandidatureDone, true},
		{"sent to done", CandidatureSent, CandidatureDone, false},
		{"accepted to refused", CandidatureAccepted, CandidatureRefused, false},
		{"refused to done", CandidatureRefused, CandidatureDone, false},
		{"done is terminal", CandidatureDone, CandidatureAccepted, false},
		{"no self loop", CandidatureSent, CandidatureSent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidCandidatureStatus(t *testing.T) {
	assert.True(t, ValidCandidatureStatus(CandidatureSent))
	assert.True(t, ValidCandidatureStatus(CandidatureDone))
	assert.False(t, ValidCandidatureStatus("pending"))
	assert.False(t, ValidCandidatureStatus(""))
}

func TestCandidatureFor(t *testing.T) {
	deal := &Deal{
		Candidatures: []Candidature{
			{InfluenceurID: "alice", Status: CandidatureSent},
			{InfluenceurID: "bob", Status: CandidatureAccepted},
		},
	}

	c := deal.CandidatureFor("bob")
	assert.NotNil(t, c)
	assert.Equal(t, CandidatureAccepted, c.Status)

	// The pointer aliases the slice so callers can mutate in place.
	c.Status = CandidatureDone
	assert.Equal(t, CandidatureDone, deal.Candidatures[1].Status)

	assert.Nil(t, deal.CandidatureFor("carol"))
}
