package entity

import "time"

const (
	DealStatusActive = "active"
	DealStatusClosed = "closed"
)

// Candidature statuses keep the French labels stored by the mobile clients.
const (
	CandidatureSent     = "Envoyé"
	CandidatureAccepted = "Accepté"
	CandidatureRefused  = "Refusé"
	CandidatureDone     = "Terminé"
)

type Deal struct {
	ID             string        `json:"id" firestore:"-"`
	Title          string        `json:"title" firestore:"title"`
	Description    string        `json:"description" firestore:"description"`
	ValidUntil     string        `json:"valid_until" firestore:"validUntil"`
	Conditions     string        `json:"conditions" firestore:"conditions"`
	Interests      []string      `json:"interests" firestore:"interests"`
	TypeOfContent  []string      `json:"type_of_content" firestore:"typeOfContent"`
	ImageURL       string        `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	LocationCoords Coordinates   `json:"location_coords" firestore:"locationCoords"`
	LocationName   string        `json:"location_name" firestore:"locationName"`
	MerchantID     string        `json:"merchant_id" firestore:"merchantId"`
	Status         string        `json:"status" firestore:"status"`
	Candidatures   []Candidature `json:"candidatures" firestore:"candidatures"`
	CreatedAt      time.Time     `json:"created_at" firestore:"createdAt"`
}

type Coordinates struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

type Candidature struct {
	InfluenceurID string       `json:"influenceur_id" firestore:"influenceurId"`
	Status        string       `json:"status" firestore:"status"`
	InfluReview   *InfluReview `json:"influreview,omitempty" firestore:"influreview,omitempty"`
}

// InfluReview is the merchant's review of a finished candidature, embedded in
// the deal document. Written by the completion flow, read by the rating
// aggregator.
type InfluReview struct {
	Rating  int    `json:"rating" firestore:"rating"`
	Comment string `json:"comment,omitempty" firestore:"comment,omitempty"`
}

var candidatureTransitions = map[string][]string{
	CandidatureSent:     {CandidatureAccepted, CandidatureRefused},
	CandidatureRefused:  {CandidatureAccepted},
	CandidatureAccepted: {CandidatureDone},
}

// ValidCandidatureStatus reports whether s is one of the four known statuses.
func ValidCandidatureStatus(s string) bool {
	switch s {
	case CandidatureSent, CandidatureAccepted, CandidatureRefused, CandidatureDone:
		return true
	}
	return false
}

// CanTransition reports whether the state graph allows moving a candidature
// from one status to another. There is no transition out of Terminé.
func CanTransition(from, to string) bool {
	for _, next := range candidatureTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CandidatureFor returns a pointer into the deal's candidature list for the
// given influencer, or nil when the influencer never applied.
func (d *Deal) CandidatureFor(influenceurID string) *Candidature {
	for i := range d.Candidatures {
		if d.Candidatures[i].InfluenceurID == influenceurID {
			return &d.Candidatures[i]
		}
	}
	return nil
}
