package entity

import "time"

const (
	RoleInfluenceur = "influenceur"
	RoleCommercant  = "commerçant"
)

type User struct {
	ID            string    `json:"id" firestore:"-"`
	Email         string    `json:"email" firestore:"email"`
	Pseudonyme    string    `json:"pseudonyme,omitempty" firestore:"pseudonyme,omitempty"`
	Role          string    `json:"role" firestore:"role"`
	PhotoURL      string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	ExpoPushToken string    `json:"expo_push_token,omitempty" firestore:"expoPushToken,omitempty"`
	Interests     []string  `json:"interests,omitempty" firestore:"interests,omitempty"`
	Country       string    `json:"country,omitempty" firestore:"country,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}
