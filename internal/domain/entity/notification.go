package entity

import "time"

const (
	NotificationTypeApplication  = "application"
	NotificationTypeStatusUpdate = "status_update"
	NotificationTypeMessage      = "message"
)

// Notification is one in-app record under users/{uid}/notifications. The
// optional context ids mirror the push payload so the client router can
// deep-link from either.
type Notification struct {
	ID            string    `json:"id" firestore:"-"`
	Message       string    `json:"message" firestore:"message"`
	Type          string    `json:"type" firestore:"type"`
	FromUserID    string    `json:"from_user_id" firestore:"fromUserId"`
	RelatedDealID string    `json:"related_deal_id,omitempty" firestore:"relatedDealId,omitempty"`
	TargetRoute   string    `json:"target_route,omitempty" firestore:"targetRoute,omitempty"`
	DealID        string    `json:"deal_id,omitempty" firestore:"dealId,omitempty"`
	InfluenceurID string    `json:"influenceur_id,omitempty" firestore:"influenceurId,omitempty"`
	ChatID        string    `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	ReceiverID    string    `json:"receiver_id,omitempty" firestore:"receiverId,omitempty"`
	Read          bool      `json:"read" firestore:"read"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
