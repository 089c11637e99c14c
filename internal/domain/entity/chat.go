package entity

import (
	"sort"
	"time"
)

// Chat is the single persistent conversation between two users. The document
// id is ThreadID of the pair; the document body is only the message array.
type Chat struct {
	ID       string    `json:"id" firestore:"-"`
	Messages []Message `json:"messages" firestore:"messages"`
}

type Message struct {
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	Img       string    `json:"img,omitempty" firestore:"img,omitempty"`
}

// ThreadID derives the chat document id for a pair of users: the two uids
// sorted lexically and concatenated. Symmetric by construction, so both
// participants land on the same document. Collision-free as long as uids have
// a fixed length, which Firebase Auth uids do.
func ThreadID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + ids[1]
}

// HasMessage reports whether an identical message from the sender is already
// in the thread. Used to keep replayed greeting appends idempotent.
func (c *Chat) HasMessage(senderID, text string) bool {
	for _, m := range c.Messages {
		if m.SenderID == senderID && m.Text == text {
			return true
		}
	}
	return false
}
