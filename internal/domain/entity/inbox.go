package entity

// Inbox is the per-user userchats document: one denormalized preview entry
// per conversation the user participates in.
type Inbox struct {
	Chats []InboxEntry `json:"chats" firestore:"chats"`
}

type InboxEntry struct {
	ChatID      string `json:"chat_id" firestore:"chatId"`
	ReceiverID  string `json:"receiver_id" firestore:"receiverId"`
	LastMessage string `json:"last_message" firestore:"lastMessage"`
	UpdatedAt   int64  `json:"updated_at" firestore:"updatedAt"`
	Read        bool   `json:"read" firestore:"read"`
}

// Upsert replaces the entry with the same chatId, or appends when the
// conversation is new to this inbox.
func (i *Inbox) Upsert(entry InboxEntry) {
	for idx := range i.Chats {
		if i.Chats[idx].ChatID == entry.ChatID {
			i.Chats[idx] = entry
			return
		}
	}
	i.Chats = append(i.Chats, entry)
}

// MarkRead flags the entry for chatID as read. It reports whether an entry
// was found.
func (i *Inbox) MarkRead(chatID string) bool {
	for idx := range i.Chats {
		if i.Chats[idx].ChatID == chatID {
			i.Chats[idx].Read = true
			return true
		}
	}
	return false
}

// Entry returns the preview entry for chatID, or nil.
func (i *Inbox) Entry(chatID string) *InboxEntry {
	for idx := range i.Chats {
		if i.Chats[idx].ChatID == chatID {
			return &i.Chats[idx]
		}
	}
	return nil
}
