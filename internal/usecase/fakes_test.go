package usecase

import (
	"context"
	"fmt"
	"sync"

	"ekanwe/internal/domain/entity"
	"ekanwe/pkg/errors"
)

// In-memory repository fakes. They mimic the store's observable behavior
// (NOT_FOUND errors, upsert-by-id semantics) without any Firestore wiring.

type fakeDealRepo struct {
	mu    sync.Mutex
	deals map[string]*entity.Deal
	seq   int
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{deals: make(map[string]*entity.Deal)}
}

func (r *fakeDealRepo) Create(ctx context.Context, deal *entity.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if deal.ID == "" {
		r.seq++
		deal.ID = fmt.Sprintf("deal-%d", r.seq)
	}
	r.deals[deal.ID] = deal
	return nil
}

func (r *fakeDealRepo) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deal, ok := r.deals[id]
	if !ok {
		return nil, errors.NotFound("Deal", nil)
	}
	copied := *deal
	copied.Candidatures = append([]entity.Candidature(nil), deal.Candidatures...)
	return &copied, nil
}

func (r *fakeDealRepo) Update(ctx context.Context, deal *entity.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deals[deal.ID]; !ok {
		return errors.NotFound("Deal", nil)
	}
	r.deals[deal.ID] = deal
	return nil
}

// Mutate holds the repo lock across fn, mirroring the serialization the
// store transaction provides.
func (r *fakeDealRepo) Mutate(ctx context.Context, id string, fn func(deal *entity.Deal) error) (*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deal, ok := r.deals[id]
	if !ok {
		return nil, errors.NotFound("Deal", nil)
	}
	copied := *deal
	copied.Candidatures = append([]entity.Candidature(nil), deal.Candidatures...)
	if err := fn(&copied); err != nil {
		return nil, err
	}
	r.deals[id] = &copied
	return &copied, nil
}

func (r *fakeDealRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deals[id]; !ok {
		return errors.NotFound("Deal", nil)
	}
	delete(r.deals, id)
	return nil
}

func (r *fakeDealRepo) List(ctx context.Context) ([]*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deals := make([]*entity.Deal, 0, len(r.deals))
	for _, deal := range r.deals {
		deals = append(deals, deal)
	}
	return deals, nil
}

func (r *fakeDealRepo) ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deals []*entity.Deal
	for _, deal := range r.deals {
		if deal.MerchantID == merchantID {
			deals = append(deals, deal)
		}
	}
	return deals, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) SetPushToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.ExpoPushToken = token
	return nil
}

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*entity.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*entity.Chat)}
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (r *fakeChatRepo) Create(ctx context.Context, id string, first entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats[id] = &entity.Chat{ID: id, Messages: []entity.Message{first}}
	return nil
}

func (r *fakeChatRepo) AppendMessage(ctx context.Context, id string, message entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.Messages = append(chat.Messages, message)
	return nil
}

type fakeUserChatRepo struct {
	mu      sync.Mutex
	inboxes map[string]*entity.Inbox
}

func newFakeUserChatRepo() *fakeUserChatRepo {
	return &fakeUserChatRepo{inboxes: make(map[string]*entity.Inbox)}
}

func (r *fakeUserChatRepo) Get(ctx context.Context, userID string) (*entity.Inbox, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inbox, ok := r.inboxes[userID]
	if !ok {
		return nil, errors.NotFound("Inbox", nil)
	}
	return inbox, nil
}

func (r *fakeUserChatRepo) Upsert(ctx context.Context, userID string, entry entity.InboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inbox, ok := r.inboxes[userID]
	if !ok {
		inbox = &entity.Inbox{}
		r.inboxes[userID] = inbox
	}
	inbox.Upsert(entry)
	return nil
}

func (r *fakeUserChatRepo) MarkRead(ctx context.Context, userID, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inbox, ok := r.inboxes[userID]
	if !ok {
		return errors.NotFound("Inbox", nil)
	}
	if !inbox.MarkRead(chatID) {
		return errors.NotFound("Conversation", nil)
	}
	return nil
}

type fakeNotificationRepo struct {
	mu     sync.Mutex
	byUser map[string]map[string]*entity.Notification
	order  map[string][]string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		byUser: make(map[string]map[string]*entity.Notification),
		order:  make(map[string][]string),
	}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, userID string, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, ok := r.byUser[userID]
	if !ok {
		records = make(map[string]*entity.Notification)
		r.byUser[userID] = records
	}
	if _, exists := records[notification.ID]; !exists {
		r.order[userID] = append(r.order[userID], notification.ID)
	}
	records[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var notifications []*entity.Notification
	for _, id := range r.order[userID] {
		notifications = append(notifications, r.byUser[userID][id])
	}
	return notifications, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, ok := r.byUser[userID]
	if !ok {
		return errors.NotFound("Notification", nil)
	}
	notification, ok := records[notificationID]
	if !ok {
		return errors.NotFound("Notification", nil)
	}
	notification.Read = true
	return nil
}

// failingChatRepo errors on every operation, standing in for an unreachable
// store during side-effect writes.
type failingChatRepo struct{}

func (failingChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	return nil, errors.Internal("store unavailable", nil)
}

func (failingChatRepo) Create(ctx context.Context, id string, first entity.Message) error {
	return errors.Internal("store unavailable", nil)
}

func (failingChatRepo) AppendMessage(ctx context.Context, id string, message entity.Message) error {
	return errors.Internal("store unavailable", nil)
}

type failingNotificationRepo struct{}

func (failingNotificationRepo) Create(ctx context.Context, userID string, notification *entity.Notification) error {
	return errors.Internal("store unavailable", nil)
}

func (failingNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return nil, errors.Internal("store unavailable", nil)
}

func (failingNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	return errors.Internal("store unavailable", nil)
}

type pushCall struct {
	Token string
	Title string
	Body  string
	Data  map[string]interface{}
}

// recorderPush records deliveries instead of talking to the gateway.
type recorderPush struct {
	mu    sync.Mutex
	calls []pushCall
	err   error
}

func (p *recorderPush) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushCall{Token: token, Title: title, Body: body, Data: data})
	return p.err
}
