package bootstrap

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"Chirpio/internal/client"
	"Chirpio/internal/model"
	"Chirpio/internal/repository"
)

type memSessions map[string]string

func (m memSessions) GetUser(_ context.Context, token string) (*client.AuthUser, error) {
	if id, ok := m[token]; ok {
		return &client.AuthUser{ID: id}, nil
	}
	return nil, client.ErrInvalidSession
}

type memOrgs struct {
	members map[string]string
	orgs    map[string]*model.Organisation
}

func (m *memOrgs) FindMembership(_ context.Context, userID string) (*model.OrganisationMember, error) {
	if orgID, ok := m.members[userID]; ok {
		return &model.OrganisationMember{UserID: userID, OrganisationID: orgID}, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memOrgs) FindOrganisation(_ context.Context, orgID string) (*model.Organisation, error) {
	if org, ok := m.orgs[orgID]; ok {
		return org, nil
	}
	return nil, repository.ErrNotFound
}

type memPosts struct {
	mu    sync.Mutex
	posts []*model.Post
}

func (m *memPosts) Create(_ context.Context, p *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = "post-1"
	p.CreatedAt = time.Now()
	m.posts = append(m.posts, p)
	return nil
}

type memAccounts struct {
	mu   sync.Mutex
	rows map[string]*model.SocialAccount
}

func (m *memAccounts) Upsert(_ context.Context, a *model.SocialAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.UpdatedAt = time.Now()
	m.rows[a.UserID+"|"+a.Platform] = a
	return nil
}

func (m *memAccounts) Delete(_ context.Context, userID, platform string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := userID + "|" + platform
	if _, ok := m.rows[key]; !ok {
		return 0, nil
	}
	delete(m.rows, key)
	return 1, nil
}

func (m *memAccounts) Find(_ context.Context, userID, platform string) (*model.SocialAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[userID+"|"+platform]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memAccounts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memStates struct {
	mu     sync.Mutex
	states map[string]bool
}

func (m *memStates) Save(_ context.Context, state string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state] = true
	return nil
}

func (m *memStates) Consume(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok := m.states[state]
	delete(m.states, state)
	return ok, nil
}

type memLogs struct {
	mu      sync.Mutex
	entries []*model.SuggestionLog
}

func (m *memLogs) Create(_ context.Context, e *model.SuggestionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

type echoGenerator struct{}

func (echoGenerator) Provider() string { return "echo" }
func (echoGenerator) Model() string    { return "echo-1" }
func (echoGenerator) Generate(_ context.Context, _, user string) (string, error) {
	return "improved: " + user, nil
}

type stubFacebook struct {
	exchanges int
}

func (s *stubFacebook) AuthCodeURL(state string) string {
	return "https://www.facebook.com/v17.0/dialog/oauth?state=" + state
}

func (s *stubFacebook) ExchangeCode(context.Context, string) (*client.FacebookToken, error) {
	s.exchanges++
	return &client.FacebookToken{AccessToken: "fb-token"}, nil
}

func (s *stubFacebook) FetchProfile(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"fb-1","name":"Chirp"}`), nil
}
