package services

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// testLogger discards output so failed-enqueue paths stay quiet in tests.
func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockProfileRepository struct {
	profiles map[string]*domain.Profile
	byEmail  map[string]*domain.Profile
	updated  *domain.Profile
	err      error
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	profile.ID = "p-created"
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]*domain.Profile, len(ids))
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.updated = profile
	return nil
}

type mockConferenceRepository struct {
	conferences   map[string]*domain.Conference
	nearlySoldOut []*domain.Conference
	queryResult   []*domain.Conference
	queryPlan     *query.Plan
	created       *domain.Conference
	updateArg     *domain.ConferenceUpdate
	err           error
}

func (m *mockConferenceRepository) Create(ctx context.Context, conf *domain.Conference) error {
	if m.err != nil {
		return m.err
	}
	conf.ID = "c-created"
	m.created = conf
	return nil
}

func (m *mockConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockConferenceRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]*domain.Conference, len(ids))
	for _, id := range ids {
		if c, ok := m.conferences[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Conference
	for _, c := range m.conferences {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockConferenceRepository) Query(ctx context.Context, plan *query.Plan) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.queryPlan = plan
	return m.queryResult, nil
}

func (m *mockConferenceRepository) Update(ctx context.Context, id string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updateArg = upd
	c, ok := m.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockConferenceRepository) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.nearlySoldOut, nil
}

type mockSessionRepository struct {
	sessions             map[string]*domain.Session
	byConference         map[string][]*domain.Session
	bySpeaker            []*domain.Session
	bySpeakerAndConf     []*domain.Session
	startingBefore       []*domain.Session
	byType               []*domain.Session
	byDuration           []*domain.Session
	created              *domain.Session
	err                  error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.err != nil {
		return m.err
	}
	session.ID = "s-created"
	m.created = session
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byConference[conferenceID], nil
}

func (m *mockSessionRepository) ListByConferenceIDOrdered(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byConference[conferenceID], nil
}

func (m *mockSessionRepository) ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byType, nil
}

func (m *mockSessionRepository) ListByDurationBetween(ctx context.Context, conferenceID string, minDuration, maxDuration int) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byDuration, nil
}

func (m *mockSessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySpeaker, nil
}

func (m *mockSessionRepository) ListStartingBefore(ctx context.Context, startTime int) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.startingBefore, nil
}

func (m *mockSessionRepository) ListBySpeakerAndConference(ctx context.Context, speaker, conferenceID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySpeakerAndConf, nil
}

type mockRegistrationRepository struct {
	registerErr    error
	unregisterOK   bool
	unregisterErr  error
	conferenceIDs  []string
	listErr        error
	registerCalls  int
}

func (m *mockRegistrationRepository) Register(ctx context.Context, conferenceID, profileID string) error {
	m.registerCalls++
	return m.registerErr
}

func (m *mockRegistrationRepository) Unregister(ctx context.Context, conferenceID, profileID string) (bool, error) {
	return m.unregisterOK, m.unregisterErr
}

func (m *mockRegistrationRepository) ListConferenceIDsByProfile(ctx context.Context, profileID string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.conferenceIDs, nil
}

type mockWishlistRepository struct {
	addErr     error
	removeOK   bool
	removeErr  error
	sessionIDs []string
	listErr    error
}

func (m *mockWishlistRepository) Add(ctx context.Context, profileID, sessionID string) error {
	return m.addErr
}

func (m *mockWishlistRepository) Remove(ctx context.Context, profileID, sessionID string) (bool, error) {
	return m.removeOK, m.removeErr
}

func (m *mockWishlistRepository) ListSessionIDsByProfile(ctx context.Context, profileID string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sessionIDs, nil
}

type mockCacheStore struct {
	values  map[string]string
	deletes []string
	err     error
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{values: make(map[string]string)}
}

func (m *mockCacheStore) Set(ctx context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *mockCacheStore) Get(ctx context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[key], nil
}

func (m *mockCacheStore) Delete(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	m.deletes = append(m.deletes, key)
	delete(m.values, key)
	return nil
}

type mockTaskQueue struct {
	tasks []*domain.Task
	err   error
}

func (m *mockTaskQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	if m.err != nil {
		return m.err
	}
	m.tasks = append(m.tasks, task)
	return nil
}

type mockMailer struct {
	to      string
	subject string
	text    string
	err     error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.subject = subject
	m.text = text
	return nil
}

const testTimeout = 2 * time.Second
