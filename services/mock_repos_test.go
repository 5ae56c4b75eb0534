package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"gift-exchange-system/models"
	"gift-exchange-system/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*models.User // by id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

// ── Mock InvitationRepository ──

type mockInvitationRepo struct {
	invitations map[string]*models.Invitation // by id
}

func newMockInvitationRepo() *mockInvitationRepo {
	return &mockInvitationRepo{invitations: make(map[string]*models.Invitation)}
}

func (m *mockInvitationRepo) Create(_ context.Context, inv *models.Invitation) error {
	for _, existing := range m.invitations {
		if existing.Code == inv.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *inv
	m.invitations[inv.ID] = &cp
	return nil
}

func (m *mockInvitationRepo) GetValidByCode(_ context.Context, code string, now time.Time) (*models.Invitation, error) {
	for _, inv := range m.invitations {
		if inv.Code == code && inv.IsValid && inv.ExpiresAt.After(now) {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvitationRepo) Redeem(_ context.Context, code, usedBy string, now time.Time) (bool, error) {
	for _, inv := range m.invitations {
		if inv.Code == code && inv.IsValid && inv.ExpiresAt.After(now) {
			inv.IsValid = false
			inv.UsedBy = &usedBy
			return true, nil
		}
	}
	return false, nil
}

func (m *mockInvitationRepo) InvalidateExpired(_ context.Context, now time.Time) (int64, error) {
	var swept int64
	for _, inv := range m.invitations {
		if inv.IsValid && inv.ExpiresAt.Before(now) {
			inv.IsValid = false
			swept++
		}
	}
	return swept, nil
}

func (m *mockInvitationRepo) ListByCreator(_ context.Context, userID string) ([]models.Invitation, error) {
	var result []models.Invitation
	for _, inv := range m.invitations {
		if inv.CreatedBy == userID {
			result = append(result, *inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events       map[string]*models.Event
	participants *mockParticipantRepo
	gifts        *mockGiftRepo
}

func (m *mockEventRepo) CreateWithParticipants(ctx context.Context, event *models.Event, participantIDs []string) error {
	cp := *event
	m.events[event.ID] = &cp
	for i, userID := range participantIDs {
		p := &models.EventParticipant{
			ID:        fmt.Sprintf("part-%s-%d", event.ID, i),
			EventID:   event.ID,
			UserID:    userID,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Millisecond),
		}
		if err := m.participants.Add(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	if e, ok := m.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) ListActive(_ context.Context, now time.Time) ([]models.Event, error) {
	open := make(map[string]bool)
	for _, s := range models.OpenStatuses() {
		open[s] = true
	}
	var result []models.Event
	for _, e := range m.events {
		if open[e.Status] && e.EndDate.After(now) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockEventRepo) ListExpiredActive(_ context.Context, now time.Time) ([]models.Event, error) {
	var result []models.Event
	for _, e := range m.events {
		if e.Status == models.EventStatusActive && e.EndDate.Before(now) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEventRepo) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	e, ok := m.events[id]
	if !ok {
		return false, nil
	}
	e.Status = status
	return true, nil
}

func (m *mockEventRepo) CompleteWithGifts(_ context.Context, id string) (bool, error) {
	e, ok := m.events[id]
	if !ok {
		return false, nil
	}
	e.Status = models.EventStatusCompleted
	for _, g := range m.gifts.gifts {
		if g.EventID != id {
			continue
		}
		if g.Status == models.GiftStatusAvailable || g.Status == models.GiftStatusSelected {
			g.Status = models.GiftStatusCompleted
		}
	}
	return true, nil
}

func (m *mockEventRepo) SetCoverPhotoURL(_ context.Context, id, url string) (bool, error) {
	e, ok := m.events[id]
	if !ok {
		return false, nil
	}
	e.CoverPhotoURL = url
	return true, nil
}

// ── Mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants []*models.EventParticipant
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{}
}

func (m *mockParticipantRepo) Add(_ context.Context, p *models.EventParticipant) error {
	for _, existing := range m.participants {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *p
	m.participants = append(m.participants, &cp)
	return nil
}

func (m *mockParticipantRepo) ListByEvent(_ context.Context, eventID string) ([]models.EventParticipant, error) {
	var result []models.EventParticipant
	for _, p := range m.participants {
		if p.EventID == eventID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockParticipantRepo) ListByUser(_ context.Context, userID string) ([]models.EventParticipant, error) {
	var result []models.EventParticipant
	for _, p := range m.participants {
		if p.UserID == userID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockParticipantRepo) IsParticipant(_ context.Context, eventID, userID string) (bool, error) {
	for _, p := range m.participants {
		if p.EventID == eventID && p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock GiftRepository ──

type mockGiftRepo struct {
	gifts map[string]*models.Gift
}

func newMockGiftRepo() *mockGiftRepo {
	return &mockGiftRepo{gifts: make(map[string]*models.Gift)}
}

func (m *mockGiftRepo) Create(_ context.Context, gift *models.Gift) error {
	cp := *gift
	m.gifts[gift.ID] = &cp
	return nil
}

func (m *mockGiftRepo) GetByID(_ context.Context, id string) (*models.Gift, error) {
	if g, ok := m.gifts[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGiftRepo) ListAvailableByEvent(_ context.Context, eventID string) ([]models.Gift, error) {
	var result []models.Gift
	for _, g := range m.gifts {
		if g.EventID == eventID && g.Status == models.GiftStatusAvailable {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGiftRepo) ListByEvent(_ context.Context, eventID string) ([]models.Gift, error) {
	var result []models.Gift
	for _, g := range m.gifts {
		if g.EventID == eventID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGiftRepo) Select(_ context.Context, giftID, userID string) (bool, error) {
	g, ok := m.gifts[giftID]
	if !ok || g.Status != models.GiftStatusAvailable {
		return false, nil
	}
	g.ReceivedBy = &userID
	g.Status = models.GiftStatusSelected
	return true, nil
}

func (m *mockGiftRepo) CancelSelection(_ context.Context, giftID, userID string) (bool, error) {
	g, ok := m.gifts[giftID]
	if !ok || g.Status != models.GiftStatusSelected || g.ReceivedBy == nil || *g.ReceivedBy != userID {
		return false, nil
	}
	g.ReceivedBy = nil
	g.Status = models.GiftStatusAvailable
	return true, nil
}

func (m *mockGiftRepo) ListCreatedBy(_ context.Context, userID string) ([]models.Gift, error) {
	var result []models.Gift
	for _, g := range m.gifts {
		if g.CreatedBy == userID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGiftRepo) ListReceivedBy(_ context.Context, userID string) ([]models.Gift, error) {
	var result []models.Gift
	for _, g := range m.gifts {
		if g.ReceivedBy != nil && *g.ReceivedBy == userID {
			result = append(result, *g)
		}
	}
	return result, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	reviews map[string]*models.GiftReview
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*models.GiftReview)}
}

func (m *mockReviewRepo) Create(_ context.Context, review *models.GiftReview) error {
	for _, existing := range m.reviews {
		if existing.GiftID == review.GiftID && existing.ReviewerID == review.ReviewerID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id string) (*models.GiftReview, error) {
	if r, ok := m.reviews[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) ListByGiftIDs(_ context.Context, giftIDs []string) ([]models.GiftReview, error) {
	wanted := make(map[string]bool, len(giftIDs))
	for _, id := range giftIDs {
		wanted[id] = true
	}
	var result []models.GiftReview
	for _, r := range m.reviews {
		if wanted[r.GiftID] {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) ListByReviewer(_ context.Context, userID string) ([]models.GiftReview, error) {
	var result []models.GiftReview
	for _, r := range m.reviews {
		if r.ReviewerID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) Update(_ context.Context, id, content string, rating int) (bool, error) {
	r, ok := m.reviews[id]
	if !ok {
		return false, nil
	}
	r.Content = content
	r.Rating = rating
	return true, nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) error {
	delete(m.reviews, id)
	return nil
}

// ── Wiring ──

type testRepos struct {
	users        *mockUserRepo
	invitations  *mockInvitationRepo
	events       *mockEventRepo
	participants *mockParticipantRepo
	gifts        *mockGiftRepo
	reviews      *mockReviewRepo
}

func newTestRepository() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		users:        newMockUserRepo(),
		invitations:  newMockInvitationRepo(),
		participants: newMockParticipantRepo(),
		gifts:        newMockGiftRepo(),
		reviews:      newMockReviewRepo(),
	}
	mocks.events = &mockEventRepo{
		events:       make(map[string]*models.Event),
		participants: mocks.participants,
		gifts:        mocks.gifts,
	}
	repo := &repository.Repository{
		Users:        mocks.users,
		Invitations:  mocks.invitations,
		Events:       mocks.events,
		Participants: mocks.participants,
		Gifts:        mocks.gifts,
		Reviews:      mocks.reviews,
	}
	return repo, mocks
}

func seedUser(mocks *testRepos, id, username string) *models.User {
	u := &models.User{ID: id, Email: id + "@example.com", Username: username}
	mocks.users.users[id] = u
	return u
}

func seedEvent(mocks *testRepos, id, createdBy, status string, endsIn time.Duration) *models.Event {
	e := &models.Event{
		ID:        id,
		Title:     "Event " + id,
		CreatedBy: createdBy,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(endsIn),
		Status:    status,
	}
	mocks.events.events[id] = e
	return e
}

func seedParticipant(mocks *testRepos, eventID, userID string) {
	mocks.participants.participants = append(mocks.participants.participants, &models.EventParticipant{
		ID:        "part-" + eventID + "-" + userID,
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
}

func seedGift(mocks *testRepos, id, eventID, createdBy string) *models.Gift {
	g := &models.Gift{
		ID:          id,
		EventID:     eventID,
		Description: "gift " + id,
		CreatedBy:   createdBy,
		Status:      models.GiftStatusAvailable,
	}
	mocks.gifts.gifts[id] = g
	return g
}
