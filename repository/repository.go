package repository

import "gorm.io/gorm"

// Repository is the aggregate entry point for all entity repositories.
type Repository struct {
	Users        UserRepository
	Invitations  InvitationRepository
	Events       EventRepository
	Participants ParticipantRepository
	Gifts        GiftRepository
	Reviews      ReviewRepository
}

// NewRepository wires every repository onto the shared gorm connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Users:        NewUserRepo(db),
		Invitations:  NewInvitationRepo(db),
		Events:       NewEventRepo(db),
		Participants: NewParticipantRepo(db),
		Gifts:        NewGiftRepo(db),
		Reviews:      NewReviewRepo(db),
	}
}
