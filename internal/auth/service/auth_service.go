package service

import (
	"context"
	"errors"
	"strings"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
)

// UserStore is the persistence port; *repository.UserRepository implements it.
type UserStore interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	Promote(ctx context.Context, uid string) error
	Approve(ctx context.Context, uid string) error
	UpdateLastLogin(ctx context.Context, uid string) error
	ListPending(ctx context.Context) ([]*domain.User, error)
}

type AuthService struct {
	userRepo UserStore
	admins   map[string]struct{}
	log      *logger.Logger
}

// NewAuthService wires the store with the configured admin emails.
func NewAuthService(userRepo UserStore, adminEmails []string, log *logger.Logger) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		userRepo: userRepo,
		admins:   admins,
		log:      log,
	}
}

func (s *AuthService) isAdminEmail(email string) bool {
	_, ok := s.admins[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (s *AuthService) GetUserByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return s.userRepo.GetByFirebaseUID(ctx, uid)
}

// SyncUser creates or refreshes the profile. New users start pending unless
// their verified email is a configured admin.
func (s *AuthService) SyncUser(ctx context.Context, req domain.SyncUserRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// only a verified token email may grant admin
	admin := req.EmailVerified && s.isAdminEmail(req.Email)
	user := &domain.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Name:        req.Name,
		PersonType:  domain.PersonType(req.PersonType),
		Document:    req.Document,
		WhatsApp:    req.WhatsApp,
		UF:          req.UF,
		City:        req.City,
		IsAdmin:     admin,
		IsApproved:  admin,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	// an existing account whose email was added to ADMIN_EMAILS later
	if admin && !(user.IsAdmin && user.IsApproved) {
		if err := s.userRepo.Promote(ctx, user.FirebaseUID); err != nil {
			return nil, err
		}
		user.IsAdmin, user.IsApproved = true, true
	}

	if !user.IsApproved {
		s.log.Info("user awaiting approval",
			"user_id", user.FirebaseUID,
			"person_type", user.PersonType,
			"uf", user.UF,
			"city", user.City,
		)
	}
	return user, nil
}

// RecordLogin updates the last login timestamp
func (s *AuthService) RecordLogin(ctx context.Context, uid string) error {
	return s.userRepo.UpdateLastLogin(ctx, uid)
}

func (s *AuthService) ListPending(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListPending(ctx)
}

func (s *AuthService) Approve(ctx context.Context, uid string) (*domain.User, error) {
	if err := s.userRepo.Approve(ctx, uid); err != nil {
		return nil, err
	}
	s.log.Info("user approved", "user_id", uid)
	return s.userRepo.GetByFirebaseUID(ctx, uid)
}

// Authorize loads the user and checks the approval gate, plus the admin gate when asked.
func (s *AuthService) Authorize(ctx context.Context, uid string, admin bool) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if admin {
		if !user.IsAdmin {
			return nil, domain.ErrNotAdmin
		}
		return user, nil
	}
	if !user.IsApproved && !user.IsAdmin {
		return nil, domain.ErrPendingApproval
	}
	return user, nil
}

// IsAccessError reports whether err should be rendered as 403.
func IsAccessError(err error) bool {
	return errors.Is(err, domain.ErrPendingApproval) || errors.Is(err, domain.ErrNotAdmin)
}
