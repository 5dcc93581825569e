package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"sazonpos/entity"
	"sazonpos/pkg/apperr"
	"sazonpos/repository"
	"sazonpos/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
	ErrInvalidCredentials = apperr.Authentication("invalid credentials")
	ErrNotAuthenticated   = apperr.Authentication("not authenticated")
)

// AuthService handles login, server-side sessions and staff accounts.
type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	secret   string
	ttl      time.Duration
	now      func() time.Time

	// dummyHash is compared against when the username does not exist, so both
	// failure paths cost exactly one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, secret string, ttl time.Duration) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️ dummy password hash: %v", err)
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		secret:    secret,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		dummyHash: dummy,
	}
}

// Login checks the password and opens a session that expires ttl from now.
// It returns the signed cookie value.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *entity.Session, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Store("could not check credentials", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	if _, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		log.Printf("⚠️ purge expired sessions: %v", err)
	}

	sess := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", nil, apperr.Store("could not create session", err)
	}

	token, err := utils.SignSessionToken(sess.ID, s.secret, sess.ExpiresAt)
	if err != nil {
		return "", nil, apperr.Store("could not create session", err)
	}
	log.Printf("🔑 %s logged in as %s", user.Username, user.Role)
	return token, sess, nil
}

// Resolve returns the live session behind a cookie value.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	sid, err := utils.ParseSessionToken(token, s.secret)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	sess, err := s.sessions.FindActive(ctx, sid, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, apperr.Store("could not load session", err)
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Store("could not end session", err)
	}
	return nil
}

// ----- Staff accounts -----

type CreateUserReq struct {
	Username string      `json:"username" binding:"required,min=3,max=32"`
	Password string      `json:"password" binding:"required,min=4"`
	Role     entity.Role `json:"role" binding:"required,oneof=admin caja cocina"`
}

func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Store("could not load users", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, "user not found", "could not load user")
	}
	return user, nil
}

func (s *AuthService) CreateUser(ctx context.Context, req *CreateUserReq) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if !req.Role.Valid() {
		return nil, apperr.Validation("unknown role")
	}

	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Store("could not create user", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Store("hash password failed", err)
	}
	user := &entity.User{Username: username, Password: string(hashed), Role: req.Role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username already exists")
		}
		return nil, apperr.Store("could not create user", err)
	}
	log.Printf("👤 user %s created (%s)", user.Username, user.Role)
	return user, nil
}

// DeleteUser removes an account and its sessions. Users cannot remove themselves.
func (s *AuthService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return apperr.Validation("cannot delete your own account")
	}
	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return apperr.Store("could not delete user", err)
	}
	if n == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
