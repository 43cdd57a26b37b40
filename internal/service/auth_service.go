package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gatepass/internal/auth"
	"gatepass/internal/cache"
	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields of a student registration.
type RegisterInput struct {
	Username      string
	Password      string
	Name          string
	RoomNo        string
	Course        string
	Batch         string
	PhoneNo       string
	ParentPhoneNo string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string, role model.Role) (user *model.User, sessionToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	userRepo     repository.UserRepository
	sessions     *auth.SessionService
	sessionStore auth.SessionStoreInterface
	cache        cache.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionService, sessionStore auth.SessionStoreInterface, cache cache.Store) AuthService {
	return &authService{
		userRepo:     userRepo,
		sessions:     sessions,
		sessionStore: sessionStore,
		cache:        cache,
	}
}

// Register creates a new student account with a hashed password. Warden and
// guard accounts are provisioned by cmd/seed, never through registration.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, errors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:      input.Username,
		PasswordHash:  string(hashedPassword),
		Role:          model.RoleStudent,
		Name:          input.Name,
		RoomNo:        input.RoomNo,
		Course:        input.Course,
		Batch:         input.Batch,
		PhoneNo:       input.PhoneNo,
		ParentPhoneNo: input.ParentPhoneNo,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two registrations can race past the username check; the unique
		// index on username rejects the loser.
		if isDuplicateKey(err) {
			return nil, errors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// isDuplicateKey reports whether err is a unique-index violation, either as
// GORM's translated error or as MySQL's raw error 1062.
func isDuplicateKey(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return stderrors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Login authenticates a username/password/role triple and establishes a
// server-side session. A wrong password and a wrong role fail differently:
// the former is a credential error, the latter a role mismatch on an
// otherwise valid login.
func (s *authService) Login(ctx context.Context, username, password string, role model.Role) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if user.Role != role {
		return nil, "", &errors.RoleMismatchError{Role: string(role)}
	}

	sessionID, token, err := s.sessions.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	if err := s.sessionStore.Store(ctx, sessionID, user.ID, string(user.Role), auth.SessionTTL); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	return user, token, nil
}

// Logout invalidates the server-side session record.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionStore.Delete(ctx, sessionID)
}

// CurrentUser retrieves a user profile by ID with caching.
func (s *authService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(userID), payload, userCacheTTL)
	}

	return user, nil
}
