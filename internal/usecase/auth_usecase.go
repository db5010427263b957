package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/apperr"
	"inkwell/pkg/jwt"
	"inkwell/pkg/logger"
	"inkwell/pkg/s3"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthUseCase interface {
	Register(email, password, name string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	Logout(userID string) error
	CurrentUser(token string) (*entity.User, error)
	GetUser(userID string) (*entity.User, error)
	UpdatePrefs(userID string, prefs map[string]interface{}) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	s3Client   *s3.Client
	sessions   *redis.Client
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	sessions *redis.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		s3Client:   s3Client,
		sessions:   sessions,
		logger:     logger,
	}
}

// Register creates the account and starts a session. The account ID is
// derived from the email's local part, mirroring how accounts are addressed
// in URLs and author references.
func (uc *authUseCase) Register(email, password, name string) (*entity.User, string, error) {
	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", apperr.AccountCreation("user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to check email availability: %v", err)
		return nil, "", fmt.Errorf("failed to check email availability: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		ID:       accountID(email),
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		Prefs:    map[string]interface{}{},
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.AccountCreation("account id %q is already taken", user.ID)
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.startSession(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", apperr.Authentication("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.Authentication("invalid credentials")
	}

	token, err := uc.startSession(user)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Logout destroys every session the user holds. Calling it with no active
// session is a no-op.
func (uc *authUseCase) Logout(userID string) error {
	if uc.sessions == nil {
		return nil
	}

	ctx := context.Background()
	keys, err := uc.sessions.Keys(ctx, fmt.Sprintf("session:%s:*", userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return uc.sessions.Del(ctx, keys...).Err()
}

// CurrentUser resolves a bearer token to its identity. An invalid, expired
// or revoked token maps to a nil user without an error; any other failure
// propagates unchanged.
func (uc *authUseCase) CurrentUser(token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil
	}

	if uc.sessions != nil {
		exists, err := uc.sessions.Exists(context.Background(), fmt.Sprintf("session:%s:%s", claims.UserID, claims.SessionID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check session: %w", err)
		}
		if exists == 0 {
			return nil, nil
		}
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found: %s", userID)
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdatePrefs merges the given keys into the preference bag; existing keys
// not named are kept.
func (uc *authUseCase) UpdatePrefs(userID string, prefs map[string]interface{}) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found: %s", userID)
		}
		return nil, err
	}

	if user.Prefs == nil {
		user.Prefs = map[string]interface{}{}
	}
	for k, v := range prefs {
		user.Prefs[k] = v
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user prefs: %v", err)
		return nil, fmt.Errorf("failed to update preferences")
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	key, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		return nil, err
	}

	return uc.UpdatePrefs(userID, map[string]interface{}{"avatar": key})
}

func (uc *authUseCase) startSession(user *entity.User) (string, error) {
	token, err := uc.jwtService.GenerateToken(user.ID, "user")
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return "", fmt.Errorf("failed to generate token")
	}

	if uc.sessions != nil {
		claims, err := uc.jwtService.ValidateToken(token)
		if err != nil {
			return "", fmt.Errorf("failed to read session claims: %w", err)
		}
		key := fmt.Sprintf("session:%s:%s", user.ID, claims.SessionID)
		if err := uc.sessions.Set(context.Background(), key, "1", sessionTTL).Err(); err != nil {
			return "", fmt.Errorf("failed to store session: %w", err)
		}
	}

	return token, nil
}

func accountID(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
