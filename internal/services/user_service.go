package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	jwtutil "github.com/AyushPal0/Mental-Wellness/pkg/jwt"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minPasswordLength = 6

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`)
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error)
}

// UserService encapsulates signup, login and profile logic.
type UserService struct {
	repo        UserStore
	sanitizer   *sanitize.Sanitizer
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, sanitizer *sanitize.Sanitizer, jwtSecret string, tokenExpiry time.Duration) *UserService {
	return &UserService{
		repo:        repo,
		sanitizer:   sanitizer,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// RegisterUser validates the request, hashes the password and stores the user.
func (s *UserService) RegisterUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || emailAddr == "" || req.Password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, invalidf("username, email and password are required")
	}
	if !usernameRegex.MatchString(username) {
		return nil, invalidf("username must be 3-32 letters, digits, '.', '_' or '-'")
	}
	if !emailRegex.MatchString(emailAddr) {
		logrus.WithField("email", emailAddr).Warn("Invalid email format during registration")
		return nil, invalidf("invalid email format")
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalidf("password must be at least %d characters", minPasswordLength)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		FullName:     s.sanitizer.Text(req.FullName),
		PasswordHash: string(hashedPwd),
		Role:         models.RoleUser,
		LastActiveAt: time.Now(),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logrus.WithField("username", username).Warn("Username or email already in use")
			return nil, err
		}
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": createdUser.ID.Hex(),
		"role":   createdUser.Role,
	}).Info("User registered successfully")
	return createdUser, nil
}

// AuthenticateUser checks the credentials and issues a bearer token.
func (s *UserService) AuthenticateUser(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Password == "" || (req.Email == "" && req.Username == "") {
		return nil, invalidf("email or username and password are required")
	}

	var (
		user *models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	} else {
		user, err = s.repo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		logrus.Warn("Login attempt for unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logrus.WithField("userID", user.ID.Hex()).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return &models.AuthResponse{Token: token, User: user}, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetPublicProfile returns what other users may see of a user.
func (s *UserService) GetPublicProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

// UpdateProfile sanitizes and stores the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	if upd.FullName == nil && upd.Avatar == nil {
		return nil, invalidf("nothing to update")
	}
	if upd.FullName != nil {
		name := s.sanitizer.Text(*upd.FullName)
		upd.FullName = &name
	}
	if upd.Avatar != nil && *upd.Avatar != "" {
		avatar := s.sanitizer.URL(*upd.Avatar)
		if avatar == "" {
			return nil, invalidf("avatar must be an http(s) URL")
		}
		upd.Avatar = &avatar
	}

	user, err := s.repo.UpdateProfile(ctx, id, upd)
	if err != nil {
		logrus.WithError(err).WithField("userID", id.Hex()).Warn("Failed to update profile")
		return nil, err
	}
	return user, nil
}
