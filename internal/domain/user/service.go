package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxNameLength     = 100

	minHeightCm = 50.0
	maxHeightCm = 300.0
	minWeightKg = 20.0
	maxWeightKg = 500.0
)

type Service struct {
	repo       Repository
	avatars    AvatarStore
	bcryptCost int
}

func NewService(repo Repository, avatars AvatarStore, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, avatars: avatars, bcryptCost: bcryptCost}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, invalid("password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate never tells unknown emails apart from wrong passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, normalized)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	height, err := parseMeasure("height", input.Height, minHeightCm, maxHeightCm)
	if err != nil {
		return nil, err
	}
	weight, err := parseMeasure("weight", input.Weight, minWeightKg, maxWeightKg)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var previousAvatar, savedAvatar string
	if input.Avatar != nil {
		if s.avatars == nil {
			return nil, ErrUnsupportedAvatar
		}
		url, err := s.avatars.Save(ctx, user.ID, *input.Avatar)
		if err != nil {
			return nil, err
		}
		if user.AvatarURL != nil {
			previousAvatar = *user.AvatarURL
		}
		savedAvatar = url
		user.AvatarURL = &url
	}

	user.Name = name
	user.HeightCm = &height
	user.WeightKg = &weight
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		if savedAvatar != "" && savedAvatar != previousAvatar {
			_ = s.avatars.Remove(ctx, savedAvatar)
		}
		return nil, err
	}

	if previousAvatar != "" && previousAvatar != *user.AvatarURL {
		// the profile already points at the new file
		_ = s.avatars.Remove(ctx, previousAvatar)
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.CurrentPassword == "" {
		return invalid("current_password", "is required")
	}
	if len(input.NewPassword) < minPasswordLength {
		return invalid("new_password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}

	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, user.ID, string(hash))
}

// EnsureProfile makes sure an externally identified user has a row.
func (s *Service) EnsureProfile(ctx context.Context, userID, email, name, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	user := User{ID: userID, Name: strings.TrimSpace(name), Email: strings.ToLower(strings.TrimSpace(email))}
	if user.Name == "" {
		user.Name = "Atleta"
	}
	if avatarURL != "" {
		user.AvatarURL = &avatarURL
	}
	return s.repo.EnsureExists(ctx, &user)
}

func validateName(name string) error {
	if name == "" {
		return invalid("name", "is required")
	}
	if len([]rune(name)) > maxNameLength {
		return invalid("name", fmt.Sprintf("must have at most %d characters", maxNameLength))
	}
	return nil
}

func normalizeEmail(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", invalid("email", "is invalid")
	}
	return value, nil
}

// parseMeasure accepts "70.5" and "70,5" and rounds to one decimal place.
func parseMeasure(field, value string, min, max float64) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if value == "" {
		return 0, invalid(field, "is required")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, invalid(field, "must be a number")
	}
	if parsed < min || parsed > max {
		return 0, invalid(field, fmt.Sprintf("must be between %.0f and %.0f", min, max))
	}
	return math.Round(parsed*10) / 10, nil
}
