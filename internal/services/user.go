package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"schooladmin/internal/domain"
)

const (
	minPasswordLen      = 8
	resetCodeDigits     = 6
	resetCodeExpiryMins = 15
	resetCodeMaxTries   = 5
)

var (
	emailRegexp    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	resetCodeRegex = regexp.MustCompile(`^\d{6}$`)
)

type userService struct {
	userRepo      domain.UserRepository
	roleRepo      domain.RoleRepository
	resetCodeRepo domain.ResetCodeRepository
	hasher        domain.PasswordHasher
	tokenIssuer   domain.TokenIssuer
	tokenExpiry   time.Duration
	emailService  domain.EmailService
}

// NewUserService creates a UserService with the given repositories and auth ports.
// emailService may be nil, in which case no mail is sent.
func NewUserService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	resetCodeRepo domain.ResetCodeRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
) domain.UserService {
	return &userService{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		resetCodeRepo: resetCodeRepo,
		hasher:        hasher,
		tokenIssuer:   tokenIssuer,
		tokenExpiry:   tokenExpiry,
		emailService:  emailService,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return "", invalidf("invalid email format")
	}
	return email, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLen {
		return invalidf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load roles: %w", err)
	}
	roleCodes := lo.Map(roles, func(r *domain.Role, _ int) string { return r.Code })
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, roleCodes, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, user *domain.User) error {
	user.Name = strings.TrimSpace(user.Name)
	email, err := normalizeEmail(user.Email)
	if err != nil {
		return err
	}
	user.Email = email
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// RequestPasswordReset mails a one-time code to a known staff address.
// Unknown addresses succeed without sending anything.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	code, err := generateResetCode(resetCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := time.Now().Add(resetCodeExpiryMins * time.Minute)
	if err := s.resetCodeRepo.Create(ctx, email, hashResetCode(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if s.emailService != nil {
		data := &domain.PasswordResetEmailData{
			Email:            email,
			Code:             code,
			ExpiresInMinutes: resetCodeExpiryMins,
		}
		if err := s.emailService.SendPasswordReset(ctx, data); err != nil {
			return fmt.Errorf("failed to send password reset email: %w", err)
		}
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if !resetCodeRegex.MatchString(code) {
		return invalidf("invalid or expired code")
	}
	consumed, err := s.resetCodeRepo.Consume(ctx, email, hashResetCode(code), resetCodeMaxTries)
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}
	if !consumed {
		return invalidf("invalid or expired code")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return invalidf("invalid or expired code")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return s.storePassword(ctx, user.ID, newPassword)
}

func (s *userService) storePassword(ctx context.Context, userID, password string) error {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *userService) CreateStaff(ctx context.Context, email, name, password string, admin bool) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	user, err := s.userRepo.GetByEmail(ctx, email)
	created := false
	switch {
	case err == nil:
		if name != "" && name != user.Name {
			user.Name = name
			user.UpdatedAt = time.Now()
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		if err := s.storePassword(ctx, user.ID, password); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrUserNotFound):
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		hash, err := s.hasher.Hash(salt, password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		now := time.Now()
		user = domain.NewUser(email, name, now, now)
		user.PasswordHash = hash
		user.Salt = salt
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		created = true
	default:
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	roleCodes := []string{domain.RoleTeacher}
	if admin {
		roleCodes = append(roleCodes, domain.RoleAdmin)
	}
	for _, code := range roleCodes {
		role, err := s.roleRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to get role %q: %w", code, err)
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, fmt.Errorf("failed to assign role: %w", err)
		}
	}

	if created && s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			return user, fmt.Errorf("failed to send welcome email: %w", err)
		}
	}
	return user, nil
}

func (s *userService) SetPassword(ctx context.Context, email, password string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := checkPassword(password); err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	return s.storePassword(ctx, user.ID, password)
}

func generateResetCode(digits int) (string, error) {
	const digitspace = "0123456789"
	b := make([]byte, digits)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digitspace[int(b[i])%len(digitspace)]
	}
	return string(b), nil
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
