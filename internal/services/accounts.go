package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
	"ayana_shop/internal/utils"
)

const MinPasswordLength = 6

var (
	ErrEmailRequired      = errors.New("email et mot de passe obligatoires")
	ErrPasswordTooShort   = errors.New("mot de passe trop court")
	ErrPasswordMismatch   = errors.New("les mots de passe ne correspondent pas")
	ErrEmailTaken         = errors.New("email déjà utilisé")
	ErrInvalidCredentials = errors.New("identifiants invalides")
	ErrEmailNotConfirmed  = errors.New("email non confirmé")
	ErrLockedOut          = errors.New("compte temporairement verrouillé")
	ErrInvalidCode        = errors.New("code de vérification invalide")
)

const (
	MsgEmailNotConfirmed = "You must confirm your email before logging in."
	MsgInvalidLogin      = "Invalid login attempt."
)

// Registration formulaire d'inscription
type Registration struct {
	Email           string
	FullName        string
	Password        string
	ConfirmPassword string
}

type AccountService struct {
	users   UserStore
	limiter LoginLimiter
	emails  *EmailService
	secret  []byte
	clock   Clock
	log     logrus.FieldLogger
}

func NewAccountService(users UserStore, limiter LoginLimiter, emails *EmailService, jwtSecret string,
	clock Clock, log logrus.FieldLogger) *AccountService {
	return &AccountService{
		users:   users,
		limiter: limiter,
		emails:  emails,
		secret:  []byte(jwtSecret),
		clock:   clock,
		log:     log,
	}
}

func (s *AccountService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	email := normalizeEmail(reg.Email)
	if email == "" || reg.Password == "" {
		return nil, ErrEmailRequired
	}
	if len(reg.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if reg.Password != reg.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash mot de passe")
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(reg.FullName),
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		CreatedAt:    s.clock.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("👤 Compte créé")

	if err := s.emails.SendVerificationCode(ctx, email); err != nil {
		s.log.WithError(err).Warn("⚠️ Code de vérification non envoyé")
	}
	return user, nil
}

// ConfirmEmail valide le code reçu par email
func (s *AccountService) ConfirmEmail(ctx context.Context, email, code string) error {
	user, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return nil
	}

	ok, err := s.emails.VerifyCode(ctx, user.Email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}
	return s.users.ConfirmEmail(ctx, user.ID)
}

func (s *AccountService) ResendCode(ctx context.Context, email string) error {
	user, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return nil
	}
	return s.emails.SendVerificationCode(ctx, user.Email)
}

// Login renvoie l'utilisateur et son JWT
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)

	locked, _, err := s.limiter.Locked(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if locked {
		return nil, "", ErrLockedOut
	}

	user, err := s.users.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, "", s.failure(ctx, email)
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", s.failure(ctx, email)
	}
	if !user.EmailConfirmed {
		return nil, "", ErrEmailNotConfirmed
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.WithError(err).Warn("⚠️ Remise à zéro des tentatives impossible")
	}
	token, err := s.IssueToken(*user)
	if err != nil {
		return nil, "", err
	}
	s.log.WithField("user_id", user.ID).Info("🔐 Connexion réussie")
	return user, token, nil
}

func (s *AccountService) failure(ctx context.Context, email string) error {
	lockedNow, err := s.limiter.RegisterFailure(ctx, email)
	if err != nil {
		return err
	}
	if lockedNow {
		s.log.WithField("email", email).Warn("🔒 Trop de tentatives, compte verrouillé")
		return ErrLockedOut
	}
	return ErrInvalidCredentials
}

// ExternalLogin connexion via un fournisseur OAuth, crée le compte au premier passage
func (s *AccountService) ExternalLogin(ctx context.Context, provider, email, name string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}

	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		user = &models.User{
			ID:             uuid.NewString(),
			Email:          email,
			FullName:       strings.TrimSpace(name),
			Role:           models.RoleCustomer,
			EmailConfirmed: true,
			Provider:       provider,
			CreatedAt:      s.clock.now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
		s.log.WithFields(logrus.Fields{"user_id": user.ID, "provider": provider}).Info("👤 Compte externe créé")
	} else if err != nil {
		return nil, "", err
	} else if !user.EmailConfirmed {
		// le fournisseur a vérifié l'adresse
		if err := s.users.ConfirmEmail(ctx, user.ID); err != nil {
			return nil, "", err
		}
		user.EmailConfirmed = true
	}

	token, err := s.IssueToken(*user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateEmployee compte employé déjà confirmé
func (s *AccountService) CreateEmployee(ctx context.Context, email, fullName, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       strings.TrimSpace(fullName),
		PasswordHash:   hash,
		Role:           models.RoleEmployee,
		EmailConfirmed: true,
		CreatedAt:      s.clock.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.ByEmail(ctx, normalizeEmail(email))
}

func (s *AccountService) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *AccountService) IssueToken(user models.User) (string, error) {
	return utils.GenerateJWT(user, s.secret, s.clock.now())
}

// TokenTTL durée de vie du cookie
func (s *AccountService) TokenTTL() time.Duration {
	return utils.TokenTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
