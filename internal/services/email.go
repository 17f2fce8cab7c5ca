package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
	"ayana_shop/internal/utils"
)

const VerificationCodeTTL = 10 * time.Minute

// Message email HTML
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type EmailService struct {
	mailer Mailer
	codes  CodeStore
	sent   Counter
	log    logrus.FieldLogger
}

func NewEmailService(mailer Mailer, codes CodeStore, sent Counter, log logrus.FieldLogger) *EmailService {
	return &EmailService{mailer: mailer, codes: codes, sent: counterOrNoop(sent), log: log}
}

// GenerateCode code à 4 chiffres entre 1000 et 9999
func (s *EmailService) GenerateCode() string {
	// crypto/rand ne renvoie plus d'erreur depuis Go 1.24
	n, _ := rand.Int(rand.Reader, big.NewInt(9000))
	return strconv.FormatInt(1000+n.Int64(), 10)
}

func (s *EmailService) SaveVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.codes.Save(ctx, email, code, ttl)
}

// GetVerificationCode "" si aucun code en attente
func (s *EmailService) GetVerificationCode(ctx context.Context, email string) (string, error) {
	return s.codes.Get(ctx, email)
}

// VerifyCode consomme le code s'il correspond
func (s *EmailService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	expected, err := s.codes.Get(ctx, email)
	if err != nil {
		return false, err
	}
	if expected == "" || expected != strings.TrimSpace(code) {
		return false, nil
	}
	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.WithError(err).Warn("⚠️ Suppression du code de vérification impossible")
	}
	return true, nil
}

func (s *EmailService) SendVerificationCode(ctx context.Context, email string) error {
	code := s.GenerateCode()
	if err := s.SaveVerificationCode(ctx, email, code, VerificationCodeTTL); err != nil {
		return err
	}

	subject, body, err := utils.VerificationEmail(code, VerificationCodeTTL)
	if err != nil {
		return errors.Wrap(err, "rendu email de vérification")
	}
	return s.SendEmailToCustomer(ctx, email, subject, body)
}

func (s *EmailService) SendEmailToCustomer(ctx context.Context, to, subject, body string) error {
	if err := s.mailer.Send(ctx, Message{To: to, Subject: subject, HTMLBody: body}); err != nil {
		return errors.Wrapf(err, "envoi email à %s", to)
	}
	s.sent.Inc()
	s.log.WithField("to", to).Info("📤 Email envoyé")
	return nil
}

func (s *EmailService) SendOrderConfirmation(ctx context.Context, customer models.User, order models.Order, lines []models.CartItem) error {
	views := make([]utils.OrderLineView, 0, len(lines))
	for _, line := range lines {
		name := ""
		if line.Product != nil {
			name = line.Product.Name
		}
		views = append(views, utils.OrderLineView{
			Name:     name,
			Quantity: line.Quantity,
			Total:    utils.FormatBAM(line.LineTotal()),
		})
	}

	subject, body, err := utils.OrderConfirmationEmail(displayName(customer), order.ID, order.DeliveryDate, views, order.TotalAmountToPay)
	if err != nil {
		return errors.Wrap(err, "rendu email de confirmation")
	}
	return s.SendEmailToCustomer(ctx, customer.Email, subject, body)
}

func displayName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
