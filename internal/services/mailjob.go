package services

import (
	"context"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/utils"
)

// InactivityMailJob relance par email les clients inactifs, une fois par passage
type InactivityMailJob struct {
	customers *CustomerService
	emails    *EmailService
	schedule  string
	shopURL   string
	log       logrus.FieldLogger

	mu    sync.Mutex
	cron  *cron.Cron
	first sync.WaitGroup
}

func NewInactivityMailJob(customers *CustomerService, emails *EmailService, schedule, shopURL string, log logrus.FieldLogger) *InactivityMailJob {
	return &InactivityMailJob{
		customers: customers,
		emails:    emails,
		schedule:  schedule,
		shopURL:   shopURL,
		log:       log,
	}
}

// RunOnce envoie un email par client inactif et renvoie le nombre d'envois réussis
func (j *InactivityMailJob) RunOnce(ctx context.Context) (int, error) {
	customers, err := j.customers.GetInactiveCustomers(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(customers))
	sent := 0
	for _, c := range customers {
		email := strings.ToLower(c.Email)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true

		subject, body, err := utils.InactivityReminderEmail(displayName(c), j.shopURL)
		if err != nil {
			return sent, err
		}
		if err := j.emails.SendEmailToCustomer(ctx, c.Email, subject, body); err != nil {
			j.log.WithError(err).WithField("customer_id", c.ID).Warn("⚠️ Relance non envoyée")
			continue
		}
		sent++
	}

	j.log.WithField("sent", sent).Info("📬 Passage relance clients inactifs terminé")
	return sent, nil
}

// Start lance un premier passage immédiatement puis selon le planning
func (j *InactivityMailJob) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(j.schedule, func() { j.run(ctx) }); err != nil {
		return err
	}

	j.first.Add(1)
	go func() {
		defer j.first.Done()
		j.run(ctx)
	}()
	c.Start()
	j.cron = c
	j.log.WithField("schedule", j.schedule).Info("⏰ Relance clients inactifs planifiée")
	return nil
}

// Stop attend la fin du premier passage et de celui planifié en cours
func (j *InactivityMailJob) Stop() {
	j.mu.Lock()
	c := j.cron
	j.cron = nil
	j.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	j.first.Wait()
}

func (j *InactivityMailJob) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := j.RunOnce(ctx); err != nil {
		j.log.WithError(err).Error("❌ Relance clients inactifs en échec")
	}
}
