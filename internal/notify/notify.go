// Package notify delivers alert signals from the ingestion pipeline as
// emails over SMTP.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/config"
	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/PDHeisenberg/cardwise/internal/pipeline"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendWrongCardAlert emails the user that a better card was available
func (s *Sender) SendWrongCardAlert(to string, alert pipeline.WrongCardAlert) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Better Card Available"

	body := fmt.Sprintf(
		"You paid %s %.2f at %s with %s.\n"+
			"%s would have earned %s (saved ~%s %.2f).\n",
		s.cfg.HomeCurrency, alert.Amount, alert.MerchantName, alert.UsedCardName,
		alert.OptimalCardName, alert.OptimalRate, s.cfg.HomeCurrency, alert.RewardsDelta,
	)
	body += "\nBest regards,\nCardWise"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendNewCardDetected emails the user that a new card was auto-detected
func (s *Sender) SendNewCardDetected(to string, alert pipeline.NewCardAlert) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "New Card Detected"

	body := fmt.Sprintf(
		"Found a new card in your wallet: %s.\n"+
			"Recommendations will be optimized for it from now on.\n",
		alert.CardName,
	)
	body += "\nBest regards,\nCardWise"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendWeeklyDigest emails the user's weekly rewards digest
func (s *Sender) SendWeeklyDigest(to string, summary models.RewardsSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Weekly Rewards Digest"

	body := fmt.Sprintf(
		"This week: %d transactions, %s %.2f spent, %s %.2f in missed rewards.\n"+
			"You used the optimal card %.0f%% of the time.\n",
		summary.TransactionCount, s.cfg.HomeCurrency, summary.TotalSpend,
		s.cfg.HomeCurrency, summary.TotalMissedRewards, summary.OptimizationRate()*100,
	)
	for _, cs := range summary.CategoryBreakdown {
		if cs.MissedRewards > 0 {
			body += fmt.Sprintf("  %s: %s %.2f missed over %d transactions\n",
				cs.Category.DisplayName(), s.cfg.HomeCurrency, cs.MissedRewards, cs.TransactionCount)
		}
	}
	body += "\nBest regards,\nCardWise"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// UserDirectory resolves user ids to deliverable addresses
type UserDirectory interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Dispatcher adapts the SMTP sender to the pipeline's fire-and-forget
// notifier contract. Delivery runs in the background and failures are
// logged, never propagated into ingestion.
type Dispatcher struct {
	sender *Sender
	users  UserDirectory
	logger *logrus.Logger
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(sender *Sender, users UserDirectory, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, users: users, logger: logger}
}

// WrongCardAlert implements pipeline.Notifier
func (d *Dispatcher) WrongCardAlert(alert pipeline.WrongCardAlert) {
	go d.deliver(alert.UserID, func(to string) error {
		return d.sender.SendWrongCardAlert(to, alert)
	})
}

// NewCardDetected implements pipeline.Notifier
func (d *Dispatcher) NewCardDetected(alert pipeline.NewCardAlert) {
	go d.deliver(alert.UserID, func(to string) error {
		return d.sender.SendNewCardDetected(to, alert)
	})
}

func (d *Dispatcher) deliver(userID int64, send func(to string) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := d.users.FindUserByID(ctx, userID)
	if err != nil {
		d.logger.Errorf("Cannot resolve user %d for notification: %v", userID, err)
		return
	}
	if err := send(user.Email); err != nil {
		d.logger.Errorf("Notification delivery to user %d failed: %v", userID, err)
	}
}
