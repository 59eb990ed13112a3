package services

import (
	"fmt"

	"paper-review-api/config"
	"paper-review-api/models"
)

// Notifier tells people about workflow changes. Delivery is best effort.
type Notifier interface {
	ReviewerAssigned(paper models.Paper, reviewer models.User)
	PaperDecided(paper models.Paper)
}

// MailNotifier delivers notifications through the configured SMTP server.
type MailNotifier struct {
	send func(to []string, subject, body string) error
}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{send: config.SendMail}
}

func (n *MailNotifier) ReviewerAssigned(paper models.Paper, reviewer models.User) {
	subject := "New paper assigned for review"
	body := fmt.Sprintf("Hello %s,\n\nYou have been assigned to review the paper \"%s\".\n"+
		"Please log in to the review dashboard to submit your decision.\n", reviewer.Name, paper.Title)
	n.deliver([]string{reviewer.Email}, subject, body)
}

func (n *MailNotifier) PaperDecided(paper models.Paper) {
	if paper.Status == models.PaperPending {
		return
	}
	subject := fmt.Sprintf("Your submission has been %s", paper.Status)
	body := fmt.Sprintf("Dear %s,\n\nThe status of your paper \"%s\" is now: %s.\n", paper.AuthorName, paper.Title, paper.Status)
	n.deliver([]string{paper.AuthorEmail}, subject, body)
}

func (n *MailNotifier) deliver(to []string, subject, body string) {
	if !config.MailConfigured() {
		config.Logger.Debug().Str("subject", subject).Msg("smtp not configured, skipping notification")
		return
	}
	go func() {
		if err := n.send(to, subject, body); err != nil {
			config.Logger.Warn().Err(err).Strs("to", to).Str("subject", subject).Msg("failed to send notification")
		}
	}()
}

// DefaultNotifier is used by services constructed without an explicit notifier.
var DefaultNotifier Notifier = NewMailNotifier()
