package mail

import (
	"affiliate-ledger/internal/observability"
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
	"golang.org/x/time/rate"
)

// Message is one outbound email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// sendFunc delivers one request and returns the provider message id
type sendFunc func(req *resend.SendEmailRequest) (string, error)

type ResendClient struct {
	send    sendFunc
	limiter *rate.Limiter
	logger  *observability.Logger
}

// NewResendClient creates a client that sends at most ratePerSecond emails per
// second with the given burst.
func NewResendClient(apiKey string, ratePerSecond float64, burst int, logger *observability.Logger) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}
	send := func(req *resend.SendEmailRequest) (string, error) {
		res, err := client.Emails.Send(req)
		if err != nil {
			return "", err
		}
		return res.Id, nil
	}
	return newClient(send, ratePerSecond, burst, logger), nil
}

func newClient(send sendFunc, ratePerSecond float64, burst int, logger *observability.Logger) *ResendClient {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &ResendClient{
		send:    send,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// SendEmail waits for a send slot and delivers msg, returning the provider id
func (c *ResendClient) SendEmail(ctx context.Context, msg Message) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: msg.To},
		observability.Field{Key: "email_subject", Value: msg.Subject},
	)

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Error(ctx, "email send slot not acquired", err)
		return "", fmt.Errorf("failed to acquire email send slot: %w", err)
	}

	id, err := c.send(&resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "email sent successfully")
	return id, nil
}
