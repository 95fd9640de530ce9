package email

import (
	"affiliate-ledger/internal/clients/mail"
	"affiliate-ledger/internal/observability"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	textTemplate "text/template"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid email address")
	ErrSendingEmail        = errors.New("error sending email")
	ErrUnknownTemplate     = errors.New("unknown email template")
)

// Template names
const (
	TemplateReferralStatus = "referral_status"
	TemplateWithdrawStatus = "withdraw_status"
)

// MailClient delivers a rendered message
type MailClient interface {
	SendEmail(ctx context.Context, msg mail.Message) (string, error)
}

// StatusChange is the data a status update email is rendered from
type StatusChange struct {
	Template     string
	PartnerName  string
	EntityID     string
	OldStatus    string
	NewStatus    string
	Amount       string
	Notes        string
	DashboardURL string
}

type emailTemplate struct {
	subject *textTemplate.Template
	html    *template.Template
	text    *textTemplate.Template
}

// EmailService renders and sends partner notification emails
type EmailService struct {
	mailClient    MailClient
	logger        *observability.Logger
	defaultSender string
	templates     map[string]emailTemplate
}

// New creates a new EmailService
func New(mailClient MailClient, defaultSender string, logger *observability.Logger) *EmailService {
	return &EmailService{
		mailClient:    mailClient,
		logger:        logger,
		defaultSender: defaultSender,
		templates: map[string]emailTemplate{
			TemplateReferralStatus: mustTemplate(TemplateReferralStatus,
				`Your referral is now {{.NewStatus}}`,
				`
			<html>
				<body>
					<h1>Referral {{.NewStatus}}</h1>
					<p>Hi {{.PartnerName}},</p>
					<p>Your referral <strong>{{.EntityID}}</strong> moved from {{.OldStatus}} to <strong>{{.NewStatus}}</strong>.</p>
					<p>Commission: <strong>{{.Amount}}</strong></p>
					{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
					{{if .DashboardURL}}<p><a href="{{.DashboardURL}}">View your balance</a></p>{{end}}
				</body>
			</html>
			`,
				`Hi {{.PartnerName}},

Your referral {{.EntityID}} moved from {{.OldStatus}} to {{.NewStatus}}.
Commission: {{.Amount}}
{{if .Notes}}Notes: {{.Notes}}
{{end}}`),
			TemplateWithdrawStatus: mustTemplate(TemplateWithdrawStatus,
				`Your withdrawal is now {{.NewStatus}}`,
				`
			<html>
				<body>
					<h1>Withdrawal {{.NewStatus}}</h1>
					<p>Hi {{.PartnerName}},</p>
					<p>Your withdrawal request <strong>{{.EntityID}}</strong> for <strong>{{.Amount}}</strong> moved from {{.OldStatus}} to <strong>{{.NewStatus}}</strong>.</p>
					{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
					{{if .DashboardURL}}<p><a href="{{.DashboardURL}}">View your withdrawals</a></p>{{end}}
				</body>
			</html>
			`,
				`Hi {{.PartnerName}},

Your withdrawal request {{.EntityID}} for {{.Amount}} moved from {{.OldStatus}} to {{.NewStatus}}.
{{if .Notes}}Notes: {{.Notes}}
{{end}}`),
		},
	}
}

func mustTemplate(name, subject, html, text string) emailTemplate {
	return emailTemplate{
		subject: textTemplate.Must(textTemplate.New(name + "_subject").Parse(subject)),
		html:    template.Must(template.New(name + "_html").Parse(html)),
		text:    textTemplate.Must(textTemplate.New(name + "_text").Parse(text)),
	}
}

// Render produces the subject, HTML and plain text bodies for change
func (s *EmailService) Render(change StatusChange) (mail.Message, error) {
	tmpl, ok := s.templates[change.Template]
	if !ok {
		return mail.Message{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, change.Template)
	}

	var subject, html, text bytes.Buffer
	if err := tmpl.subject.Execute(&subject, change); err != nil {
		return mail.Message{}, fmt.Errorf("failed to execute subject template: %w", err)
	}
	if err := tmpl.html.Execute(&html, change); err != nil {
		return mail.Message{}, fmt.Errorf("failed to execute html template: %w", err)
	}
	if err := tmpl.text.Execute(&text, change); err != nil {
		return mail.Message{}, fmt.Errorf("failed to execute text template: %w", err)
	}

	return mail.Message{
		From:    s.defaultSender,
		Subject: subject.String(),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// SendStatusChange renders change and sends it to the partner at to
func (s *EmailService) SendStatusChange(ctx context.Context, to string, change StatusChange) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: change.Template},
		observability.Field{Key: "recipient", Value: to},
	)

	if !strings.Contains(to, "@") {
		s.logger.Warn(ctx, "skipping email without a valid recipient")
		return ErrInvalidEmailAddress
	}

	msg, err := s.Render(change)
	if err != nil {
		s.logger.Error(ctx, "failed to render status change email", err)
		return err
	}
	msg.To = to

	if _, err := s.mailClient.SendEmail(ctx, msg); err != nil {
		s.logger.Error(ctx, "failed to send status change email", err)
		return fmt.Errorf("%w: %s", ErrSendingEmail, err.Error())
	}
	return nil
}
