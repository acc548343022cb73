package domain

import "context"

// Notification types supported by the email content generator.
const (
	NotificationEventReminder    = "event_reminder"
	NotificationTaskAssignment   = "task_assignment"
	NotificationTaskReminder     = "task_reminder"
	NotificationSponsorThankYou  = "sponsor_thank_you"
	NotificationRSVPConfirmation = "rsvp_confirmation"
)

// NotificationTypes lists the valid email types in a stable order, for
// validation messages.
var NotificationTypes = []string{
	NotificationEventReminder,
	NotificationTaskAssignment,
	NotificationTaskReminder,
	NotificationSponsorThankYou,
	NotificationRSVPConfirmation,
}

// EmailRequest describes one email to generate. Which of EventID/TaskID is
// required depends on Type; MemberID is accepted for API compatibility but not
// currently used by any template.
type EmailRequest struct {
	Type           string
	EventID        *int
	TaskID         *int
	MemberID       *int
	RecipientEmail string
	RecipientName  string
}

// EmailContent is rendered subject/body text. Nothing is sent; delivery is a
// separate, future integration.
// swagger:model EmailContent
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	To      string `json:"to"`
}

// EmailTemplateRenderer renders subject and body text from a named template
// with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, body string, err error)
}

// EmailContentService resolves an EmailRequest's references and renders the
// matching template.
type EmailContentService interface {
	Generate(ctx context.Context, req *EmailRequest) (*EmailContent, error)
}
