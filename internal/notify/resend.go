package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/corazor/contact-service/internal/domain"
)

var submissionTemplate = template.Must(template.New("submission").Parse(`<h2>New project inquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Company:</strong> {{.CompanyOrNA}}</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap">{{.Message}}</p>
{{if .ID}}<p style="color:#888">Reference {{.ID}}</p>{{end}}`))

// ResendSender sends notification emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender authenticated with apiKey.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// SendSubmission implements EmailSender. Replies go to the person who filled
// in the form.
func (s *ResendSender) SendSubmission(ctx context.Context, to string, submission domain.ContactSubmission) error {
	html, err := RenderSubmissionHTML(submission)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: SubmissionSubject(submission),
		Html:    html,
		ReplyTo: submission.Email,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send submission email: %w", err)
	}
	return nil
}

// SubmissionSubject builds the notification subject line.
func SubmissionSubject(submission domain.ContactSubmission) string {
	if submission.Company != "" {
		return fmt.Sprintf("New inquiry from %s (%s)", submission.Name, submission.Company)
	}
	return fmt.Sprintf("New inquiry from %s", submission.Name)
}

// RenderSubmissionHTML renders the notification body with HTML escaping.
func RenderSubmissionHTML(submission domain.ContactSubmission) (string, error) {
	var body bytes.Buffer
	if err := submissionTemplate.Execute(&body, &submission); err != nil {
		return "", fmt.Errorf("render submission email: %w", err)
	}
	return body.String(), nil
}
