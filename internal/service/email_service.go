package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"pawpass/internal/models"
)

// EmailService sends shelter coordinator notifications via Amazon SES.
// Notifications are always best-effort: the primary operation succeeds
// whether or not the email goes out.
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	notifyEmail string
	enabled     bool
}

// NewEmailService creates a new email service. The service is disabled
// when no from or notify address is configured.
func NewEmailService(awsRegion, fromEmail, fromName, notifyEmail string) (*EmailService, error) {
	if fromEmail == "" || notifyEmail == "" {
		log.Println("Email notifications disabled: SES_FROM_EMAIL or NOTIFY_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email notifications enabled: from=%s, notify=%s, region=%s", fromEmail, notifyEmail, awsRegion)

	return &EmailService{
		client:      sesv2.NewFromConfig(cfg),
		fromEmail:   fromEmail,
		fromName:    fromName,
		notifyEmail: notifyEmail,
		enabled:     true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// NotifyEmergencyIntake alerts the shelter coordinator about a newly
// registered emergency pet
func (s *EmailService) NotifyEmergencyIntake(ctx context.Context, pet *models.Pet) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): emergency intake for %s", pet.Name)
		return nil
	}

	subject := fmt.Sprintf("Emergency intake: %s (%s)", pet.Name, pet.Species)
	textBody := fmt.Sprintf(`An emergency pet was just registered in PawPass.

Name: %s
Species: %s
Medical notes: %s

Please review the profile and arrange care as soon as possible.
`, pet.Name, pet.Species, pet.MedicalNotes)

	htmlBody := fmt.Sprintf(`<p>An emergency pet was just registered in PawPass.</p>
<ul>
  <li><strong>Name:</strong> %s</li>
  <li><strong>Species:</strong> %s</li>
  <li><strong>Medical notes:</strong> %s</li>
</ul>
<p>Please review the profile and arrange care as soon as possible.</p>`,
		pet.Name, pet.Species, pet.MedicalNotes)

	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

// NotifyChecklistCompleted tells the shelter coordinator that a shift
// checklist was completed
func (s *EmailService) NotifyChecklistCompleted(ctx context.Context, pet *models.Pet, volunteerName string, completedCount int) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): checklist completed for %s", pet.Name)
		return nil
	}

	if volunteerName == "" {
		volunteerName = "A volunteer"
	}

	subject := fmt.Sprintf("Checklist completed for %s", pet.Name)
	textBody := fmt.Sprintf(`%s completed a shift checklist for %s with %d completed items.
`, volunteerName, pet.Name, completedCount)
	htmlBody := fmt.Sprintf(`<p>%s completed a shift checklist for <strong>%s</strong> with %d completed items.</p>`,
		volunteerName, pet.Name, completedCount)

	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.notifyEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.notifyEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", s.notifyEmail, subject)
	return nil
}
