package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lead form kinds.
const (
	LeadContact      = "contact"
	LeadConsultation = "consultation"
	LeadFreelancer   = "freelancer"
	LeadQuote        = "quote"
)

// ContactForm is the general enquiry form.
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,phone"`
	Subject string `json:"subject,omitempty" validate:"max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ConsultationForm books a free consultation call.
type ConsultationForm struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	Company       string `json:"company,omitempty" validate:"max=200"`
	Service       string `json:"service" validate:"required"`
	PreferredDate string `json:"preferredDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Message       string `json:"message,omitempty" validate:"omitempty,min=10,max=5000"`
}

// FreelancerForm registers a freelancer with the agency.
type FreelancerForm struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Skills          []string `json:"skills" validate:"required,min=1,max=30,dive,required,max=60"`
	ExperienceYears int      `json:"experienceYears" validate:"gte=0,lte=60"`
	PortfolioURL    string   `json:"portfolioUrl,omitempty" validate:"omitempty,url"`
	HourlyRate      float64  `json:"hourlyRate,omitempty" validate:"gte=0"`
	Availability    string   `json:"availability,omitempty" validate:"omitempty,oneof=full-time part-time contract"`
	Message         string   `json:"message,omitempty" validate:"max=5000"`
}

// QuoteForm requests a project estimate.
type QuoteForm struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Company     string   `json:"company,omitempty" validate:"max=200"`
	Services    []string `json:"services" validate:"required,min=1,dive,required"`
	Budget      string   `json:"budget" validate:"required"`
	Timeline    string   `json:"timeline" validate:"required"`
	Description string   `json:"description" validate:"required,min=20,max=10000"`
}

// Lead is a validated submission handed to a LeadSink.
type Lead struct {
	Reference   string
	Kind        string
	Email       string
	SubmittedAt time.Time
	Payload     any
}

// LeadSink receives validated submissions. It is the hand-off point for a
// CRM or mail integration.
type LeadSink interface {
	Deliver(ctx context.Context, lead Lead) error
}

// LogSink writes submissions to the structured log and nothing else.
type LogSink struct {
	Logger *zap.Logger
}

// Deliver implements LeadSink.
func (s LogSink) Deliver(_ context.Context, lead Lead) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("lead received",
		zap.String("reference", lead.Reference),
		zap.String("kind", lead.Kind),
		zap.String("email", lead.Email),
		zap.Time("submitted_at", lead.SubmittedAt),
		zap.Any("payload", lead.Payload),
	)
	return nil
}

// Acknowledgement is returned to the visitor after a successful submission.
type Acknowledgement struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// LeadService validates lead-capture forms and forwards them to a sink.
type LeadService struct {
	sink LeadSink
	now  func() time.Time
}

// NewLeadService returns a LeadService delivering to sink.
func NewLeadService(sink LeadSink) *LeadService {
	return &LeadService{sink: sink, now: time.Now}
}

// SubmitContact handles the contact form.
func (s *LeadService) SubmitContact(ctx context.Context, form ContactForm) (*Acknowledgement, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)
	form.Message = strings.TrimSpace(form.Message)
	return s.submit(ctx, LeadContact, form.Email, form, "Thanks for reaching out. We will get back to you shortly.")
}

// SubmitConsultation handles consultation bookings.
func (s *LeadService) SubmitConsultation(ctx context.Context, form ConsultationForm) (*Acknowledgement, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)
	form.Message = strings.TrimSpace(form.Message)
	return s.submit(ctx, LeadConsultation, form.Email, form, "Your consultation request has been received. We will confirm a time by email.")
}

// SubmitFreelancer handles freelancer registrations.
func (s *LeadService) SubmitFreelancer(ctx context.Context, form FreelancerForm) (*Acknowledgement, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)
	for i := range form.Skills {
		form.Skills[i] = strings.TrimSpace(form.Skills[i])
	}
	return s.submit(ctx, LeadFreelancer, form.Email, form, "Thanks for registering. Our team will review your profile.")
}

// SubmitQuote handles quote requests.
func (s *LeadService) SubmitQuote(ctx context.Context, form QuoteForm) (*Acknowledgement, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)
	form.Description = strings.TrimSpace(form.Description)
	return s.submit(ctx, LeadQuote, form.Email, form, "Your quote request has been received. Expect an estimate within two business days.")
}

func (s *LeadService) submit(ctx context.Context, kind, email string, form any, message string) (*Acknowledgement, error) {
	if err := validateStruct(form); err != nil {
		return nil, err
	}
	lead := Lead{
		Reference:   uuid.NewString(),
		Kind:        kind,
		Email:       email,
		SubmittedAt: s.now().UTC(),
		Payload:     form,
	}
	if err := s.sink.Deliver(ctx, lead); err != nil {
		return nil, err
	}
	return &Acknowledgement{Success: true, Reference: lead.Reference, Message: message}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
