package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/email"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/metrics"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"

	defaultRiskHistoryLimit = 20
)

var crisisContacts = models.CrisisContacts{
	Helplines: []models.Helpline{
		{Name: "KIRAN Mental Health Helpline", Number: "1800-599-0019"},
		{Name: "Vandrevala Foundation Helpline", Number: "1860-2662-345"},
	},
	Emergency: "Dial 112 (India Emergency Services)",
}

type RiskEventStore interface {
	CreateRiskEvent(ctx context.Context, event *models.RiskEvent) (*models.RiskEvent, error)
	GetUserRiskEvents(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.RiskEvent, error)
}

// SafetyService records risk events and escalates the serious ones.
type SafetyService struct {
	repo       RiskEventStore
	notifier   Notifier
	mailer     email.Mailer
	alertEmail string
	sanitizer  *sanitize.Sanitizer
	metrics    metrics.Recorder
}

func NewSafetyService(repo RiskEventStore, notifier Notifier, mailer email.Mailer, alertEmail string, sanitizer *sanitize.Sanitizer, rec metrics.Recorder) *SafetyService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &SafetyService{
		repo:       repo,
		notifier:   notifier,
		mailer:     mailer,
		alertEmail: alertEmail,
		sanitizer:  sanitizer,
		metrics:    rec,
	}
}

// CrisisContacts returns the helplines shown with every risk event.
func CrisisContacts() models.CrisisContacts {
	return crisisContacts
}

// ReportRiskEvent stores the event and returns it with crisis contacts. High
// and critical events also alert the safety contact and leave a follow-up
// notification for the user.
func (s *SafetyService) ReportRiskEvent(ctx context.Context, userID primitive.ObjectID, req models.RiskEventRequest) (*models.RiskEventResult, error) {
	level := strings.ToLower(strings.TrimSpace(req.RiskLevel))
	message := s.sanitizer.Text(req.Message)
	if level == "" || message == "" {
		return nil, invalidf("Missing required fields")
	}

	event, err := s.repo.CreateRiskEvent(ctx, &models.RiskEvent{
		UserID:    userID,
		RiskLevel: level,
		Message:   message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store risk event: %w", err)
	}

	s.metrics.RecordRiskEvent(riskMetricLabel(level))
	logger.Log.WithFields(map[string]interface{}{
		"user_id":    userID.Hex(),
		"risk_level": level,
		"event_id":   event.ID.Hex(),
	}).Warn("Risk event reported")

	if level == RiskHigh || level == RiskCritical {
		s.escalate(ctx, event)
	}

	return &models.RiskEventResult{Event: event, Contacts: CrisisContacts()}, nil
}

func (s *SafetyService) GetHistory(ctx context.Context, userID primitive.ObjectID) ([]models.RiskEvent, error) {
	return s.repo.GetUserRiskEvents(ctx, userID, defaultRiskHistoryLimit)
}

func (s *SafetyService) escalate(ctx context.Context, event *models.RiskEvent) {
	target := event.ID
	if err := s.notifier.CreateNotification(ctx, event.UserID, models.NotificationRiskFollowUp,
		"You are not alone",
		"If you are in immediate danger, dial 112. KIRAN (1800-599-0019) is available 24/7.",
		&target); err != nil {
		logger.Log.WithError(err).Warn("Failed to create risk follow-up notification")
	}

	if s.alertEmail == "" || s.mailer == nil {
		return
	}
	subject := fmt.Sprintf("[%s] Risk event reported", strings.ToUpper(event.RiskLevel))
	body := fmt.Sprintf("User %s reported a %s risk event at %s.\n\nMessage:\n%s\n",
		event.UserID.Hex(), event.RiskLevel, event.CreatedAt.Format("2006-01-02 15:04:05 MST"), event.Message)

	err := s.mailer.SendEmail(s.alertEmail, subject, body)
	switch {
	case errors.Is(err, email.ErrNotConfigured):
		logger.Log.Debug("SMTP not configured, skipping risk alert email")
	case err != nil:
		logger.Log.WithError(err).Error("Failed to send risk alert email")
	}
}

func riskMetricLabel(level string) string {
	switch level {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return level
	default:
		return "other"
	}
}
