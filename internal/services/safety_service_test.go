package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/email"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRiskStore struct {
	events []models.RiskEvent
}

func (s *fakeRiskStore) CreateRiskEvent(_ context.Context, event *models.RiskEvent) (*models.RiskEvent, error) {
	event.ID = primitive.NewObjectID()
	s.events = append(s.events, *event)
	return event, nil
}

func (s *fakeRiskStore) GetUserRiskEvents(_ context.Context, userID primitive.ObjectID, _ int64) ([]models.RiskEvent, error) {
	out := []models.RiskEvent{}
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendEmail(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func TestReportRiskEvent(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name       string
		req        models.RiskEventRequest
		wantErr    error
		wantEmails int
		wantNotifs int
		metric     string
	}{
		{name: "missing level", req: models.RiskEventRequest{Message: "hi"}, wantErr: ErrValidation},
		{name: "missing message", req: models.RiskEventRequest{RiskLevel: "low", Message: "<i></i>"}, wantErr: ErrValidation},
		{name: "low risk", req: models.RiskEventRequest{RiskLevel: "Low", Message: "rough day"}, metric: RiskLow},
		{name: "high risk escalates", req: models.RiskEventRequest{RiskLevel: "HIGH", Message: "I can't cope"}, wantEmails: 1, wantNotifs: 1, metric: RiskHigh},
		{name: "unknown level", req: models.RiskEventRequest{RiskLevel: "weird", Message: "hm"}, metric: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeRiskStore{}
			notifier := &fakeNotifier{}
			mailer := &fakeMailer{}
			rec := newCountingRecorder()
			svc := NewSafetyService(store, notifier, mailer, "safety@example.com", sanitize.New(), rec)

			res, err := svc.ReportRiskEvent(context.Background(), userID, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.events)
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Contacts.Helplines, 2)
			assert.Equal(t, "Dial 112 (India Emergency Services)", res.Contacts.Emergency)
			assert.Len(t, mailer.sent, tt.wantEmails)
			assert.Len(t, notifier.sent, tt.wantNotifs)
			assert.Equal(t, 1, rec.risks[tt.metric])
		})
	}
}

func TestReportRiskEventSurvivesMailFailure(t *testing.T) {
	for _, mailErr := range []error{email.ErrNotConfigured, errors.New("smtp down")} {
		svc := NewSafetyService(&fakeRiskStore{}, &fakeNotifier{}, &fakeMailer{err: mailErr}, "safety@example.com", sanitize.New(), nil)

		res, err := svc.ReportRiskEvent(context.Background(), primitive.NewObjectID(),
			models.RiskEventRequest{RiskLevel: RiskCritical, Message: "help"})
		require.NoError(t, err)
		assert.Equal(t, RiskCritical, res.Event.RiskLevel)
	}
}
