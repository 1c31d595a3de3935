package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/game"
	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/metrics"
	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type GameResultStore interface {
	SaveResult(ctx context.Context, score *models.SeverityScore) (*models.SeverityScore, error)
	GetLeaderboard(ctx context.Context, limit int64) ([]models.SeverityScore, error)
	GetResultsByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.SeverityScore, error)
}

// GameStart is what the client needs to render a level.
type GameStart struct {
	SessionID          string           `json:"session_id"`
	Level              int              `json:"level"`
	Items              []game.StartItem `json:"items"`
	PrecisionThreshold float64          `json:"precision_threshold"`
	RotationThreshold  float64          `json:"rotation_threshold"`
	TimeLimit          int              `json:"time_limit"`
}

// GameService runs screening sessions and persists their severity scores.
type GameService struct {
	sessions game.SessionStore
	results  GameResultStore
	activity ActivityLogger
	metrics  metrics.Recorder
	random   func() float64
	now      func() time.Time
}

func NewGameService(sessions game.SessionStore, results GameResultStore, activity ActivityLogger, rec metrics.Recorder) *GameService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &GameService{
		sessions: sessions,
		results:  results,
		activity: activity,
		metrics:  rec,
		random:   rand.Float64,
		now:      time.Now,
	}
}

// StartGame opens a session for the level and hands out the items with
// randomized start positions.
func (s *GameService) StartGame(ctx context.Context, userID primitive.ObjectID, level int) (*GameStart, error) {
	if !game.ValidLevel(level) {
		return nil, ErrInvalidLevel
	}

	session := &models.GameSession{
		ID:        xid.New().String(),
		UserID:    userID.Hex(),
		Level:     level,
		StartTime: s.now(),
		Actions:   []models.GameAction{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"level":      level,
	}).Info("Game session started")

	lvl := game.Levels[level]
	return &GameStart{
		SessionID:          session.ID,
		Level:              level,
		Items:              game.StartItems(level, s.random),
		PrecisionThreshold: lvl.PrecisionThreshold,
		RotationThreshold:  lvl.RotationThreshold,
		TimeLimit:          lvl.TimeLimit,
	}, nil
}

// RecordAction appends a gesture to the caller's open session.
func (s *GameService) RecordAction(ctx context.Context, userID primitive.ObjectID, req models.GameActionRequest) error {
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.ItemID) == "" {
		return invalidf("session_id and item_id are required")
	}

	_, err := s.sessions.Update(ctx, req.SessionID, func(session *models.GameSession) error {
		if session.UserID != userID.Hex() {
			return game.ErrSessionNotFound
		}
		if session.Completed {
			return ErrSessionCompleted
		}
		session.Actions = append(session.Actions, req.GameAction)
		return nil
	})
	return err
}

// CheckPlacement judges a single item against its own level's thresholds.
func (s *GameService) CheckPlacement(placement models.ItemPlacement) (*game.PlacementCheck, error) {
	item, level, ok := game.FindItem(placement.ID)
	if !ok {
		return nil, ErrItemNotFound
	}
	check := game.CheckPlacement(item, level, placement.X, placement.Y, placement.Rotation)
	return &check, nil
}

// CompleteGame closes the session, scores it and stores the result. A
// session can be completed only once.
func (s *GameService) CompleteGame(ctx context.Context, userID primitive.ObjectID, req models.GameCompletion) (*models.SeverityScore, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, invalidf("session_id is required")
	}
	if req.Corrections < 0 {
		return nil, invalidf("corrections cannot be negative")
	}
	if req.CompletionTime < 0 {
		return nil, invalidf("completion_time cannot be negative")
	}

	now := s.now()
	session, err := s.sessions.Update(ctx, req.SessionID, func(session *models.GameSession) error {
		if session.UserID != userID.Hex() {
			return game.ErrSessionNotFound
		}
		if session.Completed {
			return ErrSessionCompleted
		}
		session.Completed = true
		session.EndTime = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	totalTime := req.CompletionTime
	if totalTime <= 0 {
		totalTime = now.Sub(session.StartTime).Seconds()
	}
	result := game.Score(session.Level, req.Items, totalTime, req.Corrections)

	score, err := s.results.SaveResult(ctx, &models.SeverityScore{
		SessionID:        session.ID,
		UserID:           userID,
		Level:            session.Level,
		TotalTime:        result.TotalTime,
		Corrections:      req.Corrections,
		Precision:        result.AveragePrecision,
		TimeFactor:       result.TimeFactor,
		CorrectionFactor: result.CorrectionFactor,
		PrecisionFactor:  result.PrecisionFactor,
		SeverityScore:    result.Severity,
		Interpretation:   result.Interpretation,
		CreatedAt:        now,
	})
	if err != nil {
		s.reopenSession(ctx, session.ID)
		return nil, err
	}

	s.metrics.RecordGameCompleted(result.Interpretation)
	if err := s.activity.LogActivity(ctx, userID, models.ActivityGameCompleted, session.ID,
		fmt.Sprintf("Completed calibration level %d", session.Level)); err != nil {
		logger.Log.WithError(err).Warn("Failed to record game activity")
	}

	logger.Log.WithFields(map[string]interface{}{
		"session_id":     session.ID,
		"severity_score": result.Severity,
		"interpretation": result.Interpretation,
	}).Info("Game session completed")
	return score, nil
}

// reopenSession undoes the completion mark after the result could not be
// stored, so the client can retry CompleteGame.
func (s *GameService) reopenSession(ctx context.Context, sessionID string) {
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.GameSession) error {
		session.Completed = false
		session.EndTime = nil
		return nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Error("Failed to reopen game session")
	}
}

func (s *GameService) GetLeaderboard(ctx context.Context, limit int) ([]models.SeverityScore, error) {
	return s.results.GetLeaderboard(ctx, int64(clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit)))
}

func (s *GameService) GetResults(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.SeverityScore, error) {
	return s.results.GetResultsByUser(ctx, userID, int64(clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit)))
}

// PurgeExpiredSessions is run by the scheduler.
func (s *GameService) PurgeExpiredSessions(ctx context.Context) (int, error) {
	return s.sessions.PurgeExpired(ctx)
}
