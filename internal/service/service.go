package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/config"
	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/PDHeisenberg/cardwise/internal/optimizer"
	"github.com/PDHeisenberg/cardwise/internal/pipeline"
	"github.com/PDHeisenberg/cardwise/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DigestSender delivers the periodic rewards digest
type DigestSender interface {
	SendWeeklyDigest(to string, summary models.RewardsSummary) error
}

// Service handles business logic
type Service struct {
	repo      *repository.Repository
	pipeline  *pipeline.Pipeline
	optimizer *optimizer.Optimizer
	digest    DigestSender
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service
func NewService(
	repo *repository.Repository,
	p *pipeline.Pipeline,
	opt *optimizer.Optimizer,
	digest DigestSender,
	log *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:      repo,
		pipeline:  p,
		optimizer: opt,
		digest:    digest,
		log:       log,
		config:    cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// IngestTransaction runs one payment event through the ingestion pipeline
func (s *Service) IngestTransaction(
	ctx context.Context,
	userID int64,
	merchantName string,
	amount float64,
	rawCardLabel string,
	currency string,
	timestamp time.Time,
) (*models.Transaction, error) {
	if merchantName == "" {
		return nil, fmt.Errorf("merchant name is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if rawCardLabel == "" {
		return nil, fmt.Errorf("card name is required")
	}

	return s.pipeline.Ingest(ctx, pipeline.IngestRequest{
		UserID:       userID,
		MerchantName: merchantName,
		Amount:       amount,
		RawCardLabel: rawCardLabel,
		Currency:     currency,
		Timestamp:    timestamp,
	})
}

// portfolioProductIDs returns the resolved catalog product ids of a user's
// active cards
func (s *Service) portfolioProductIDs(ctx context.Context, userID int64) ([]string, error) {
	cards, err := s.repo.ActiveCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, c := range cards {
		if c.MatchedProductID != "" {
			ids = append(ids, c.MatchedProductID)
		}
	}
	return ids, nil
}

// PreviewOptimalCard answers which card the user should pay with at the
// given merchant, without recording anything. Returns nil when the portfolio
// or catalog cannot answer.
func (s *Service) PreviewOptimalCard(ctx context.Context, userID int64, merchantName string) (*models.CardProduct, error) {
	ids, err := s.portfolioProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pipeline.PreviewOptimalCard(merchantName, ids), nil
}

// Recommendations computes the best card per spending category for the
// user's current portfolio
func (s *Service) Recommendations(ctx context.Context, userID int64) ([]models.Recommendation, error) {
	ids, err := s.portfolioProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.optimizer.GenerateRecommendations(ids), nil
}

// RewardsSummary aggregates the user's reward performance over all recorded
// transactions
func (s *Service) RewardsSummary(ctx context.Context, userID int64) (models.RewardsSummary, error) {
	txns, err := s.repo.TransactionsByUser(ctx, userID)
	if err != nil {
		return models.RewardsSummary{}, err
	}
	return s.optimizer.Summarize(txns), nil
}

// ListCards returns the user's active portfolio
func (s *Service) ListCards(ctx context.Context, userID int64) ([]*models.Card, error) {
	return s.repo.ActiveCards(ctx, userID)
}

// ListTransactions returns the user's recorded transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return s.repo.TransactionsByUser(ctx, userID)
}

// RunWeeklyDigest emails every user a digest of the past week's reward
// performance. Scheduled by cron; delivery failures are logged per user and
// do not abort the run.
func (s *Service) RunWeeklyDigest(ctx context.Context) error {
	userIDs, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for digest: %w", err)
	}

	since := time.Now().AddDate(0, 0, -7)
	for _, userID := range userIDs {
		txns, err := s.repo.TransactionsByUserSince(ctx, userID, since)
		if err != nil {
			s.log.Errorf("Digest: failed to load transactions for user %d: %v", userID, err)
			continue
		}
		if len(txns) == 0 {
			continue
		}

		user, err := s.repo.FindUserByID(ctx, userID)
		if err != nil {
			s.log.Errorf("Digest: failed to load user %d: %v", userID, err)
			continue
		}

		summary := s.optimizer.Summarize(txns)
		if err := s.digest.SendWeeklyDigest(user.Email, summary); err != nil {
			s.log.Errorf("Digest delivery to user %d failed: %v", userID, err)
		}
	}

	s.log.Infof("Weekly digest run completed for %d users", len(userIDs))
	return nil
}
