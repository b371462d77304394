// Package pipeline orchestrates classification, card resolution and reward
// optimization for each incoming transaction event. It is the only core
// component with side effects: record creation and alert signaling.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/classifier"
	"github.com/PDHeisenberg/cardwise/internal/matcher"
	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/PDHeisenberg/cardwise/internal/optimizer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is the persistence boundary for cards and transactions
type Store interface {
	ActiveCards(ctx context.Context, userID int64) ([]*models.Card, error)
	CreateCard(ctx context.Context, card *models.Card) error
	UpdateCard(ctx context.Context, card *models.Card) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
}

// WrongCardAlert is the payload emitted when a sub-optimal card was used
type WrongCardAlert struct {
	UserID          int64
	MerchantName    string
	Amount          float64
	UsedCardName    string
	OptimalCardName string
	RewardsDelta    float64
	OptimalRate     string
}

// NewCardAlert is the payload emitted when a card is seen for the first time
type NewCardAlert struct {
	UserID   int64
	CardName string
}

// Notifier consumes alert signals. Implementations are fire-and-forget: the
// pipeline never consumes a return value and delivery failures must not
// affect ingestion.
type Notifier interface {
	WrongCardAlert(alert WrongCardAlert)
	NewCardDetected(alert NewCardAlert)
}

// IngestRequest carries one payment event into the pipeline
type IngestRequest struct {
	UserID       int64
	MerchantName string
	Amount       float64
	RawCardLabel string
	Currency     string
	Timestamp    time.Time
}

// Pipeline sequences classifier -> matcher -> optimizer per transaction
type Pipeline struct {
	classifier   *classifier.Classifier
	matcher      *matcher.Matcher
	optimizer    *optimizer.Optimizer
	store        Store
	notifier     Notifier
	log          *logrus.Logger
	homeCurrency string
}

// New creates an ingestion pipeline
func New(
	cls *classifier.Classifier,
	m *matcher.Matcher,
	opt *optimizer.Optimizer,
	store Store,
	notifier Notifier,
	log *logrus.Logger,
	homeCurrency string,
) *Pipeline {
	return &Pipeline{
		classifier:   cls,
		matcher:      m,
		optimizer:    opt,
		store:        store,
		notifier:     notifier,
		log:          log,
		homeCurrency: homeCurrency,
	}
}

// Ingest processes one payment event: classify the merchant, resolve or
// upsert the card, rank the portfolio, persist the transaction and emit
// alert signals. The freshly touched card is persisted before optimization
// so a just-created product is part of the candidate set.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (*models.Transaction, error) {
	if req.Currency == "" {
		req.Currency = p.homeCurrency
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	// Step 1: categorize the merchant
	category := p.classifier.Categorize(req.MerchantName)

	// Step 2: resolve or upsert the card in the portfolio
	portfolio, err := p.store.ActiveCards(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	card, created := p.matcher.Resolve(req.RawCardLabel, portfolio)
	if created {
		card.UserID = req.UserID
		if err := p.store.CreateCard(ctx, card); err != nil {
			return nil, fmt.Errorf("failed to create card: %w", err)
		}
		portfolio = append(portfolio, card)
	} else if err := p.store.UpdateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	// Step 3: gather the resolved product ids of all active cards
	var productIDs []string
	for _, c := range portfolio {
		if c.MatchedProductID != "" {
			productIDs = append(productIDs, c.MatchedProductID)
		}
	}

	// Step 4: rank the portfolio for this spend
	result := p.optimizer.FindOptimalCard(category, req.Amount, productIDs, card.MatchedProductID)

	// Step 5: persist the transaction record
	txn := &models.Transaction{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		MerchantName:   req.MerchantName,
		Amount:         req.Amount,
		Currency:       req.Currency,
		CardName:       req.RawCardLabel,
		CardID:         card.ID,
		Category:       category,
		ActualRewards:  result.ActualRewards,
		OptimalRewards: result.OptimalRewards,
		RewardsDelta:   result.RewardsDelta,
		Timestamp:      req.Timestamp,
		IsOptimal:      result.IsOptimal,
	}
	if result.OptimalCard != nil {
		txn.OptimalCardName = result.OptimalCard.DisplayName()
		for _, c := range portfolio {
			if c.MatchedProductID == result.OptimalCard.ID {
				txn.OptimalCardID = c.ID
				break
			}
		}
	}

	if err := p.store.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"merchant":   req.MerchantName,
		"category":   category,
		"card":       card.DisplayName(),
		"is_optimal": result.IsOptimal,
		"delta":      result.RewardsDelta,
	}).Info("Transaction ingested")

	// Step 6: signal the notification dispatcher
	if !result.IsOptimal && result.OptimalCard != nil {
		rateDescription := ""
		if result.OptimalTier != nil {
			rateDescription = result.OptimalTier.RateDescription()
		}
		p.notifier.WrongCardAlert(WrongCardAlert{
			UserID:          req.UserID,
			MerchantName:    req.MerchantName,
			Amount:          req.Amount,
			UsedCardName:    card.DisplayName(),
			OptimalCardName: result.OptimalCard.DisplayName(),
			RewardsDelta:    result.RewardsDelta,
			OptimalRate:     rateDescription,
		})
	}
	if card.TransactionCount == 1 {
		p.notifier.NewCardDetected(NewCardAlert{UserID: req.UserID, CardName: card.DisplayName()})
	}

	return txn, nil
}

// PreviewOptimalCard answers "what card should I use here" without touching
// the portfolio or persisting anything. The amount is fixed at zero since
// only the ranking matters. Returns nil when no held card can answer.
func (p *Pipeline) PreviewOptimalCard(merchantName string, userProductIDs []string) *models.CardProduct {
	category := p.classifier.Categorize(merchantName)
	result := p.optimizer.FindOptimalCard(category, 0, userProductIDs, "")
	return result.OptimalCard
}
