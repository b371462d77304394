package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PDHeisenberg/cardwise/internal/models"
	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at::text`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at::text
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUserIDs returns the ids of all registered users
func (r *Repository) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at::text
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ActiveCards returns a user's active portfolio cards
func (r *Repository) ActiveCards(ctx context.Context, userID int64) ([]*models.Card, error) {
	query := `
		SELECT id, user_id, name, issuer, COALESCE(matched_product_id, ''), raw_names,
		       first_seen, last_used, transaction_count, is_active, match_confidence
		FROM cards
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY first_seen`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		err := rows.Scan(
			&card.ID, &card.UserID, &card.Name, &card.Issuer, &card.MatchedProductID,
			pq.Array(&card.RawNames), &card.FirstSeen, &card.LastUsed,
			&card.TransactionCount, &card.IsActive, &card.MatchConfidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// CreateCard inserts a newly detected card
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, user_id, name, issuer, matched_product_id, raw_names,
		                   first_seen, last_used, transaction_count, is_active, match_confidence)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		card.ID, card.UserID, card.Name, card.Issuer, card.MatchedProductID,
		pq.Array(card.RawNames), card.FirstSeen, card.LastUsed,
		card.TransactionCount, card.IsActive, card.MatchConfidence,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// UpdateCard persists in-place changes to an existing card
func (r *Repository) UpdateCard(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET raw_names = $2, last_used = $3, transaction_count = $4, is_active = $5
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		card.ID, pq.Array(card.RawNames), card.LastUsed, card.TransactionCount, card.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("card %s not found", card.ID)
	}
	return nil
}

// CreateTransaction inserts a transaction record
func (r *Repository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, merchant_name, amount, currency, card_name,
		                          card_id, category, optimal_card_id, actual_rewards,
		                          optimal_rewards, rewards_delta, optimal_card_name,
		                          timestamp, is_optimal)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12,
		        NULLIF($13, ''), $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.MerchantName, txn.Amount, txn.Currency, txn.CardName,
		txn.CardID, string(txn.Category), txn.OptimalCardID, txn.ActualRewards,
		txn.OptimalRewards, txn.RewardsDelta, txn.OptimalCardName,
		txn.Timestamp, txn.IsOptimal,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// TransactionsByUser returns a user's transactions, newest first
func (r *Repository) TransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, user_id, merchant_name, amount, currency, card_name,
		        COALESCE(card_id, ''), category, COALESCE(optimal_card_id, ''),
		        actual_rewards, optimal_rewards, rewards_delta,
		        COALESCE(optimal_card_name, ''), timestamp, is_optimal
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY timestamp DESC`, userID)
}

// TransactionsByUserSince returns a user's transactions at or after the
// given time, newest first
func (r *Repository) TransactionsByUserSince(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, user_id, merchant_name, amount, currency, card_name,
		        COALESCE(card_id, ''), category, COALESCE(optimal_card_id, ''),
		        actual_rewards, optimal_rewards, rewards_delta,
		        COALESCE(optimal_card_name, ''), timestamp, is_optimal
		 FROM transactions
		 WHERE user_id = $1 AND timestamp >= $2
		 ORDER BY timestamp DESC`, userID, since)
}

func (r *Repository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		var category string
		err := rows.Scan(
			&txn.ID, &txn.UserID, &txn.MerchantName, &txn.Amount, &txn.Currency,
			&txn.CardName, &txn.CardID, &category, &txn.OptimalCardID,
			&txn.ActualRewards, &txn.OptimalRewards, &txn.RewardsDelta,
			&txn.OptimalCardName, &txn.Timestamp, &txn.IsOptimal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Category = models.ParseCategory(category)
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
