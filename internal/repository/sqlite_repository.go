package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chatstarter/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// --- Users ---

func (r *sqliteRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := "INSERT INTO users (id, email, hashed_password, full_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.HashedPassword, user.FullName, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := "SELECT id, email, hashed_password, full_name, created_at, updated_at FROM users WHERE email = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *sqliteRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := "SELECT id, email, hashed_password, full_name, created_at, updated_at FROM users WHERE id = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, userID))
}

func (r *sqliteRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var fullName sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &fullName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	return &user, nil
}

// --- Conversations ---

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, user_id, title, ai_provider, ai_model, system_prompt, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.UserID, conv.Title, conv.AIProvider, conv.AIModel, conv.SystemPrompt, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, user_id, title, ai_provider, ai_model, system_prompt, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)

	var conv model.Conversation
	var systemPrompt sql.NullString
	err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.AIProvider, &conv.AIModel, &systemPrompt, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if systemPrompt.Valid {
		conv.SystemPrompt = &systemPrompt.String
	}
	return &conv, nil
}

func (r *sqliteRepository) GetConversationsByUser(ctx context.Context, userID string) ([]*model.Conversation, error) {
	query := "SELECT id, user_id, title, ai_provider, ai_model, system_prompt, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		var systemPrompt sql.NullString
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.AIProvider, &conv.AIModel, &systemPrompt, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		if systemPrompt.Valid {
			conv.SystemPrompt = &systemPrompt.String
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteRepository) UpdateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "UPDATE conversations SET title = ?, system_prompt = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, conv.Title, conv.SystemPrompt, time.Now().UTC(), conv.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", conversationID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// --- Messages ---

// AddMessage inserts the message and bumps the owning conversation's
// updated_at inside one transaction, so the conversation list ordering stays
// consistent with its newest message.
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := "INSERT INTO messages (id, conversation_id, role, content, tokens_used, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err = tx.ExecContext(ctx, insertQuery,
		message.ID,
		message.ConversationID,
		message.Role,
		message.Content,
		message.TokensUsed,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	touchQuery := "UPDATE conversations SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, touchQuery, time.Now().UTC(), message.ConversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessagesByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := "SELECT id, conversation_id, role, content, tokens_used, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		var tokensUsed sql.NullInt64
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &tokensUsed, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if tokensUsed.Valid {
			n := int(tokensUsed.Int64)
			msg.TokensUsed = &n
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
