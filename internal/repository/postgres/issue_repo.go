package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"saralgst/internal/domain"
	"saralgst/internal/port"
)

type issueRepo struct {
	db *sqlx.DB
}

// NewIssueRepo creates a new PostgreSQL-backed IssueRepository.
func NewIssueRepo(db *sqlx.DB) port.IssueRepository {
	return &issueRepo{db: db}
}

func (r *issueRepo) CreateBatch(ctx context.Context, issues []domain.InvoiceIssue) error {
	if len(issues) == 0 {
		return nil
	}
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("issueRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO invoice_issues (
		id, invoice_id, field_name, issue_type, message,
		detected_value, expected_value, confidence_score,
		status, comment, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10, $11, $12
	)`

	for i := range issues {
		issue := &issues[i]
		issue.CreatedAt = now
		issue.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			issue.ID, issue.InvoiceID, issue.FieldName, issue.IssueType, issue.Message,
			issue.DetectedValue, issue.ExpectedValue, issue.ConfidenceScore,
			issue.Status, issue.Comment, issue.CreatedAt, issue.UpdatedAt); err != nil {
			return fmt.Errorf("issueRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("issueRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *issueRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceIssue, error) {
	var issue domain.InvoiceIssue
	err := r.db.GetContext(ctx, &issue, "SELECT * FROM invoice_issues WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("issueRepo.GetByID: %w", err)
	}
	return &issue, nil
}

func (r *issueRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceIssue, error) {
	var issues []domain.InvoiceIssue
	err := r.db.SelectContext(ctx, &issues,
		"SELECT * FROM invoice_issues WHERE invoice_id = $1 ORDER BY created_at, field_name",
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("issueRepo.ListByInvoice: %w", err)
	}
	return issues, nil
}

func (r *issueRepo) UpdateReview(ctx context.Context, issue *domain.InvoiceIssue) error {
	issue.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoice_issues SET status = $1, comment = $2, updated_at = $3 WHERE id = $4",
		issue.Status, issue.Comment, issue.UpdatedAt, issue.ID)
	if err != nil {
		return fmt.Errorf("issueRepo.UpdateReview: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("issueRepo.UpdateReview rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *issueRepo) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM invoice_issues WHERE invoice_id = $1", invoiceID)
	if err != nil {
		return fmt.Errorf("issueRepo.DeleteByInvoice: %w", err)
	}
	return nil
}
