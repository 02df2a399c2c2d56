package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicgrid/complaint-service/internal/domain"
)

// ComplaintFilter captures listing parameters.
type ComplaintFilter struct {
	CitizenID  *string
	MinistryID *string
	AssigneeID *string
	Statuses   []domain.ComplaintStatus
	Priorities []domain.ComplaintPriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// ComplaintRepository encapsulates complaint persistence. Status writes
// and their audit rows go through UpdateStatusWithAudit so the pair
// commits atomically.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	GetByNumber(ctx context.Context, number string) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int64, error)
	UpdateAssignee(ctx context.Context, complaintID string, assigneeID *string) error
	UpdateStatusWithAudit(ctx context.Context, complaint *domain.Complaint, update *domain.ComplaintUpdate) error
	DeleteCascade(ctx context.Context, id string) error
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, complaint_number, citizen_id, ministry_id, assignee_id,
               title, description, location, latitude, longitude,
               status, priority, created_at, updated_at, resolved_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (complaint_number, citizen_id, ministry_id, assignee_id, title, description, location, latitude, longitude, status, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.ComplaintNumber,
		complaint.CitizenID,
		complaint.MinistryID,
		complaint.AssigneeID,
		complaint.Title,
		complaint.Description,
		complaint.Location,
		complaint.Latitude,
		complaint.Longitude,
		complaint.Status,
		complaint.Priority,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE id=$1`, complaintColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *complaintRepository) GetByNumber(ctx context.Context, number string) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE complaint_number=$1`, complaintColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *complaintRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := scanComplaint(r.pool.QueryRow(ctx, query, arg), &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func buildComplaintWhere(filter ComplaintFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CitizenID != nil {
		args = append(args, *filter.CitizenID)
		clauses = append(clauses, fmt.Sprintf("citizen_id=$%d", len(args)))
	}
	if filter.MinistryID != nil {
		args = append(args, *filter.MinistryID)
		clauses = append(clauses, fmt.Sprintf("ministry_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(complaint_number) LIKE %s OR LOWER(location) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	where, args := buildComplaintWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		complaintColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Count(ctx context.Context, filter ComplaintFilter) (int64, error) {
	where, args := buildComplaintWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM complaints WHERE %s`, where)

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *complaintRepository) UpdateAssignee(ctx context.Context, complaintID string, assigneeID *string) error {
	const query = `UPDATE complaints SET assignee_id=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, assigneeID, complaintID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatusWithAudit persists a status change and its audit record in
// one transaction so the complaint can never drift from its trail.
func (r *complaintRepository) UpdateStatusWithAudit(ctx context.Context, complaint *domain.Complaint, update *domain.ComplaintUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const updateQuery = `
        UPDATE complaints SET status=$1, resolved_at=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, updateQuery,
		complaint.Status,
		complaint.ResolvedAt,
		complaint.ID,
	).Scan(&complaint.UpdatedAt); err != nil {
		return err
	}

	const auditQuery = `
        INSERT INTO complaint_updates (complaint_id, status, message, updated_by_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, auditQuery,
		update.ComplaintID,
		update.Status,
		update.Message,
		update.UpdatedByID,
	).Scan(&update.ID, &update.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteCascade removes a complaint together with its attachments, audit
// trail, and comments in one transaction.
func (r *complaintRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, query := range []string{
		`DELETE FROM attachments WHERE complaint_id=$1`,
		`DELETE FROM complaint_updates WHERE complaint_id=$1`,
		`DELETE FROM comments WHERE complaint_id=$1`,
	} {
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return err
		}
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row rowScanner, complaint *domain.Complaint) error {
	return row.Scan(
		&complaint.ID,
		&complaint.ComplaintNumber,
		&complaint.CitizenID,
		&complaint.MinistryID,
		&complaint.AssigneeID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Location,
		&complaint.Latitude,
		&complaint.Longitude,
		&complaint.Status,
		&complaint.Priority,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.ResolvedAt,
	)
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := scanComplaint(rows, &complaint); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
