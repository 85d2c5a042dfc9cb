package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{BaseRepository{db: db}}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.MedicalAuditLog) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_audit_logs (
			id, personnel_id, user_id, case_id, entity_type, entity_id,
			action, field_name, old_value, new_value, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.PersonnelID, entry.UserID, entry.CaseID,
		entry.EntityType, entry.EntityID, entry.Action,
		entry.FieldName, entry.OldValue, entry.NewValue, entry.CreatedAt,
	)
	return mapError(err)
}

func (r *auditRepository) List(ctx context.Context, filters *model.AuditFilters) ([]*model.MedicalAuditLog, error) {
	query := `SELECT * FROM medical_audit_logs WHERE 1=1`
	var args []interface{}

	if filters != nil {
		if filters.PersonnelID != uuid.Nil {
			args = append(args, filters.PersonnelID)
			query += fmt.Sprintf(" AND personnel_id = $%d", len(args))
		}
		if filters.CaseID != uuid.Nil {
			args = append(args, filters.CaseID)
			query += fmt.Sprintf(" AND case_id = $%d", len(args))
		}
		if filters.EntityType != "" {
			args = append(args, filters.EntityType)
			query += fmt.Sprintf(" AND entity_type = $%d", len(args))
		}
		if filters.EntityID != uuid.Nil {
			args = append(args, filters.EntityID)
			query += fmt.Sprintf(" AND entity_id = $%d", len(args))
		}
		if filters.Action != "" {
			args = append(args, filters.Action)
			query += fmt.Sprintf(" AND action = $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC"

	var entries []*model.MedicalAuditLog
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, mapError(err)
	}
	return entries, nil
}

func (r *auditRepository) CountsByAction(ctx context.Context) (map[string]int, error) {
	rows := []struct {
		Action string `db:"action"`
		Count  int    `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT action, COUNT(*) AS count FROM medical_audit_logs GROUP BY action`)
	if err != nil {
		return nil, mapError(err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Count
	}
	return counts, nil
}
