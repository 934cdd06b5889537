package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, status, total_records, successful_records, failed_records, started_at, completed_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.MigrationBatch, error) {
	var b entity.MigrationBatch
	err := row.Scan(
		&b.ID, &b.Status, &b.TotalRecords, &b.SuccessfulRecords, &b.FailedRecords,
		&b.StartedAt, &b.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta un lote recién iniciado.
func (r *BatchRepo) Create(b *entity.MigrationBatch) error {
	query := `
		INSERT INTO migration_batches (
			id, status, total_records, successful_records, failed_records, started_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Status, b.TotalRecords, b.SuccessfulRecords, b.FailedRecords, b.StartedAt, b.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote. Devuelve nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.MigrationBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM migration_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetLatest devuelve el lote más reciente. Devuelve nil si no hay ninguno.
func (r *BatchRepo) GetLatest() (*entity.MigrationBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM migration_batches ORDER BY started_at DESC LIMIT 1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest batch: %w", err)
	}
	return b, nil
}

// Update persiste los contadores y el estado del lote. Un lote terminal no
// vuelve a in_progress: la condición del WHERE lo impide.
func (r *BatchRepo) Update(b *entity.MigrationBatch) error {
	query := `
		UPDATE migration_batches
		SET status = $2, total_records = $3, successful_records = $4,
		    failed_records = $5, completed_at = $6
		WHERE id = $1 AND status = 'in_progress'`
	tag, err := r.q.Exec(context.Background(), query,
		b.ID, b.Status, b.TotalRecords, b.SuccessfulRecords, b.FailedRecords, b.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch: lote %s no existe o ya es terminal", b.ID)
	}
	return nil
}

// CountByStatus conteo de lotes por estado.
func (r *BatchRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM migration_batches GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count batches: %w", err)
	}
	defer rows.Close()

	out := map[string]int{
		entity.BatchInProgress: 0,
		entity.BatchCompleted:  0,
		entity.BatchFailed:     0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan batch count: %w", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch counts: %w", err)
	}
	return out, nil
}
