package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

var _ repository.MappingRepository = (*MappingRepo)(nil)

const mappingColumns = `id, legacy_id, new_location_id, migrated_at`

// MappingRepo implementación de MappingRepository sobre PostgreSQL.
// La tabla es append-only: este adaptador no expone update ni delete.
type MappingRepo struct {
	q Querier
}

// NewMappingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMappingRepository(q Querier) *MappingRepo {
	return &MappingRepo{q: q}
}

func scanMapping(row pgx.Row) (*entity.LocationIDMapping, error) {
	var m entity.LocationIDMapping
	if err := row.Scan(&m.ID, &m.LegacyID, &m.NewLocationID, &m.MigratedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un mapeo nuevo (una sola vez por ubicación).
func (r *MappingRepo) Create(m *entity.LocationIDMapping) error {
	query := `
		INSERT INTO location_id_mappings (id, legacy_id, new_location_id, migrated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.LegacyID, m.NewLocationID, m.MigratedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("mapeo duplicado para %s: %w", m.LegacyID, err)
		}
		return fmt.Errorf("create mapping: %w", err)
	}
	return nil
}

// GetByLegacyID busca el mapeo por id legado. Devuelve nil si no existe.
func (r *MappingRepo) GetByLegacyID(legacyID string) (*entity.LocationIDMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM location_id_mappings WHERE legacy_id = $1`
	m, err := scanMapping(r.q.QueryRow(context.Background(), query, legacyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mapping by legacy id: %w", err)
	}
	return m, nil
}

// GetByNewLocationID busca el mapeo por id sintético. Devuelve nil si no existe.
func (r *MappingRepo) GetByNewLocationID(newLocationID string) (*entity.LocationIDMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM location_id_mappings WHERE new_location_id = $1`
	m, err := scanMapping(r.q.QueryRow(context.Background(), query, newLocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mapping by new id: %w", err)
	}
	return m, nil
}

// List devuelve mapeos en orden de migración (para warmup y muestreo).
func (r *MappingRepo) List(ctx context.Context, limit, offset int) ([]*entity.LocationIDMapping, error) {
	query := `SELECT ` + mappingColumns + ` FROM location_id_mappings
		ORDER BY migrated_at, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var out []*entity.LocationIDMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mappings: %w", err)
	}
	return out, nil
}

// Count total de mapeos existentes.
func (r *MappingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM location_id_mappings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count mappings: %w", err)
	}
	return n, nil
}
