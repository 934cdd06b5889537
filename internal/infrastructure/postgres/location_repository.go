package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// locationColumns columnas en el orden en que las lee scanLocation.
const locationColumns = `
	id, location_code, stack_id, yard_id, row_number, tier_number,
	is_virtual, virtual_stack_pair_id, is_occupied, container_id,
	container_size, client_pool_id, is_active, created_at, updated_at`

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(
		&l.ID, &l.LocationCode, &l.StackID, &l.YardID, &l.RowNumber, &l.TierNumber,
		&l.IsVirtual, &l.VirtualStackPairID, &l.IsOccupied, &l.ContainerID,
		&l.ContainerSize, &l.ClientPoolID, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta una ubicación nueva.
func (r *LocationRepo) Create(loc *entity.Location) error {
	query := `
		INSERT INTO locations (
			id, location_code, stack_id, yard_id, row_number, tier_number,
			is_virtual, virtual_stack_pair_id, is_occupied, container_id,
			container_size, client_pool_id, is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,false,NULL,NULL,$9,$10,now(),now())`
	_, err := r.q.Exec(context.Background(), query,
		loc.ID, loc.LocationCode, loc.StackID, loc.YardID, loc.RowNumber, loc.TierNumber,
		loc.IsVirtual, loc.VirtualStackPairID, loc.ClientPoolID, loc.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ubicación duplicada %s: %w", loc.LocationCode, err)
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// CreateBatch inserta ubicaciones; las ya existentes (mismo patio y código)
// se reactivan en lugar de duplicarse. Se usa al materializar virtuales.
func (r *LocationRepo) CreateBatch(locs []*entity.Location) error {
	query := `
		INSERT INTO locations (
			id, location_code, stack_id, yard_id, row_number, tier_number,
			is_virtual, virtual_stack_pair_id, is_occupied, container_id,
			container_size, client_pool_id, is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,false,NULL,NULL,$9,$10,now(),now())
		ON CONFLICT (yard_id, location_code)
		DO UPDATE SET is_active = true, updated_at = now()`
	for _, loc := range locs {
		_, err := r.q.Exec(context.Background(), query,
			loc.ID, loc.LocationCode, loc.StackID, loc.YardID, loc.RowNumber, loc.TierNumber,
			loc.IsVirtual, loc.VirtualStackPairID, loc.ClientPoolID, loc.IsActive,
		)
		if err != nil {
			return fmt.Errorf("create batch location %s: %w", loc.LocationCode, err)
		}
	}
	return nil
}

// GetByID obtiene una ubicación por id sintético. Devuelve nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// GetByCode obtiene una ubicación por patio y código legible.
func (r *LocationRepo) GetByCode(yardID, locationCode string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE yard_id = $1 AND location_code = $2`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, yardID, locationCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return loc, nil
}

// FindByCode busca por código en todos los patios (ruta de compatibilidad).
func (r *LocationRepo) FindByCode(locationCode string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE location_code = $1 ORDER BY created_at LIMIT 1`
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, locationCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find location by code: %w", err)
	}
	return loc, nil
}

// ListByStack lista todas las ubicaciones de la pila.
func (r *LocationRepo) ListByStack(stackID string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE stack_id = $1 ORDER BY row_number, tier_number`
	rows, err := r.q.Query(context.Background(), query, stackID)
	if err != nil {
		return nil, fmt.Errorf("list by stack: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// AssignIfFree marca la ubicación como ocupada solo si sigue libre: el WHERE
// incluye la precondición, de modo que dos asignaciones concurrentes no
// pueden ganar ambas. Cero filas afectadas significa que otra petición ganó.
func (r *LocationRepo) AssignIfFree(id, containerID, containerSize string, clientPoolID *string) (*entity.Location, error) {
	query := `
		UPDATE locations
		SET is_occupied = true,
		    container_id = $2,
		    container_size = $3,
		    updated_at = now()
		WHERE id = $1 AND is_occupied = false
		RETURNING ` + locationColumns
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, id, containerID, containerSize))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Rule(id, domain.ErrLocationOccupied)
		}
		return nil, fmt.Errorf("assign location: %w", err)
	}
	return loc, nil
}

// ReleaseIfOccupied libera la ubicación solo si sigue ocupada, limpiando
// contenedor y tamaño en la misma sentencia.
func (r *LocationRepo) ReleaseIfOccupied(id string) (*entity.Location, error) {
	query := `
		UPDATE locations
		SET is_occupied = false,
		    container_id = NULL,
		    container_size = NULL,
		    updated_at = now()
		WHERE id = $1 AND is_occupied = true
		RETURNING ` + locationColumns
	loc, err := scanLocation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Rule(id, domain.ErrLocationNotOccupied)
		}
		return nil, fmt.Errorf("release location: %w", err)
	}
	return loc, nil
}

// ListAvailable lista ubicaciones activas y libres del patio. La rama con
// pool y la rama sin pool son disjuntas por construcción del WHERE.
func (r *LocationRepo) ListAvailable(ctx context.Context, yardID string, f repository.AvailabilityFilter) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM locations
		WHERE yard_id = $1 AND is_active = true AND is_occupied = false`
	args := []any{yardID}

	if f.ContainerSize != nil && *f.ContainerSize != "" {
		args = append(args, *f.ContainerSize)
		query += ` AND (container_size IS NULL OR container_size = $` + strconv.Itoa(len(args)) + `)`
	}
	if f.ClientPoolID != nil && *f.ClientPoolID != "" {
		args = append(args, *f.ClientPoolID)
		query += ` AND client_pool_id = $` + strconv.Itoa(len(args))
	} else {
		query += ` AND client_pool_id IS NULL`
	}
	if f.StackID != nil && *f.StackID != "" {
		args = append(args, *f.StackID)
		query += ` AND stack_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY location_code`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list available: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// DeactivateVirtualOfPair desactiva las virtuales libres del par y reporta
// cuántas quedaron ocupadas.
func (r *LocationRepo) DeactivateVirtualOfPair(stackAID, stackBID string) (int, int, error) {
	ctx := context.Background()
	pairCond := `is_virtual = true AND (
		(stack_id = $1 AND virtual_stack_pair_id = $2) OR
		(stack_id = $2 AND virtual_stack_pair_id = $1))`

	var occupied int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM locations WHERE `+pairCond+` AND is_occupied = true`,
		stackAID, stackBID,
	).Scan(&occupied)
	if err != nil {
		return 0, 0, fmt.Errorf("count occupied virtual: %w", err)
	}

	tag, err := r.q.Exec(ctx,
		`UPDATE locations SET is_active = false, updated_at = now()
		 WHERE `+pairCond+` AND is_occupied = false AND is_active = true`,
		stackAID, stackBID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("deactivate virtual: %w", err)
	}
	return int(tag.RowsAffected()), occupied, nil
}

// CountActive cuenta las ubicaciones activas (para el tracker de migración).
func (r *LocationRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations WHERE is_active = true`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active: %w", err)
	}
	return n, nil
}

// ListActiveWithoutMapping lista ubicaciones activas que aún no tienen mapeo
// de id legado (candidatas del siguiente lote de migración).
func (r *LocationRepo) ListActiveWithoutMapping(ctx context.Context, limit int) ([]*entity.Location, error) {
	query := `
		SELECT ` + qualify(locationColumns, "l") + `
		FROM locations l
		LEFT JOIN location_id_mappings m ON m.new_location_id = l.id
		WHERE l.is_active = true AND m.id IS NULL
		ORDER BY l.location_code
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list without mapping: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// GetAvailabilitySummary conteos de disponibilidad del patio en una sola pasada.
func (r *LocationRepo) GetAvailabilitySummary(ctx context.Context, yardID string) (*repository.AvailabilitySummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE is_active AND is_occupied),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied AND container_size = '20ft'),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied AND container_size = '40ft'),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied AND container_size IS NULL),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied AND client_pool_id IS NOT NULL),
			COUNT(*) FILTER (WHERE is_active AND NOT is_occupied AND client_pool_id IS NULL)
		FROM locations
		WHERE yard_id = $1`
	s := repository.AvailabilitySummary{YardID: yardID}
	err := r.q.QueryRow(ctx, query, yardID).Scan(
		&s.TotalActive, &s.TotalOccupied, &s.TotalAvailable,
		&s.AvailableBy20, &s.AvailableBy40, &s.AvailableUnsized,
		&s.PooledAvailable, &s.UnpooledAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("availability summary: %w", err)
	}
	return &s, nil
}

// GetYardStatistics vista agregada de ocupación del patio. El porcentaje se
// calcula en la DB como NUMERIC y llega como decimal.
func (r *LocationRepo) GetYardStatistics(ctx context.Context, yardID string) (*repository.YardStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE is_active AND is_occupied),
			COUNT(*) FILTER (WHERE is_virtual),
			COALESCE(ROUND(
				100.0 * COUNT(*) FILTER (WHERE is_active AND is_occupied)
				/ NULLIF(COUNT(*) FILTER (WHERE is_active), 0), 2), 0)::numeric
		FROM locations
		WHERE yard_id = $1`
	s := repository.YardStatistics{YardID: yardID}
	err := r.q.QueryRow(ctx, query, yardID).Scan(
		&s.TotalLocations, &s.ActiveLocations, &s.OccupiedCount, &s.VirtualCount, &s.OccupancyPercent,
	)
	if err != nil {
		return nil, fmt.Errorf("yard statistics: %w", err)
	}
	return &s, nil
}

// GetStackStatistics vista agregada de ocupación de una pila.
func (r *LocationRepo) GetStackStatistics(ctx context.Context, yardID string, stackNumber int) (*repository.StackStatistics, error) {
	query := `
		SELECT
			s.id, s.stack_number,
			COUNT(l.id),
			COUNT(l.id) FILTER (WHERE l.is_occupied),
			COALESCE(ROUND(
				100.0 * COUNT(l.id) FILTER (WHERE l.is_occupied)
				/ NULLIF(COUNT(l.id), 0), 2), 0)::numeric
		FROM stacks s
		LEFT JOIN locations l ON l.stack_id = s.id AND l.is_active = true
		WHERE s.yard_id = $1 AND s.stack_number = $2
		GROUP BY s.id, s.stack_number`
	st := repository.StackStatistics{YardID: yardID}
	err := r.q.QueryRow(ctx, query, yardID, stackNumber).Scan(
		&st.StackID, &st.StackNumber, &st.TotalLocations, &st.OccupiedCount, &st.OccupancyPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Rule(strconv.Itoa(stackNumber), domain.ErrStackNotFound)
		}
		return nil, fmt.Errorf("stack statistics: %w", err)
	}
	return &st, nil
}

func collectLocations(rows pgx.Rows) ([]*entity.Location, error) {
	var out []*entity.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}
