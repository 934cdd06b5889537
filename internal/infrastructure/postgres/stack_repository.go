package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

var _ repository.StackRepository = (*StackRepo)(nil)

const stackColumns = `
	id, stack_number, section_id, yard_id, container_size, is_special_stack,
	capacity, current_occupancy, assigned_client_code, created_at, updated_at`

// StackRepo implementación de StackRepository sobre PostgreSQL (usable con pool o tx).
type StackRepo struct {
	q Querier
}

// NewStackRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStackRepository(q Querier) *StackRepo {
	return &StackRepo{q: q}
}

func scanStack(row pgx.Row) (*entity.Stack, error) {
	var s entity.Stack
	err := row.Scan(
		&s.ID, &s.StackNumber, &s.SectionID, &s.YardID, &s.ContainerSize,
		&s.IsSpecialStack, &s.Capacity, &s.CurrentOccupancy, &s.AssignedClientCode,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta una pila.
func (r *StackRepo) Create(stack *entity.Stack) error {
	query := `
		INSERT INTO stacks (
			id, stack_number, section_id, yard_id, container_size,
			is_special_stack, capacity, current_occupancy, assigned_client_code,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now())`
	_, err := r.q.Exec(context.Background(), query,
		stack.ID, stack.StackNumber, stack.SectionID, stack.YardID, stack.ContainerSize,
		stack.IsSpecialStack, stack.Capacity, stack.CurrentOccupancy, stack.AssignedClientCode,
	)
	if err != nil {
		return fmt.Errorf("create stack: %w", err)
	}
	return nil
}

// GetByID obtiene una pila por id. Devuelve nil si no existe.
func (r *StackRepo) GetByID(id string) (*entity.Stack, error) {
	query := `SELECT ` + stackColumns + ` FROM stacks WHERE id = $1`
	s, err := scanStack(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stack: %w", err)
	}
	return s, nil
}

// GetByNumber obtiene una pila por patio y número. Devuelve nil si no existe.
func (r *StackRepo) GetByNumber(yardID string, stackNumber int) (*entity.Stack, error) {
	query := `SELECT ` + stackColumns + ` FROM stacks WHERE yard_id = $1 AND stack_number = $2`
	s, err := scanStack(r.q.QueryRow(context.Background(), query, yardID, stackNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stack by number: %w", err)
	}
	return s, nil
}

// UpdateContainerSize cambia el tamaño configurado de la pila.
func (r *StackRepo) UpdateContainerSize(id, containerSize string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stacks SET container_size = $2, updated_at = now() WHERE id = $1`,
		id, containerSize,
	)
	if err != nil {
		return fmt.Errorf("update stack size: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stack size: pila %s no encontrada", id)
	}
	return nil
}

// ListManaged lista las pilas administrables directamente del patio, en orden
// de número. Las colocaciones virtuales viven en locations (is_virtual) y no
// aparecen aquí.
func (r *StackRepo) ListManaged(yardID string) ([]*entity.Stack, error) {
	query := `SELECT ` + stackColumns + ` FROM stacks WHERE yard_id = $1 ORDER BY stack_number`
	rows, err := r.q.Query(context.Background(), query, yardID)
	if err != nil {
		return nil, fmt.Errorf("list stacks: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stack
	for rows.Next() {
		s, err := scanStack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stack: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stacks: %w", err)
	}
	return out, nil
}
