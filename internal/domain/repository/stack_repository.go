package repository

import "github.com/jhoicas/Patio-api/internal/domain/entity"

// StackRepository define el puerto de persistencia para Stack (DIP).
type StackRepository interface {
	Create(stack *entity.Stack) error
	GetByID(id string) (*entity.Stack, error)
	GetByNumber(yardID string, stackNumber int) (*entity.Stack, error)
	UpdateContainerSize(id, containerSize string) error

	// ListManaged devuelve las pilas administrables directamente del patio
	// (las colocaciones puramente virtuales quedan excluidas).
	ListManaged(yardID string) ([]*entity.Stack, error)
}
