package stacks

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/internal/domain/yard"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// TxRunner ejecuta un callback con repositorios atados a una transacción.
// Cambiar el tamaño de una pila toca dos pilas y sus ubicaciones virtuales:
// o se aplica todo o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stacks repository.StackRepository,
		locations repository.LocationRepository,
	) error) error
}

// UseCase administra la configuración de tamaño de las pilas y mantiene la
// consistencia par-a-par exigida por el emparejamiento de 40 pies.
type UseCase struct {
	txRunner TxRunner
	stacks   repository.StackRepository
	cache    *allocation.Cache
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, stacks repository.StackRepository, cache *allocation.Cache, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, stacks: stacks, cache: cache, log: log}
}

// ChangeSizeResult resultado de un cambio de tamaño.
type ChangeSizeResult struct {
	UpdatedStacks      []*entity.Stack
	VirtualCreated     int
	VirtualDeactivated int
}

// ChangeContainerSize cambia el tamaño configurado de la pila.
//
// Al tamaño mayor: la pila pareja resuelta se actualiza al mismo tamaño en la
// misma transacción (consistencia ambos-o-ninguno) y se materializan las
// ubicaciones virtuales que cruzan ambas pilas en coordenadas fila/nivel
// coincidentes. Falla sin cambio parcial si la pila es especial, no tiene
// pareja válida, o la pareja no existe en el almacén.
//
// Al tamaño menor: solo cambia la pila nombrada; sus ubicaciones virtuales
// libres se desactivan, y una virtual ocupada bloquea la operación.
func (uc *UseCase) ChangeContainerSize(ctx context.Context, yardID string, stackNumber int, size string) (*ChangeSizeResult, error) {
	if size != entity.Size20 && size != entity.Size40 {
		return nil, domain.Rule(strconv.Itoa(stackNumber), domain.ErrInvalidInput)
	}
	if size == entity.Size40 {
		return uc.upsizeToPair(ctx, yardID, stackNumber)
	}
	return uc.downsize(ctx, yardID, stackNumber)
}

func (uc *UseCase) upsizeToPair(ctx context.Context, yardID string, stackNumber int) (*ChangeSizeResult, error) {
	stackID := strconv.Itoa(stackNumber)
	if yard.IsSpecialStack(stackNumber) {
		return nil, domain.Rule(stackID, domain.ErrSpecialStackSize)
	}
	partnerNumber, ok := yard.AdjacentStackNumber(stackNumber)
	if !ok || yard.IsSpecialStack(partnerNumber) {
		return nil, domain.Rule(stackID, domain.ErrNoPairAvailable)
	}

	var result ChangeSizeResult
	err := uc.txRunner.Run(ctx, func(stacks repository.StackRepository, locations repository.LocationRepository) error {
		stack, err := stacks.GetByNumber(yardID, stackNumber)
		if err != nil {
			return err
		}
		if stack == nil {
			return domain.Rule(stackID, domain.ErrStackNotFound)
		}
		partner, err := stacks.GetByNumber(yardID, partnerNumber)
		if err != nil {
			return err
		}
		// La pareja debe existir y no ser especial; si no, la pila no puede
		// alojar el tamaño mayor.
		if partner == nil || partner.IsSpecialStack || stack.IsSpecialStack {
			return domain.Rule(stackID, domain.ErrNoPairAvailable)
		}

		if err := stacks.UpdateContainerSize(stack.ID, entity.Size40); err != nil {
			return err
		}
		if err := stacks.UpdateContainerSize(partner.ID, entity.Size40); err != nil {
			return err
		}

		created, err := uc.materializeVirtual(stack, partner, locations)
		if err != nil {
			return err
		}

		stack.ContainerSize = entity.Size40
		partner.ContainerSize = entity.Size40
		result = ChangeSizeResult{
			UpdatedStacks:  []*entity.Stack{stack, partner},
			VirtualCreated: created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateYard(yardID)
	uc.log.Info().
		Int("stack", stackNumber).
		Int("partner", partnerNumber).
		Int("virtual_created", result.VirtualCreated).
		Msg("par de pilas configurado a 40ft")
	return &result, nil
}

// materializeVirtual crea el conjunto de ubicaciones virtuales del par: una
// por cada coordenada fila/nivel de la pila base, con código en el número
// intermedio del par (entre f y f+2 no existe pila física).
func (uc *UseCase) materializeVirtual(base, partner *entity.Stack, locations repository.LocationRepository) (int, error) {
	physical, err := locations.ListByStack(base.ID)
	if err != nil {
		return 0, err
	}

	first := base
	second := partner
	if partner.StackNumber < base.StackNumber {
		first, second = partner, base
	}
	virtualNumber := first.StackNumber + 1

	var virtuals []*entity.Location
	for _, p := range physical {
		if p.IsVirtual {
			continue
		}
		pairID := second.ID
		virtuals = append(virtuals, &entity.Location{
			ID:                 "U-" + uuid.NewString(),
			LocationCode:       yard.FormatLocationCode(virtualNumber, p.RowNumber, p.TierNumber),
			StackID:            first.ID,
			YardID:             base.YardID,
			RowNumber:          p.RowNumber,
			TierNumber:         p.TierNumber,
			IsVirtual:          true,
			VirtualStackPairID: &pairID,
			IsActive:           true,
		})
	}
	if len(virtuals) == 0 {
		return 0, nil
	}
	// CreateBatch reactiva (is_active=true) las virtuales ya existentes del
	// par en lugar de duplicarlas.
	if err := locations.CreateBatch(virtuals); err != nil {
		return 0, err
	}
	return len(virtuals), nil
}

func (uc *UseCase) downsize(ctx context.Context, yardID string, stackNumber int) (*ChangeSizeResult, error) {
	stackID := strconv.Itoa(stackNumber)

	var result ChangeSizeResult
	err := uc.txRunner.Run(ctx, func(stacks repository.StackRepository, locations repository.LocationRepository) error {
		stack, err := stacks.GetByNumber(yardID, stackNumber)
		if err != nil {
			return err
		}
		if stack == nil {
			return domain.Rule(stackID, domain.ErrStackNotFound)
		}

		deactivated := 0
		if stack.ContainerSize == entity.Size40 {
			if partnerNumber, ok := yard.AdjacentStackNumber(stackNumber); ok {
				partner, err := stacks.GetByNumber(yardID, partnerNumber)
				if err != nil {
					return err
				}
				if partner != nil {
					n, occupied, err := locations.DeactivateVirtualOfPair(stack.ID, partner.ID)
					if err != nil {
						return err
					}
					// Una virtual ocupada bloquea el downsize: el contenedor
					// de 40 sigue físicamente sobre ambas pilas. El rollback
					// de la transacción deja todo intacto.
					if occupied > 0 {
						return domain.Rule(stackID, domain.ErrPairOccupied)
					}
					deactivated = n
				}
			}
		}

		if err := stacks.UpdateContainerSize(stack.ID, entity.Size20); err != nil {
			return err
		}
		stack.ContainerSize = entity.Size20
		result = ChangeSizeResult{
			UpdatedStacks:      []*entity.Stack{stack},
			VirtualDeactivated: deactivated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateYard(yardID)
	uc.log.Info().Int("stack", stackNumber).Msg("pila configurada a 20ft")
	return &result, nil
}

// ListManaged devuelve las pilas administrables directamente del patio
// (excluye las colocaciones puramente virtuales).
func (uc *UseCase) ListManaged(ctx context.Context, yardID string) ([]*entity.Stack, error) {
	return uc.stacks.ListManaged(yardID)
}
