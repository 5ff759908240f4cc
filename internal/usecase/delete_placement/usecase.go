package delete_placement

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
)

const operation = "delete"

// UseCase удаление размещения вместе с детьми
// Детское размещение снимает флаг своей регистрации; размещение родителя
// освобождает отдельные кровати детей и их привязки
type UseCase struct {
	ledger    Ledger
	children  ChildManager
	locker    RoomLocker
	txManager TransactionManager
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledger Ledger,
	children ChildManager,
	locker RoomLocker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		ledger:    ledger,
		children:  children,
		locker:    locker,
		txManager: txManager,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute удаляет размещение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.PlacementID <= 0 {
		uc.metrics.ObserveAllocation(operation, "invalid")
		return nil, fmt.Errorf("%w: placement id must be positive", ErrInvalidInput)
	}

	var resp *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.delete(txCtx, req.PlacementID)
		return err
	})

	uc.metrics.ObserveAllocation(operation, resultLabel(err))
	if err != nil {
		if !errors.Is(err, ErrPlacementNotFound) && !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("DeletePlacement: placement id=%d: %v", req.PlacementID, err)
		} else {
			uc.logger.Warn("DeletePlacement: placement id=%d: %v", req.PlacementID, err)
		}
		return nil, err
	}

	uc.logger.Info("DeletePlacement: placement id=%d deleted from room_id=%d, %d child placements released",
		resp.PlacementID, resp.RoomID, len(resp.ReleasedChildren))
	return resp, nil
}

func (uc *UseCase) delete(ctx context.Context, id int64) (*Response, error) {
	p, err := uc.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, mapLedgerError("get placement", err)
	}

	if err := uc.locker.LockRoom(ctx, p.RoomID); err != nil {
		return nil, fmt.Errorf("%w: lock room %d: %w", ErrInternal, p.RoomID, err)
	}

	resp := &Response{PlacementID: p.ID, RoomID: p.RoomID, ReleasedChildren: []int64{}}

	if p.IsChild() {
		resp.ChildRegistrationID = p.ChildRegistrationID
		if p.ChildRegistrationID != nil {
			if err := uc.children.ReleaseSeparatePlacement(ctx, *p.ChildRegistrationID); err != nil {
				return nil, fmt.Errorf("%w: release child placement: %w", ErrInternal, err)
			}
			return resp, nil
		}
		if err := uc.ledger.Delete(ctx, p.ID); err != nil {
			return nil, mapLedgerError("delete placement", err)
		}
		return resp, nil
	}

	childPlacements, err := uc.ledger.List(ctx, domain.PlacementFilter{ParentPlacementID: &p.ID})
	if err != nil {
		return nil, mapLedgerError("list child placements", err)
	}
	for _, cp := range childPlacements {
		if cp.ChildRegistrationID == nil {
			if err := uc.ledger.Delete(ctx, cp.ID); err != nil {
				return nil, mapLedgerError("delete child placement", err)
			}
			continue
		}
		if err := uc.children.ReleaseSeparatePlacement(ctx, *cp.ChildRegistrationID); err != nil {
			return nil, fmt.Errorf("%w: release child placement: %w", ErrInternal, err)
		}
		resp.ReleasedChildren = append(resp.ReleasedChildren, *cp.ChildRegistrationID)
	}

	if err := uc.children.DetachFromParent(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("%w: detach children: %w", ErrInternal, err)
	}

	if err := uc.ledger.Delete(ctx, p.ID); err != nil {
		return nil, mapLedgerError("delete placement", err)
	}

	return resp, nil
}

func mapLedgerError(op string, err error) error {
	if errors.Is(err, ledger.ErrPlacementNotFound) {
		return ErrPlacementNotFound
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPlacementNotFound):
		return "not_found"
	default:
		return "error"
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAllocation(string, string) {}
