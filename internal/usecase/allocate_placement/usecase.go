package allocate_placement

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	"github.com/m04kA/FestAccommodationService/internal/service/children"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
)

// UseCase размещение человека (и его детей) в слоте комнаты
// Создание и редактирование идут в одной serializable транзакции с блокировкой комнаты
type UseCase struct {
	ledger      Ledger
	index       IntervalIndex
	children    ChildManager
	attachments AttachmentRepository
	users       UserRepository
	locker      RoomLocker
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledger Ledger,
	index IntervalIndex,
	children ChildManager,
	attachments AttachmentRepository,
	users UserRepository,
	locker RoomLocker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		ledger:      ledger,
		index:       index,
		children:    children,
		attachments: attachments,
		users:       users,
		locker:      locker,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет размещение; при любой ошибке ни одна запись не сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	operation := "create"
	if req.IsEdit() {
		operation = "update"
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AllocatePlacement: validation failed: %v", err)
		uc.metrics.ObserveAllocation(operation, resultLabel(err))
		return nil, err
	}

	var resp *Response
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		resp, err = uc.allocate(txCtx, req)
		return err
	})

	uc.metrics.ObserveAllocation(operation, resultLabel(err))
	if err != nil {
		if !isKnown(err) {
			err = fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("AllocatePlacement: %s failed: %v", operation, err)
		} else {
			uc.logger.Warn("AllocatePlacement: %s rejected: %v", operation, err)
		}
		return nil, err
	}

	uc.logger.Info("AllocatePlacement: %s placement id=%d room_id=%d slot=%d, %d child placements, %d attached",
		operation, resp.Placement.ID, resp.Placement.RoomID, resp.Placement.Slot,
		len(resp.ChildPlacements), len(resp.Attachments))
	return resp, nil
}

func (uc *UseCase) allocate(ctx context.Context, req *Request) (*Response, error) {
	// 1. Текущее размещение (редактирование) и целевое состояние
	var current *domain.Placement
	if req.IsEdit() {
		p, err := uc.ledger.GetByID(ctx, *req.PlacementID)
		if err != nil {
			return nil, mapLedgerError("get placement", err)
		}
		current = p
	}

	target, patch := buildTarget(req, current)

	if current != nil && current.IsChild() && (req.Children != nil || req.Status != nil) {
		return nil, fmt.Errorf("%w: a child placement keeps its status and has no children", ErrInvalidInput)
	}

	// Блокируем комнаты в порядке возрастания id
	roomIDs := []int64{target.RoomID}
	if current != nil && current.RoomID != target.RoomID {
		roomIDs = append(roomIDs, current.RoomID)
	}
	slices.Sort(roomIDs)
	for _, roomID := range roomIDs {
		if err := uc.locker.LockRoom(ctx, roomID); err != nil {
			return nil, fmt.Errorf("%w: lock room %d: %w", ErrInternal, roomID, err)
		}
	}

	// 2. Комната, слот, жилец
	if err := uc.ledger.Validate(ctx, target); err != nil {
		return nil, mapLedgerError("validate", err)
	}

	// 3. Пересечение в слоте (без дат не проверяется)
	if target.Interval().IsBounded() {
		q := domain.OverlapQuery{RoomID: target.RoomID, Slot: &target.Slot, Interval: target.Interval()}
		if current != nil {
			q.ExcludeIDs = []int64{current.ID}
		}

		overlapping, err := uc.index.FindOverlapping(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("%w: find overlapping: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return nil, fmt.Errorf("%w: room_id=%d slot=%d conflicts with placement id=%d",
				ErrSlotOccupied, target.RoomID, target.Slot, overlapping[0].ID)
		}
	}

	// 4. Запись основного размещения
	var primary *domain.Placement
	var err error
	if current == nil {
		primary, err = uc.ledger.Create(ctx, target)
	} else {
		primary, err = uc.ledger.Update(ctx, current.ID, patch)
	}
	if err != nil {
		return nil, mapLedgerError("save placement", err)
	}

	// 5. Дети
	if req.Children != nil {
		if err := uc.allocateChildren(ctx, req, primary, current != nil); err != nil {
			return nil, err
		}
	}

	return uc.response(ctx, primary)
}

func (uc *UseCase) allocateChildren(ctx context.Context, req *Request, primary *domain.Placement, isEdit bool) error {
	if isEdit {
		if err := uc.children.DetachFromParent(ctx, primary.ID); err != nil {
			return mapChildrenError(err)
		}
	}

	withParent, separateBed := partitionChildren(req.Children)

	// Отдельные кровати, которые больше не нужны, освобождаются до подбора слотов новым
	if isEdit {
		existing, err := uc.ledger.List(ctx, domain.PlacementFilter{ParentPlacementID: &primary.ID})
		if err != nil {
			return mapLedgerError("list child placements", err)
		}
		for _, cp := range existing {
			if cp.ChildRegistrationID == nil || slices.Contains(separateBed, *cp.ChildRegistrationID) {
				continue
			}
			if err := uc.children.ReleaseSeparatePlacement(ctx, *cp.ChildRegistrationID); err != nil {
				return mapChildrenError(err)
			}
		}
	}

	for _, childID := range withParent {
		if _, err := uc.children.AttachToParent(ctx, primary.ID, childID); err != nil {
			return mapChildrenError(err)
		}
	}

	if len(separateBed) == 0 {
		return nil
	}

	parentName, err := uc.parentName(ctx, primary.OccupantID)
	if err != nil {
		return err
	}

	reserved := []int{primary.Slot}
	for _, childID := range separateBed {
		cp, err := uc.children.EnsureSeparatePlacement(ctx, children.EnsureRequest{
			ChildRegistrationID: childID,
			ParentPlacementID:   primary.ID,
			RoomID:              primary.RoomID,
			ReservedSlots:       slices.Clone(reserved),
			Interval:            primary.Interval(),
			ManagerID:           req.ManagerID,
			ParentName:          parentName,
		})
		if err != nil {
			return mapChildrenError(err)
		}
		if cp.RoomID == primary.RoomID {
			reserved = append(reserved, cp.Slot)
		}
	}

	return nil
}

func (uc *UseCase) response(ctx context.Context, primary *domain.Placement) (*Response, error) {
	childPlacements, err := uc.ledger.List(ctx, domain.PlacementFilter{ParentPlacementID: &primary.ID})
	if err != nil {
		return nil, mapLedgerError("list child placements", err)
	}

	attachments, err := uc.attachments.ListByPlacementIDs(ctx, []int64{primary.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", ErrInternal, err)
	}

	return &Response{
		Placement:       primary,
		ChildPlacements: childPlacements,
		Attachments:     attachments,
	}, nil
}

func (uc *UseCase) parentName(ctx context.Context, occupantID int64) (string, error) {
	u, err := uc.users.GetByID(ctx, occupantID)
	if err != nil {
		return "", fmt.Errorf("%w: parent name: %w", ErrInternal, err)
	}
	return u.DisplayName(), nil
}

// buildTarget состояние размещения после запроса и патч для журнала
func buildTarget(req *Request, current *domain.Placement) (*domain.Placement, domain.PlacementPatch) {
	patch := domain.PlacementPatch{
		RoomID:     req.RoomID,
		Slot:       req.Slot,
		OccupantID: req.OccupantID,
		Status:     req.Status,
		Note:       req.Note,
	}

	if current == nil {
		target := &domain.Placement{
			ManagerID: req.ManagerID,
			Status:    domain.StatusBooked,
			DateFrom:  req.DateFrom.Value,
			DateTo:    req.DateTo.Value,
		}
		target.Apply(patch)
		return target, patch
	}

	if req.DateFrom.Set || req.DateTo.Set {
		iv := current.Interval()
		if req.DateFrom.Set {
			iv.From = req.DateFrom.Value
		}
		if req.DateTo.Set {
			iv.To = req.DateTo.Value
		}
		patch.Interval = &iv
	}

	target := *current
	target.Apply(patch)
	return &target, patch
}

func mapLedgerError(op string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrPlacementNotFound):
		return ErrPlacementNotFound
	case errors.Is(err, ledger.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, ledger.ErrOccupantNotFound):
		return ErrOccupantNotFound
	case errors.Is(err, ledger.ErrInvalidSlot):
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	case errors.Is(err, ledger.ErrSlotOccupied):
		return ErrSlotOccupied
	case errors.Is(err, ledger.ErrInvalidStatus),
		errors.Is(err, ledger.ErrInvalidInterval),
		errors.Is(err, ledger.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

func mapChildrenError(err error) error {
	switch {
	case errors.Is(err, children.ErrChildNotFound):
		return fmt.Errorf("%w: %v", ErrChildNotFound, err)
	case errors.Is(err, children.ErrNoFreeSlot):
		return ErrNoFreeSlot
	case errors.Is(err, children.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, children.ErrPlacementNotFound):
		return ErrPlacementNotFound
	case errors.Is(err, children.ErrInvalidParent):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: children: %w", ErrInternal, err)
}

func isKnown(err error) bool {
	for _, known := range []error{
		ErrInvalidInput, ErrInvalidSlot, ErrRoomNotFound, ErrOccupantNotFound, ErrPlacementNotFound,
		ErrChildNotFound, ErrSlotOccupied, ErrNoFreeSlot, ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// resultLabel значение метки result метрики allocations_total
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSlotOccupied):
		return "conflict"
	case errors.Is(err, ErrNoFreeSlot):
		return "no_free_slot"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidSlot):
		return "invalid"
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrOccupantNotFound),
		errors.Is(err, ErrPlacementNotFound), errors.Is(err, ErrChildNotFound):
		return "not_found"
	default:
		return "error"
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAllocation(string, string) {}
