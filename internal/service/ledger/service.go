package ledger

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	placementRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/placement"
	roomRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/user"
)

// Service журнал размещений
// Проверяет слот, комнату и жильца перед записью. Пересечения интервалов
// проверяет вызывающий код, детская логика здесь не каскадируется
type Service struct {
	placementRepo PlacementRepository
	roomRepo      RoomRepository
	userRepo      UserRepository
	logger        Logger
}

// NewService создает новый экземпляр журнала размещений
func NewService(
	placementRepo PlacementRepository,
	roomRepo RoomRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		placementRepo: placementRepo,
		roomRepo:      roomRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

// Create сохраняет новое размещение
func (s *Service) Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	if err := s.Validate(ctx, p); err != nil {
		return nil, err
	}

	created, err := s.placementRepo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, placementRepo.ErrSlotConflict) {
			s.logger.Warn("Create: storage rejected overlap in room_id=%d slot=%d", p.RoomID, p.Slot)
			return nil, ErrSlotOccupied
		}
		s.logger.Error("Create: repository error for room_id=%d slot=%d: %v", p.RoomID, p.Slot, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: placement id=%d room_id=%d slot=%d occupant=%d status=%s",
		created.ID, created.RoomID, created.Slot, created.OccupantID, created.Status)
	return created, nil
}

// Update применяет частичное обновление к размещению
func (s *Service) Update(ctx context.Context, id int64, patch domain.PlacementPatch) (*domain.Placement, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return p, nil
	}

	p.Apply(patch)
	if err := s.Validate(ctx, p); err != nil {
		return nil, err
	}

	updated, err := s.placementRepo.Update(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, placementRepo.ErrPlacementNotFound):
			return nil, ErrPlacementNotFound
		case errors.Is(err, placementRepo.ErrSlotConflict):
			s.logger.Warn("Update: storage rejected overlap for placement id=%d", id)
			return nil, ErrSlotOccupied
		}
		s.logger.Error("Update: repository error for placement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: placement id=%d room_id=%d slot=%d status=%s", id, updated.RoomID, updated.Slot, updated.Status)
	return updated, nil
}

// Delete удаляет размещение
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.placementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, placementRepo.ErrPlacementNotFound) {
			return ErrPlacementNotFound
		}
		s.logger.Error("Delete: repository error for placement id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: placement id=%d deleted", id)
	return nil
}

// GetByID получает размещение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Placement, error) {
	p, err := s.placementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, placementRepo.ErrPlacementNotFound) {
			return nil, ErrPlacementNotFound
		}
		s.logger.Error("GetByID: repository error for placement id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}
	return p, nil
}

// List размещения по фильтру
func (s *Service) List(ctx context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, ErrInvalidInterval
	}

	placements, err := s.placementRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return placements, nil
}

// ListByRoomIDs размещения указанных комнат
func (s *Service) ListByRoomIDs(ctx context.Context, roomIDs []int64) ([]*domain.Placement, error) {
	if len(roomIDs) == 0 {
		return []*domain.Placement{}, nil
	}
	return s.List(ctx, domain.PlacementFilter{RoomIDs: roomIDs})
}

// FindByOccupant размещения жильца, опционально с фильтром по статусу
func (s *Service) FindByOccupant(ctx context.Context, occupantID int64, status *domain.PlacementStatus) ([]*domain.Placement, error) {
	return s.List(ctx, domain.PlacementFilter{OccupantID: &occupantID, Status: status})
}

// Validate проверки перед записью: статус, даты, заметка, комната, слот, жилец
func (s *Service) Validate(ctx context.Context, p *domain.Placement) error {
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}
	if !p.Interval().IsValid() {
		return ErrInvalidInterval
	}
	if utf8.RuneCountInString(p.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	room, err := s.roomRepo.GetByID(ctx, p.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("Validate: room lookup failed for room_id=%d: %v", p.RoomID, err)
		return fmt.Errorf("%w: Validate - room lookup: %w", ErrInternal, err)
	}

	if !room.HasSlot(p.Slot) {
		return fmt.Errorf("%w: slot %d, capacity %d", ErrInvalidSlot, p.Slot, room.Capacity)
	}

	if _, err := s.userRepo.GetByID(ctx, p.OccupantID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrOccupantNotFound
		}
		s.logger.Error("Validate: occupant lookup failed for user=%d: %v", p.OccupantID, err)
		return fmt.Errorf("%w: Validate - occupant lookup: %w", ErrInternal, err)
	}

	return nil
}
