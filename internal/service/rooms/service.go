package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	festivalRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/festival"
	roomRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/room"
)

// invalidator кэш каталога, который нужно сбросить после commit
type invalidator interface {
	Invalidate(id int64)
}

// Service каталог комнат: листинг с размещениями, свободные слоты, правка и удаление
type Service struct {
	roomRepo      RoomRepository
	ledger        Ledger
	index         IntervalIndex
	locker        RoomLocker
	attachments   AttachmentRepository
	registrations RegistrationRepository
	users         UserRepository
	festivals     FestivalRepository
	txManager     TransactionManager
	logger        Logger
}

func NewService(
	roomRepo RoomRepository,
	ledger Ledger,
	index IntervalIndex,
	locker RoomLocker,
	attachments AttachmentRepository,
	registrations RegistrationRepository,
	users UserRepository,
	festivals FestivalRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:      roomRepo,
		ledger:        ledger,
		index:         index,
		locker:        locker,
		attachments:   attachments,
		registrations: registrations,
		users:         users,
		festivals:     festivals,
		txManager:     txManager,
		logger:        logger,
	}
}

// List комнаты корпусов активного фестиваля
// Без активного фестиваля ограничения по корпусам нет
func (s *Service) List(ctx context.Context, filter domain.RoomFilter, withPlacements bool) (*Catalog, error) {
	catalog := &Catalog{Rooms: []RoomView{}}

	festival, err := s.festivals.GetActive(ctx)
	switch {
	case err == nil:
		catalog.Festival = festival
		filter.Buildings = festival.AvailableBuildings
	case errors.Is(err, festivalRepo.ErrFestivalNotFound):
		s.logger.Warn("List: no active festival, building restriction is not applied")
	default:
		s.logger.Error("List: festival lookup failed: %v", err)
		return nil, fmt.Errorf("%w: List - festival lookup: %w", ErrInternal, err)
	}

	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	for _, room := range rooms {
		catalog.Rooms = append(catalog.Rooms, RoomView{Room: room, Placements: []PlacementView{}})
	}

	if !withPlacements || len(rooms) == 0 {
		return catalog, nil
	}

	if err := s.fillPlacements(ctx, catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

// GetFreeSlots свободные слоты комнаты за период, обе даты обязательны
func (s *Service) GetFreeSlots(ctx context.Context, roomID int64, iv domain.Interval) (*FreeSlots, error) {
	if !iv.IsBounded() || !iv.IsValid() {
		return nil, ErrInvalidInterval
	}

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.index.OccupiedSlots(ctx, room.ID, iv)
	if err != nil {
		s.logger.Error("GetFreeSlots: occupied slots for room_id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: GetFreeSlots - occupied slots: %w", ErrInternal, err)
	}

	return &FreeSlots{
		Room:     room,
		Interval: iv,
		Free:     domain.FreeSlots(room.Capacity, occupied),
		Occupied: occupied.Sorted(),
	}, nil
}

// Update меняет расположение, вместимость и описание
// Уменьшить вместимость ниже занятого слота нельзя
func (s *Service) Update(ctx context.Context, roomID int64, patch RoomPatch) (*domain.Room, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if (patch.Building != nil && *patch.Building <= 0) || (patch.Number != nil && *patch.Number <= 0) ||
		(patch.Floor != nil && *patch.Floor < 0) {
		return nil, fmt.Errorf("%w: building and number must be positive, floor non-negative", ErrInvalidInput)
	}
	if patch.Capacity != nil && (*patch.Capacity < domain.MinRoomCapacity || *patch.Capacity > domain.MaxRoomCapacity) {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidCapacity, domain.MinRoomCapacity, domain.MaxRoomCapacity)
	}

	var updated *domain.Room
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.locker.LockRoom(ctx, roomID); err != nil {
			return fmt.Errorf("%w: Update - lock room: %w", ErrInternal, err)
		}

		room, err := s.getRoom(ctx, roomID)
		if err != nil {
			return err
		}

		if patch.Capacity != nil && *patch.Capacity < room.Capacity {
			placements, err := s.ledger.ListByRoomIDs(ctx, []int64{roomID})
			if err != nil {
				return fmt.Errorf("%w: Update - list placements: %w", ErrInternal, err)
			}
			for _, p := range placements {
				if p.Slot > *patch.Capacity {
					return fmt.Errorf("%w: slot %d is used by placement id=%d", ErrCapacityInUse, p.Slot, p.ID)
				}
			}
		}

		if patch.Building != nil {
			room.Building = *patch.Building
		}
		if patch.Floor != nil {
			room.Floor = *patch.Floor
		}
		if patch.Number != nil {
			room.Number = *patch.Number
		}
		if patch.Capacity != nil {
			room.Capacity = *patch.Capacity
		}
		if patch.Description != nil {
			room.Description = *patch.Description
		}

		updated, err = s.roomRepo.Update(ctx, room)
		if err != nil {
			switch {
			case errors.Is(err, roomRepo.ErrRoomNotFound):
				return ErrRoomNotFound
			case errors.Is(err, roomRepo.ErrRoomExists):
				return fmt.Errorf("%w: building=%d floor=%d number=%d", ErrRoomLocationTaken, room.Building, room.Floor, room.Number)
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	s.invalidate(roomID)

	if err != nil {
		s.logDomainError("Update", roomID, err)
		return nil, err
	}

	s.logger.Info("Update: room_id=%d building=%d floor=%d number=%d capacity=%d",
		roomID, updated.Building, updated.Floor, updated.Number, updated.Capacity)
	return updated, nil
}

// Delete удаляет комнату без размещений
func (s *Service) Delete(ctx context.Context, roomID int64) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.locker.LockRoom(ctx, roomID); err != nil {
			return fmt.Errorf("%w: Delete - lock room: %w", ErrInternal, err)
		}

		if _, err := s.getRoom(ctx, roomID); err != nil {
			return err
		}

		placements, err := s.ledger.ListByRoomIDs(ctx, []int64{roomID})
		if err != nil {
			return fmt.Errorf("%w: Delete - list placements: %w", ErrInternal, err)
		}
		if len(placements) > 0 {
			return fmt.Errorf("%w: %d placements", ErrRoomInUse, len(placements))
		}

		if err := s.roomRepo.Delete(ctx, roomID); err != nil {
			switch {
			case errors.Is(err, roomRepo.ErrRoomNotFound):
				return ErrRoomNotFound
			case errors.Is(err, roomRepo.ErrRoomInUse):
				return ErrRoomInUse
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	s.invalidate(roomID)

	if err != nil {
		s.logDomainError("Delete", roomID, err)
		return err
	}

	s.logger.Info("Delete: room_id=%d deleted", roomID)
	return nil
}

func (s *Service) fillPlacements(ctx context.Context, catalog *Catalog) error {
	roomIDs := make([]int64, 0, len(catalog.Rooms))
	for _, rv := range catalog.Rooms {
		roomIDs = append(roomIDs, rv.Room.ID)
	}

	placements, err := s.ledger.ListByRoomIDs(ctx, roomIDs)
	if err != nil {
		return fmt.Errorf("%w: List - placements: %w", ErrInternal, err)
	}
	if len(placements) == 0 {
		return nil
	}

	placementIDs := make([]int64, 0, len(placements))
	userIDs := make([]int64, 0, len(placements)*2)
	for _, p := range placements {
		placementIDs = append(placementIDs, p.ID)
		userIDs = append(userIDs, p.OccupantID, p.ManagerID)
	}

	attachments, err := s.attachments.ListByPlacementIDs(ctx, placementIDs)
	if err != nil {
		return fmt.Errorf("%w: List - attachments: %w", ErrInternal, err)
	}

	childIDs := make([]int64, 0, len(attachments))
	for _, a := range attachments {
		childIDs = append(childIDs, a.ChildRegistrationID)
	}
	registrations, err := s.registrations.ListByIDs(ctx, childIDs)
	if err != nil {
		return fmt.Errorf("%w: List - child registrations: %w", ErrInternal, err)
	}
	registrationsByID := make(map[int64]*domain.ChildRegistration, len(registrations))
	for _, r := range registrations {
		registrationsByID[r.ID] = r
		userIDs = append(userIDs, r.ChildUserID)
	}

	users, err := s.users.ListByIDs(ctx, unique(userIDs))
	if err != nil {
		return fmt.Errorf("%w: List - users: %w", ErrInternal, err)
	}
	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	childrenByPlacement := make(map[int64][]ChildView)
	for _, a := range attachments {
		reg := registrationsByID[a.ChildRegistrationID]
		if reg == nil {
			continue
		}
		childrenByPlacement[a.PlacementID] = append(childrenByPlacement[a.PlacementID], ChildView{
			Registration: reg,
			User:         usersByID[reg.ChildUserID],
		})
	}

	byRoom := make(map[int64][]PlacementView)
	for _, p := range placements {
		children := childrenByPlacement[p.ID]
		if children == nil {
			children = []ChildView{}
		}
		byRoom[p.RoomID] = append(byRoom[p.RoomID], PlacementView{
			Placement: p,
			Occupant:  usersByID[p.OccupantID],
			Manager:   usersByID[p.ManagerID],
			Children:  children,
		})
	}

	for i := range catalog.Rooms {
		if views, ok := byRoom[catalog.Rooms[i].Room.ID]; ok {
			catalog.Rooms[i].Placements = views
		}
	}

	return nil
}

func (s *Service) getRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: room lookup id=%d: %w", ErrInternal, roomID, err)
	}
	return room, nil
}

func (s *Service) invalidate(roomID int64) {
	if cache, ok := s.roomRepo.(invalidator); ok {
		cache.Invalidate(roomID)
	}
}

func (s *Service) logDomainError(op string, roomID int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: room_id=%d: %v", op, roomID, err)
		return
	}
	s.logger.Warn("%s: room_id=%d rejected: %v", op, roomID, err)
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
