package children

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	festivalRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/festival"
	registrationRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/registration"
	roomRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/room"
	"github.com/m04kA/FestAccommodationService/internal/service/ledger"
	"github.com/m04kA/FestAccommodationService/pkg/ptr"
)

// Manager ведет детей: либо привязка к размещению родителя, либо своя кровать
// После каждой операции флаг needsSeparateBed совпадает с наличием детского размещения
type Manager struct {
	ledger        Ledger
	index         IntervalIndex
	attachments   AttachmentRepository
	registrations RegistrationRepository
	rooms         RoomRepository
	users         UserRepository
	festivals     FestivalRepository
	logger        Logger
}

func NewManager(
	ledger Ledger,
	index IntervalIndex,
	attachments AttachmentRepository,
	registrations RegistrationRepository,
	rooms RoomRepository,
	users UserRepository,
	festivals FestivalRepository,
	logger Logger,
) *Manager {
	return &Manager{
		ledger:        ledger,
		index:         index,
		attachments:   attachments,
		registrations: registrations,
		rooms:         rooms,
		users:         users,
		festivals:     festivals,
		logger:        logger,
	}
}

// AttachToParent привязывает ребенка к размещению родителя без отдельной кровати
// Отдельное размещение ребенка и другие его привязки удаляются
func (m *Manager) AttachToParent(ctx context.Context, placementID, childRegistrationID int64) (*domain.ChildAttachment, error) {
	child, err := m.getChild(ctx, childRegistrationID)
	if err != nil {
		return nil, err
	}

	parent, err := m.ledger.GetByID(ctx, placementID)
	if err != nil {
		if errors.Is(err, ledger.ErrPlacementNotFound) {
			return nil, ErrPlacementNotFound
		}
		return nil, fmt.Errorf("%w: AttachToParent - get placement: %w", ErrInternal, err)
	}
	if parent.IsChild() {
		return nil, ErrInvalidParent
	}

	if err := m.deleteChildPlacements(ctx, childRegistrationID); err != nil {
		return nil, err
	}

	if _, err := m.attachments.DeleteByChild(ctx, childRegistrationID); err != nil {
		return nil, fmt.Errorf("%w: AttachToParent - delete attachments: %w", ErrInternal, err)
	}

	attachment, err := m.attachments.Create(ctx, &domain.ChildAttachment{
		PlacementID:         placementID,
		ChildRegistrationID: childRegistrationID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: AttachToParent - create attachment: %w", ErrInternal, err)
	}

	if err := m.setFlag(ctx, child, false); err != nil {
		return nil, err
	}

	m.logger.Info("AttachToParent: child=%d attached to placement id=%d", childRegistrationID, placementID)
	return attachment, nil
}

// DetachFromParent отвязывает всех детей от размещения
func (m *Manager) DetachFromParent(ctx context.Context, placementID int64) error {
	deleted, err := m.attachments.DeleteByPlacement(ctx, placementID)
	if err != nil {
		return fmt.Errorf("%w: DetachFromParent - placement id=%d: %w", ErrInternal, placementID, err)
	}

	if deleted > 0 {
		m.logger.Info("DetachFromParent: %d children detached from placement id=%d", deleted, placementID)
	}
	return nil
}

// EnsureSeparatePlacement обеспечивает ребенку отдельную кровать в комнате родителя
// Идемпотентна: уже существующее размещение ребенка у другого родителя возвращается без изменений,
// как и размещение у этого же родителя с тем же интервалом и комнатой.
// Размещение этого родителя с другим интервалом или комнатой проверяется заново: свой слот
// сохраняется, если он свободен, иначе выбирается первый свободный
func (m *Manager) EnsureSeparatePlacement(ctx context.Context, req EnsureRequest) (*domain.Placement, error) {
	child, err := m.getChild(ctx, req.ChildRegistrationID)
	if err != nil {
		return nil, err
	}

	existing, err := m.findChildPlacement(ctx, req.ChildRegistrationID)
	if err != nil {
		return nil, err
	}

	var placement *domain.Placement
	switch {
	case existing != nil && !existing.BelongsTo(req.ParentPlacementID):
		// чужая комната не заблокирована текущей транзакцией, размещение не трогаем
		m.logger.Info("EnsureSeparatePlacement: child=%d already has placement id=%d under parent placement id=%d",
			req.ChildRegistrationID, existing.ID, parentOf(existing))
		placement = existing

	case existing != nil && existing.RoomID == req.RoomID && existing.Interval().Equal(req.Interval):
		placement = existing

	case existing != nil:
		placement, err = m.moveChildPlacement(ctx, existing, req)

	default:
		placement, err = m.createChildPlacement(ctx, child, req)
	}
	if err != nil {
		return nil, err
	}

	if _, err := m.attachments.DeleteByChild(ctx, req.ChildRegistrationID); err != nil {
		return nil, fmt.Errorf("%w: EnsureSeparatePlacement - delete attachments: %w", ErrInternal, err)
	}

	if err := m.setFlag(ctx, child, true); err != nil {
		return nil, err
	}

	return placement, nil
}

// ReleaseSeparatePlacement удаляет отдельное размещение ребенка и снимает флаг
// Отсутствующая регистрация не ошибка: размещение все равно удаляется
func (m *Manager) ReleaseSeparatePlacement(ctx context.Context, childRegistrationID int64) error {
	if err := m.deleteChildPlacements(ctx, childRegistrationID); err != nil {
		return err
	}

	child, err := m.getChild(ctx, childRegistrationID)
	if errors.Is(err, ErrChildNotFound) {
		m.logger.Warn("ReleaseSeparatePlacement: child registration id=%d not found, flag not updated", childRegistrationID)
		return nil
	}
	if err != nil {
		return err
	}

	return m.setFlag(ctx, child, false)
}

// Roster дети, зарегистрированные пользователем на активный фестиваль, по способу размещения
func (m *Manager) Roster(ctx context.Context, userID int64) (*Roster, error) {
	festival, err := m.festivals.GetActive(ctx)
	if err != nil {
		if errors.Is(err, festivalRepo.ErrFestivalNotFound) {
			return nil, ErrFestivalNotFound
		}
		return nil, fmt.Errorf("%w: Roster - get festival: %w", ErrInternal, err)
	}

	registered, err := m.registrations.ListByParentUser(ctx, userID, festival.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: Roster - list children: %w", ErrInternal, err)
	}

	roster := &Roster{
		FestivalID:  festival.ID,
		WithParent:  []RosterEntry{},
		SeparateBed: []RosterEntry{},
		Unplaced:    []RosterEntry{},
	}
	if len(registered) == 0 {
		return roster, nil
	}

	childIDs := make([]int64, 0, len(registered))
	userIDs := make([]int64, 0, len(registered))
	for _, c := range registered {
		childIDs = append(childIDs, c.ID)
		userIDs = append(userIDs, c.ChildUserID)
	}

	users, err := m.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Roster - list users: %w", ErrInternal, err)
	}
	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	attachments, err := m.attachments.ListByChildRegistrationIDs(ctx, childIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: Roster - list attachments: %w", ErrInternal, err)
	}
	attachedTo := make(map[int64]int64, len(attachments))
	parentIDs := make([]int64, 0, len(attachments))
	for _, a := range attachments {
		attachedTo[a.ChildRegistrationID] = a.PlacementID
		parentIDs = append(parentIDs, a.PlacementID)
	}

	parents := map[int64]*domain.Placement{}
	if len(parentIDs) > 0 {
		list, err := m.ledger.List(ctx, domain.PlacementFilter{IDs: parentIDs})
		if err != nil {
			return nil, fmt.Errorf("%w: Roster - list parent placements: %w", ErrInternal, err)
		}
		for _, p := range list {
			parents[p.ID] = p
		}
	}

	rooms := map[int64]*domain.Room{}
	roomOf := func(roomID int64) (*domain.Room, error) {
		if room, ok := rooms[roomID]; ok {
			return room, nil
		}
		room, err := m.rooms.GetByID(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("%w: Roster - get room %d: %w", ErrInternal, roomID, err)
		}
		rooms[roomID] = room
		return room, nil
	}

	for _, c := range registered {
		entry := RosterEntry{Child: c, ChildUser: usersByID[c.ChildUserID]}

		own, err := m.findChildPlacement(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		switch {
		case own != nil:
			entry.Placement = own
			if entry.Room, err = roomOf(own.RoomID); err != nil {
				return nil, err
			}
			roster.SeparateBed = append(roster.SeparateBed, entry)

		case parents[attachedTo[c.ID]] != nil:
			entry.Placement = parents[attachedTo[c.ID]]
			if entry.Room, err = roomOf(entry.Placement.RoomID); err != nil {
				return nil, err
			}
			roster.WithParent = append(roster.WithParent, entry)

		default:
			roster.Unplaced = append(roster.Unplaced, entry)
		}
	}

	return roster, nil
}

func (m *Manager) createChildPlacement(ctx context.Context, child *domain.ChildRegistration, req EnsureRequest) (*domain.Placement, error) {
	room, err := m.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	slot, err := m.pickSlot(ctx, room, req, nil)
	if err != nil {
		return nil, err
	}

	created, err := m.ledger.Create(ctx, &domain.Placement{
		RoomID:              room.ID,
		Slot:                slot,
		ManagerID:           req.ManagerID,
		OccupantID:          child.ChildUserID,
		Status:              domain.StatusChild,
		DateFrom:            req.Interval.From,
		DateTo:              req.Interval.To,
		Note:                domain.ChildNotePrefix + req.ParentName,
		ParentPlacementID:   ptr.Ptr(req.ParentPlacementID),
		ChildRegistrationID: ptr.Ptr(child.ID),
	})
	if err != nil {
		return nil, m.ledgerError("createChildPlacement", err)
	}

	m.logger.Info("EnsureSeparatePlacement: child=%d placed in room_id=%d slot=%d", child.ID, room.ID, slot)
	return created, nil
}

func (m *Manager) moveChildPlacement(ctx context.Context, existing *domain.Placement, req EnsureRequest) (*domain.Placement, error) {
	room, err := m.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	var keep *int
	if existing.RoomID == room.ID {
		keep = &existing.Slot
	}

	slot, err := m.pickSlot(ctx, room, req, keep, existing.ID)
	if err != nil {
		return nil, err
	}

	iv := req.Interval
	updated, err := m.ledger.Update(ctx, existing.ID, domain.PlacementPatch{
		RoomID:   &room.ID,
		Slot:     &slot,
		Note:     ptr.Ptr(domain.ChildNotePrefix + req.ParentName),
		Interval: &iv,

		ParentPlacementID: ptr.Ptr(req.ParentPlacementID),
	})
	if err != nil {
		return nil, m.ledgerError("moveChildPlacement", err)
	}

	m.logger.Info("EnsureSeparatePlacement: child placement id=%d rechecked, room_id=%d slot=%d",
		existing.ID, room.ID, slot)
	return updated, nil
}

// pickSlot первый свободный слот; keep - текущий слот, который сохраняется, если свободен
func (m *Manager) pickSlot(ctx context.Context, room *domain.Room, req EnsureRequest, keep *int, excludeIDs ...int64) (int, error) {
	occupied, err := m.index.OccupiedSlots(ctx, room.ID, req.Interval, excludeIDs...)
	if err != nil {
		return 0, fmt.Errorf("%w: pickSlot - occupied slots: %w", ErrInternal, err)
	}
	occupied.Add(req.ReservedSlots...)

	if keep != nil && room.HasSlot(*keep) && !occupied.Has(*keep) {
		return *keep, nil
	}

	slot, ok := domain.NextFreeSlot(room.Capacity, occupied)
	if !ok {
		m.logger.Warn("pickSlot: no free slot in room_id=%d for child=%d (capacity %d)",
			room.ID, req.ChildRegistrationID, room.Capacity)
		return 0, ErrNoFreeSlot
	}
	return slot, nil
}

func (m *Manager) findChildPlacement(ctx context.Context, childRegistrationID int64) (*domain.Placement, error) {
	placements, err := m.ledger.List(ctx, domain.PlacementFilter{ChildRegistrationID: &childRegistrationID})
	if err != nil {
		return nil, fmt.Errorf("%w: findChildPlacement - child=%d: %w", ErrInternal, childRegistrationID, err)
	}
	if len(placements) == 0 {
		return nil, nil
	}
	return placements[0], nil
}

func (m *Manager) deleteChildPlacements(ctx context.Context, childRegistrationID int64) error {
	placements, err := m.ledger.List(ctx, domain.PlacementFilter{ChildRegistrationID: &childRegistrationID})
	if err != nil {
		return fmt.Errorf("%w: deleteChildPlacements - child=%d: %w", ErrInternal, childRegistrationID, err)
	}

	for _, p := range placements {
		if err := m.ledger.Delete(ctx, p.ID); err != nil && !errors.Is(err, ledger.ErrPlacementNotFound) {
			return fmt.Errorf("%w: deleteChildPlacements - placement id=%d: %w", ErrInternal, p.ID, err)
		}
		m.logger.Info("ReleaseSeparatePlacement: child placement id=%d released (child=%d)", p.ID, childRegistrationID)
	}

	return nil
}

func (m *Manager) getChild(ctx context.Context, id int64) (*domain.ChildRegistration, error) {
	child, err := m.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("%w: get child registration id=%d: %w", ErrInternal, id, err)
	}
	return child, nil
}

func (m *Manager) getRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := m.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: get room id=%d: %w", ErrInternal, id, err)
	}
	return room, nil
}

func (m *Manager) setFlag(ctx context.Context, child *domain.ChildRegistration, value bool) error {
	if child.NeedsSeparateBed == value {
		return nil
	}

	if err := m.registrations.SetNeedsSeparateBed(ctx, child.ID, value); err != nil {
		if errors.Is(err, registrationRepo.ErrChildNotFound) {
			return ErrChildNotFound
		}
		return fmt.Errorf("%w: set needsSeparateBed for child=%d: %w", ErrInternal, child.ID, err)
	}

	child.NeedsSeparateBed = value
	return nil
}

func (m *Manager) ledgerError(op string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, ledger.ErrOccupantNotFound):
		return fmt.Errorf("%w: child user is missing", ErrChildNotFound)
	case errors.Is(err, ledger.ErrSlotOccupied):
		return ErrNoFreeSlot
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

func parentOf(p *domain.Placement) int64 {
	if p.ParentPlacementID == nil {
		return 0
	}
	return *p.ParentPlacementID
}
