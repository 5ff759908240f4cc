// Package memstore хранилище в памяти для тестов сервисов и use case.
// Повторяет контракты репозиториев infra/storage, включая их ошибки,
// ограничения схемы (пересечение интервалов в слоте, каскады) и откат транзакции.
package memstore

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/FestAccommodationService/internal/domain"
	festivalRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/festival"
	placementRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/placement"
	registrationRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/registration"
	roomRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/room"
	userRepo "github.com/m04kA/FestAccommodationService/internal/infra/storage/user"
)

// ErrDuplicateChildPlacement уникальность child_registration_id у размещений
var ErrDuplicateChildPlacement = errors.New("memstore: child registration already has a placement")

type registration struct {
	userID     int64
	festivalID int64
}

type state struct {
	rooms         map[int64]domain.Room
	placements    map[int64]domain.Placement
	attachments   map[int64]domain.ChildAttachment
	children      map[int64]domain.ChildRegistration
	registrations map[int64]registration
	users         map[int64]domain.User
	festival      *domain.Festival
	nextID        int64
}

func (s *state) clone() *state {
	c := &state{
		rooms:         make(map[int64]domain.Room, len(s.rooms)),
		placements:    make(map[int64]domain.Placement, len(s.placements)),
		attachments:   make(map[int64]domain.ChildAttachment, len(s.attachments)),
		children:      make(map[int64]domain.ChildRegistration, len(s.children)),
		registrations: make(map[int64]registration, len(s.registrations)),
		users:         make(map[int64]domain.User, len(s.users)),
		festival:      s.festival,
		nextID:        s.nextID,
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.placements {
		c.placements[k] = v
	}
	for k, v := range s.attachments {
		c.attachments[k] = v
	}
	for k, v := range s.children {
		c.children[k] = v
	}
	for k, v := range s.registrations {
		c.registrations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store общее состояние всех таблиц
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state *state

	now func() time.Time
}

func New() *Store {
	return &Store{
		state: &state{
			rooms:         map[int64]domain.Room{},
			placements:    map[int64]domain.Placement{},
			attachments:   map[int64]domain.ChildAttachment{},
			children:      map[int64]domain.ChildRegistration{},
			registrations: map[int64]registration{},
			users:         map[int64]domain.User{},
			nextID:        1000,
		},
		now: time.Now,
	}
}

func (s *Store) Placements() *Placements       { return &Placements{s: s} }
func (s *Store) Rooms() *Rooms                 { return &Rooms{s: s} }
func (s *Store) Attachments() *Attachments     { return &Attachments{s: s} }
func (s *Store) Registrations() *Registrations { return &Registrations{s: s} }
func (s *Store) Users() *Users                 { return &Users{s: s} }
func (s *Store) Festivals() *Festivals         { return &Festivals{s: s} }
func (s *Store) TxManager() *TxManager         { return &TxManager{s: s} }

func (s *Store) id() int64 {
	s.state.nextID++
	return s.state.nextID
}

// --- fixtures ---

func (s *Store) AddRoom(room domain.Room) *domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room.ID == 0 {
		room.ID = s.id()
	}
	s.state.rooms[room.ID] = room
	return &room
}

func (s *Store) AddUser(u domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.state.users[u.ID] = u
	return &u
}

// AddChild регистрирует ребенка пользователя parentUserID на фестиваль
func (s *Store) AddChild(parentUserID, festivalID int64, child domain.ChildRegistration) *domain.ChildRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if child.RegistrationID == 0 {
		child.RegistrationID = s.id()
	}
	s.state.registrations[child.RegistrationID] = registration{userID: parentUserID, festivalID: festivalID}
	if child.ID == 0 {
		child.ID = s.id()
	}
	s.state.children[child.ID] = child
	return &child
}

func (s *Store) SetFestival(f *domain.Festival) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.festival = f
}

// AllPlacements снимок таблицы размещений, отсортированный по ID
func (s *Store) AllPlacements() []*domain.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Placement, 0, len(s.state.placements))
	for _, p := range s.state.placements {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllAttachments снимок таблицы привязок детей
func (s *Store) AllAttachments() []*domain.ChildAttachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ChildAttachment, 0, len(s.state.attachments))
	for _, a := range s.state.attachments {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Child текущее состояние регистрации ребенка
func (s *Store) Child(id int64) *domain.ChildRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.children[id]
	if !ok {
		return nil
	}
	return &c
}

// --- placements ---

type Placements struct{ s *Store }

func (r *Placements) Create(_ context.Context, p *domain.Placement) (*domain.Placement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkPlacement(p); err != nil {
		return nil, err
	}

	created := *p
	created.ID = r.s.id()
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.state.placements[created.ID] = created

	p.ID, p.CreatedAt, p.UpdatedAt = created.ID, created.CreatedAt, created.UpdatedAt
	return p, nil
}

func (r *Placements) GetByID(_ context.Context, id int64) (*domain.Placement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.state.placements[id]
	if !ok {
		return nil, placementRepo.ErrPlacementNotFound
	}
	return &p, nil
}

func (r *Placements) Update(_ context.Context, p *domain.Placement) (*domain.Placement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.state.placements[p.ID]
	if !ok {
		return nil, placementRepo.ErrPlacementNotFound
	}
	if err := r.s.checkPlacement(p); err != nil {
		return nil, err
	}

	updated := *p
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.state.placements[p.ID] = updated

	p.CreatedAt, p.UpdatedAt = updated.CreatedAt, updated.UpdatedAt
	return p, nil
}

// Delete каскадно удаляет привязки детей и обнуляет parent_placement_id у детских размещений
func (r *Placements) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.placements[id]; !ok {
		return placementRepo.ErrPlacementNotFound
	}
	delete(r.s.state.placements, id)

	for aid, a := range r.s.state.attachments {
		if a.PlacementID == id {
			delete(r.s.state.attachments, aid)
		}
	}
	for pid, p := range r.s.state.placements {
		if p.BelongsTo(id) {
			p.ParentPlacementID = nil
			r.s.state.placements[pid] = p
		}
	}
	return nil
}

func (r *Placements) List(_ context.Context, filter domain.PlacementFilter) ([]*domain.Placement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Placement, 0)
	for _, p := range r.s.state.placements {
		if filter.Matches(&p) {
			p := p
			out = append(out, &p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := compareNullsLast(a.DateFrom, b.DateFrom); c != 0 {
			return c < 0
		}
		if c := compareNullsLast(a.DateTo, b.DateTo); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *Placements) FindOverlapping(_ context.Context, q domain.OverlapQuery) ([]*domain.Placement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Placement, 0)
	for _, p := range r.s.state.placements {
		if q.Matches(&p) {
			p := p
			out = append(out, &p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].DateFrom.Before(*out[j].DateFrom)
	})
	return out, nil
}

// LockRoom транзакции memstore и так выполняются последовательно
func (r *Placements) LockRoom(_ context.Context, _ int64) error {
	return nil
}

// checkPlacement ограничения схемы fest_placements
func (s *Store) checkPlacement(p *domain.Placement) error {
	for _, other := range s.state.placements {
		if other.ID == p.ID {
			continue
		}
		if other.RoomID == p.RoomID && other.Slot == p.Slot && other.Interval().Overlaps(p.Interval()) {
			return placementRepo.ErrSlotConflict
		}
		if p.ChildRegistrationID != nil && other.ChildRegistrationID != nil &&
			*p.ChildRegistrationID == *other.ChildRegistrationID {
			return ErrDuplicateChildPlacement
		}
	}
	return nil
}

func compareNullsLast(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

// --- rooms ---

type Rooms struct{ s *Store }

func (r *Rooms) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.state.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *Rooms) List(_ context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Room, 0)
	for _, room := range r.s.state.rooms {
		if filter.Building != nil && room.Building != *filter.Building {
			continue
		}
		if filter.Floor != nil && room.Floor != *filter.Floor {
			continue
		}
		if filter.Number != nil && room.Number != *filter.Number {
			continue
		}
		if len(filter.Buildings) > 0 && !slices.Contains(filter.Buildings, room.Building) {
			continue
		}
		room := room
		out = append(out, &room)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Building != b.Building {
			return a.Building < b.Building
		}
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.Number < b.Number
	})
	return out, nil
}

func (r *Rooms) Update(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.rooms[room.ID]; !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	for id, other := range r.s.state.rooms {
		if id != room.ID && other.Building == room.Building && other.Floor == room.Floor && other.Number == room.Number {
			return nil, roomRepo.ErrRoomExists
		}
	}
	r.s.state.rooms[room.ID] = *room
	return room, nil
}

func (r *Rooms) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.rooms[id]; !ok {
		return roomRepo.ErrRoomNotFound
	}
	for _, p := range r.s.state.placements {
		if p.RoomID == id {
			return roomRepo.ErrRoomInUse
		}
	}
	delete(r.s.state.rooms, id)
	return nil
}

// --- attachments ---

type Attachments struct{ s *Store }

func (r *Attachments) Create(_ context.Context, a *domain.ChildAttachment) (*domain.ChildAttachment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.state.placements[a.PlacementID]; !ok {
		return nil, placementRepo.ErrPlacementNotFound
	}
	for _, other := range r.s.state.attachments {
		if other.PlacementID == a.PlacementID && other.ChildRegistrationID == a.ChildRegistrationID {
			return nil, errors.New("memstore: child already attached to placement")
		}
	}

	a.ID = r.s.id()
	a.CreatedAt = r.s.now()
	r.s.state.attachments[a.ID] = *a
	return a, nil
}

func (r *Attachments) ListByPlacementIDs(_ context.Context, placementIDs []int64) ([]*domain.ChildAttachment, error) {
	return r.list(func(a domain.ChildAttachment) bool { return slices.Contains(placementIDs, a.PlacementID) }), nil
}

func (r *Attachments) ListByChildRegistrationIDs(_ context.Context, childIDs []int64) ([]*domain.ChildAttachment, error) {
	return r.list(func(a domain.ChildAttachment) bool { return slices.Contains(childIDs, a.ChildRegistrationID) }), nil
}

func (r *Attachments) DeleteByPlacement(_ context.Context, placementID int64) (int64, error) {
	return r.delete(func(a domain.ChildAttachment) bool { return a.PlacementID == placementID }), nil
}

func (r *Attachments) DeleteByChild(_ context.Context, childRegistrationID int64) (int64, error) {
	return r.delete(func(a domain.ChildAttachment) bool { return a.ChildRegistrationID == childRegistrationID }), nil
}

func (r *Attachments) list(match func(domain.ChildAttachment) bool) []*domain.ChildAttachment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.ChildAttachment, 0)
	for _, a := range r.s.state.attachments {
		if match(a) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Attachments) delete(match func(domain.ChildAttachment) bool) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var deleted int64
	for id, a := range r.s.state.attachments {
		if match(a) {
			delete(r.s.state.attachments, id)
			deleted++
		}
	}
	return deleted
}

// --- registrations ---

type Registrations struct{ s *Store }

func (r *Registrations) GetByID(_ context.Context, id int64) (*domain.ChildRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.state.children[id]
	if !ok {
		return nil, registrationRepo.ErrChildNotFound
	}
	return &c, nil
}

func (r *Registrations) ListByIDs(_ context.Context, ids []int64) ([]*domain.ChildRegistration, error) {
	return r.list(func(c domain.ChildRegistration) bool { return slices.Contains(ids, c.ID) }), nil
}

func (r *Registrations) ListByParentUser(_ context.Context, userID, festivalID int64) ([]*domain.ChildRegistration, error) {
	r.s.mu.Lock()
	regs := make(map[int64]registration, len(r.s.state.registrations))
	for k, v := range r.s.state.registrations {
		regs[k] = v
	}
	r.s.mu.Unlock()

	return r.list(func(c domain.ChildRegistration) bool {
		reg, ok := regs[c.RegistrationID]
		return ok && reg.userID == userID && reg.festivalID == festivalID
	}), nil
}

func (r *Registrations) SetNeedsSeparateBed(_ context.Context, id int64, value bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.state.children[id]
	if !ok {
		return registrationRepo.ErrChildNotFound
	}
	c.NeedsSeparateBed = value
	r.s.state.children[id] = c
	return nil
}

func (r *Registrations) list(match func(domain.ChildRegistration) bool) []*domain.ChildRegistration {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.ChildRegistration, 0)
	for _, c := range r.s.state.children {
		if match(c) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- users ---

type Users struct{ s *Store }

func (r *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.state.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

func (r *Users) ListByIDs(_ context.Context, ids []int64) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.User, 0, len(ids))
	for _, u := range r.s.state.users {
		if slices.Contains(ids, u.ID) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- festivals ---

type Festivals struct{ s *Store }

func (r *Festivals) GetActive(_ context.Context) (*domain.Festival, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.state.festival == nil || !r.s.state.festival.IsActive {
		return nil, festivalRepo.ErrFestivalNotFound
	}
	f := *r.s.state.festival
	return &f, nil
}

// --- transactions ---

// TxManager транзакции поверх снимка состояния: при ошибке fn состояние откатывается
type TxManager struct {
	s     *Store
	calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Calls число выполненных транзакций
func (m *TxManager) Calls() int {
	return m.calls
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	m.calls++

	m.s.mu.Lock()
	snapshot := m.s.state.clone()
	m.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.s.mu.Lock()
		m.s.state = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}
