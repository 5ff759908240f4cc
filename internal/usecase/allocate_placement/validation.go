package allocate_placement

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/FestAccommodationService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: manager is required", ErrInvalidInput)
	}

	if !req.IsEdit() {
		if req.RoomID == nil || req.Slot == nil || req.OccupantID == nil {
			return fmt.Errorf("%w: roomId, slot and occupantId are required", ErrInvalidInput)
		}
	} else if *req.PlacementID <= 0 {
		return fmt.Errorf("%w: invalid placement id", ErrInvalidInput)
	}

	if req.Slot != nil && *req.Slot < 1 {
		return fmt.Errorf("%w: slot must be positive", ErrInvalidSlot)
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		if *req.Status == domain.StatusChild {
			return fmt.Errorf("%w: child placements are created from the children list", ErrInvalidInput)
		}
	}

	if req.DateFrom.Value != nil && req.DateTo.Value != nil && req.DateTo.Value.Before(*req.DateFrom.Value) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	seen := make(map[int64]struct{}, len(req.Children))
	for _, c := range req.Children {
		if c.ChildRegistrationID <= 0 {
			return fmt.Errorf("%w: invalid child registration id", ErrInvalidInput)
		}
		if _, ok := seen[c.ChildRegistrationID]; ok {
			return fmt.Errorf("%w: child %d is listed twice", ErrInvalidInput, c.ChildRegistrationID)
		}
		seen[c.ChildRegistrationID] = struct{}{}
	}

	return nil
}

// partitionChildren делит выбранных детей на живущих с родителем и с отдельной кроватью
func partitionChildren(list []ChildRequest) (withParent, separateBed []int64) {
	for _, c := range list {
		if !c.Selected {
			continue
		}
		if c.WantsSeparateBed {
			separateBed = append(separateBed, c.ChildRegistrationID)
		} else {
			withParent = append(withParent, c.ChildRegistrationID)
		}
	}
	return withParent, separateBed
}
