package domain

import (
	"fmt"
	"time"
)

// User occupant or manager (owned by the user subsystem)
type User struct {
	ID            int64
	FullName      string
	SpiritualName string
	Email         string
}

// DisplayName имя для заметок: ФИО, иначе (духовное имя), иначе ID:n
func (u *User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.SpiritualName != "":
		return fmt.Sprintf("(%s)", u.SpiritualName)
	default:
		return fmt.Sprintf("ID:%d", u.ID)
	}
}

// Festival активный фестиваль (только поля, нужные размещению)
type Festival struct {
	ID                 int64
	StartDate          *time.Time
	EndDate            *time.Time
	AvailableBuildings []int
	IsActive           bool
}
