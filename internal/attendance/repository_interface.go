package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, memberID int, checkedInAt time.Time) (*Attendance, error)
	ListByMember(ctx context.Context, memberID int) ([]Attendance, error)
	ListForDay(ctx context.Context, day time.Time) ([]AttendanceWithMember, error)
	CountByDay(ctx context.Context, from, to time.Time) ([]CheckinsByDay, error)
}
