package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance status values
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
)

// AttendanceStatuses lists every valid attendance status.
var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
}

// IsValidAttendanceStatus reports whether status is a declared value.
func IsValidAttendanceStatus(status string) bool {
	for _, s := range AttendanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AttendanceRecord is a per-member, per-date presence status. Exactly one
// row exists per (member, date); re-marking a date overwrites in place.
type AttendanceRecord struct {
	gorm.Model

	MemberID uint      `gorm:"not null;uniqueIndex:idx_attendance_member_date" json:"member_id"`
	Date     time.Time `gorm:"not null;type:date;uniqueIndex:idx_attendance_member_date" json:"date"`
	Status   string    `gorm:"not null;default:'Absent'" json:"status"`

	// Relations
	Member User `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// IsPresent reports whether the record marks the member present.
func (r *AttendanceRecord) IsPresent() bool {
	return r.Status == AttendancePresent
}
