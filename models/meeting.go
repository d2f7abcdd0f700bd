package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting is a scheduled event owned by an organizer. Attendance is kept
// as per-user join records rather than a plain attendee set so the system
// retains who was marked present and by whom.
type Meeting struct {
	gorm.Model

	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	OrganizerID     uint      `gorm:"not null;index" json:"organizer_id"`
	ScheduledAt     time.Time `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int       `gorm:"default:60" json:"duration_minutes"`
	Location        string    `json:"location"`
	MeetingURL      string    `json:"meeting_url"`

	// Relations
	Organizer  User                `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Attendance []MeetingAttendance `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"attendance,omitempty"`
}

// MeetingAttendance records one user's presence at one meeting. One row
// per (meeting, user); marking again flips the flag in place.
type MeetingAttendance struct {
	gorm.Model

	MeetingID  uint  `gorm:"not null;uniqueIndex:idx_meeting_attendance" json:"meeting_id"`
	UserID     uint  `gorm:"not null;uniqueIndex:idx_meeting_attendance" json:"user_id"`
	Present    bool  `gorm:"default:false" json:"present"`
	MarkedByID *uint `json:"marked_by_id,omitempty"`

	// Relations
	Meeting  Meeting `json:"-"`
	User     User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MarkedBy *User   `gorm:"foreignKey:MarkedByID" json:"marked_by,omitempty"`
}
