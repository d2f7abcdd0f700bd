package models

import (
	"gorm.io/gorm"
)

// Team values a user (or task) can belong to. PROJECT_MANAGER doubles as
// the elevated role for task, attendance and meeting administration.
const (
	TeamProjectManager    = "PROJECT_MANAGER"
	TeamDesign            = "DESIGN"
	TeamTech              = "TECH"
	TeamProductManagement = "PRODUCT_MANAGEMENT"
	TeamMarketing         = "MARKETING"
)

// Teams lists every valid team value.
var Teams = []string{
	TeamProjectManager,
	TeamDesign,
	TeamTech,
	TeamProductManagement,
	TeamMarketing,
}

// IsValidTeam reports whether team is one of the declared team values.
func IsValidTeam(team string) bool {
	for _, t := range Teams {
		if t == team {
			return true
		}
	}
	return false
}

// User represents a member account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile information
	Name string `gorm:"not null" json:"name"`
	Team string `gorm:"not null;default:'TECH'" json:"team"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsStaff  bool `gorm:"default:false" json:"is_staff"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	// Relations
	Tasks         []Task             `gorm:"foreignKey:AssignedToID" json:"tasks,omitempty"`
	AssignedTasks []Task             `gorm:"foreignKey:AssignedByID" json:"assigned_tasks,omitempty"`
	Notifications []Notification     `gorm:"foreignKey:RecipientID" json:"notifications,omitempty"`
	Attendance    []AttendanceRecord `gorm:"foreignKey:MemberID" json:"attendance,omitempty"`
}

// IsProjectManager reports whether the user carries the elevated role.
// Both role variants observed in deployments count: membership in the
// PROJECT_MANAGER team, or an explicit admin flag.
func (u *User) IsProjectManager() bool {
	return u.Team == TeamProjectManager || u.IsAdmin
}
