package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// UserRole represents the roles issued by the account service.
type UserRole string

const (
	RoleStudent      UserRole = "STUDENT"
	RoleStaff        UserRole = "STAFF"
	RoleTA           UserRole = "TA"
	RoleProfessor    UserRole = "PROFESSOR"
	RoleAdmin        UserRole = "ADMIN"
	RoleEventsOffice UserRole = "EVENTS_OFFICE"
	RoleVendor       UserRole = "VENDOR"
)

// User is read from the users table owned by the account service.
// ReservedCourts is a convenience back-reference; reservations are authoritative.
type User struct {
	ID             string         `db:"id" json:"id"`
	Email          string         `db:"email" json:"email"`
	FirstName      string         `db:"first_name" json:"firstName"`
	LastName       string         `db:"last_name" json:"lastName"`
	GucID          *string        `db:"guc_id" json:"gucId,omitempty"`
	Role           UserRole       `db:"role" json:"role"`
	Verified       bool           `db:"verified" json:"verified"`
	ReservedCourts pq.StringArray `db:"reserved_courts" json:"reservedCourts"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// FullName joins the name parts, skipping empty ones.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// Snapshot captures the student fields embedded in a reservation.
func (u *User) Snapshot() StudentSnapshot {
	snap := StudentSnapshot{StudentName: u.FullName()}
	if u.GucID != nil {
		snap.StudentGucID = *u.GucID
	}
	return snap
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
