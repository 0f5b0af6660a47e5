package workspace

import (
	"encoding/json"
	"time"

	"sprintboard/internal/models/user"
)

type Workspace struct {
	ID             int64          `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Slug           string         `json:"slug" db:"slug"`
	IsOwner        bool           `json:"is_owner" db:"-"`
	SprintEnabled  bool           `json:"sprint_enabled" db:"sprint_enabled"`
	SprintDuration SprintDuration `json:"sprint_duration" db:"sprint_duration"`
	MembersCount   int            `json:"members_count,omitempty" db:"-"`
	OwnerID        int64          `json:"-" db:"owner_id"`
	Owner          *user.User     `json:"owner,omitempty" db:"-"`
	Members        []Member       `json:"members,omitempty" db:"-"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Member is a user seen through the workspace membership pivot.
type Member struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type Role string

const RoleOwner Role = "owner"
const RoleGuest Role = "guest"

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleGuest
}

// SprintDuration is the sprint length policy of a workspace. The empty value means sprints are off
// and is encoded as JSON null.
type SprintDuration string

const DurationNone SprintDuration = ""
const DurationWeekly SprintDuration = "weekly"
const DurationBiweekly SprintDuration = "biweekly"

// Days returns the sprint length, 0 for no duration or an unknown value.
func (d SprintDuration) Days() int {
	switch d {
	case DurationWeekly:
		return 7
	case DurationBiweekly:
		return 14
	default:
		return 0
	}
}

func (d SprintDuration) Valid() bool {
	return d == DurationWeekly || d == DurationBiweekly
}

func (d SprintDuration) MarshalJSON() ([]byte, error) {
	if d == DurationNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *SprintDuration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DurationNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = SprintDuration(s)
	return nil
}

// IsEternal reports whether the workspace runs one continuous sprint with no end date.
func (w *Workspace) IsEternal() bool {
	return w.SprintDuration == DurationNone
}

func (w *Workspace) MemberByID(id int64) (Member, bool) {
	for _, m := range w.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

type CreateInput struct {
	Name           string         `json:"name" validate:"required,max=255"`
	SprintEnabled  bool           `json:"sprint_enabled"`
	SprintDuration SprintDuration `json:"sprint_duration"`
}

// UpdateInput is a partial workspace update; nil fields stay untouched.
type UpdateInput struct {
	Name           *string         `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	SprintEnabled  *bool           `json:"sprint_enabled,omitempty"`
	SprintDuration *SprintDuration `json:"sprint_duration,omitempty"`
}

// Apply merges the update into a copy of the policy fields of w.
func (in UpdateInput) Apply(w Workspace) Workspace {
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.SprintEnabled != nil {
		w.SprintEnabled = *in.SprintEnabled
		if !w.SprintEnabled && in.SprintDuration == nil {
			w.SprintDuration = DurationNone
		}
	}
	if in.SprintDuration != nil {
		w.SprintDuration = *in.SprintDuration
	}
	return w
}

type AddMemberInput struct {
	Email string `json:"email" validate:"required,email"`
}
