package domain

import "time"

type Team struct {
	ID          string
	Name        string
	Slug        string // URL-friendly, unique
	Description string
	CreatedBy   string // user who created the team; always holds the owner membership
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamPatch carries a partial team update. Nil fields are left unchanged; a
// patch with no fields set is rejected before it reaches the store.
type TeamPatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch would change nothing.
func (p TeamPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// Apply copies the set fields onto t. The slug is untouched: renaming a team
// never changes its URL.
func (p TeamPatch) Apply(t *Team) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
}

type TeamMember struct {
	TeamID    string
	UserID    string
	Role      TeamRole
	CreatedAt time.Time
}

// TeamInfo is the team shape returned to members, including the caller's own
// role and the current member count.
type TeamInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
}

// TeamMemberInfo is a membership row joined with the member's public details.
type TeamMemberInfo struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
