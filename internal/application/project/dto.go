package project

import (
	"time"

	"github.com/shopspring/decimal"
	appdirectory "github.com/workhub/backend/internal/application/directory"
	"github.com/workhub/backend/internal/domain/project"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=300"`
	Description string           `json:"description"`
	Status      string           `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	Priority    string           `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	StartsOn    *time.Time       `json:"starts_on"`
	EndsOn      *time.Time       `json:"ends_on"`
	Budget      *decimal.Decimal `json:"budget"`
	OwnerID     *uint            `json:"owner_id"`
	ClientID    *uint            `json:"client_id"`
	IsPublic    bool             `json:"is_public"`
	MemberIDs   []uint           `json:"member_ids"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=300"`
	Description *string          `json:"description"`
	Status      *string          `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	Priority    *string          `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	StartsOn    *time.Time       `json:"starts_on"`
	EndsOn      *time.Time       `json:"ends_on"`
	Budget      *decimal.Decimal `json:"budget"`
	ClearBudget bool             `json:"clear_budget"`
	ClientID    *uint            `json:"client_id"`
	ClearClient bool             `json:"clear_client"`
	IsPublic    *bool            `json:"is_public"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uint                `json:"id"`
	TenantID    string              `json:"tenant_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	StartsOn    *time.Time          `json:"starts_on,omitempty"`
	EndsOn      *time.Time          `json:"ends_on,omitempty"`
	Budget      *decimal.Decimal    `json:"budget,omitempty"`
	OwnerID     *uint               `json:"owner_id,omitempty"`
	ClientID    *uint               `json:"client_id,omitempty"`
	IsPublic    bool                `json:"is_public"`
	IsArchived  bool                `json:"is_archived"`
	Members     []MemberResponse    `json:"members,omitempty"`
	Links       *LinkCountsResponse `json:"links,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProjectListFilter represents filter options for project lists
type ProjectListFilter struct {
	Search          string `form:"search"`
	Status          string `form:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	Priority        string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	OwnerID         uint   `form:"owner_id"`
	IncludeArchived bool   `form:"include_archived"`
	Limit           int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset          int    `form:"offset" binding:"omitempty,min=0"`
}

// AddMemberRequest attaches a contact to a project
type AddMemberRequest struct {
	ContactID  uint             `json:"contact_id" binding:"required"`
	Role       string           `json:"role" binding:"omitempty,oneof=owner manager member viewer"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	ActorID    *uint            `json:"actor_id"`
}

// ChangeRoleRequest changes a member's role
type ChangeRoleRequest struct {
	Role    string `json:"role" binding:"required,oneof=owner manager member viewer"`
	ActorID *uint  `json:"actor_id"`
}

// MemberResponse represents a project member in API responses
type MemberResponse struct {
	ID         uint                          `json:"id"`
	ProjectID  uint                          `json:"project_id"`
	ContactID  uint                          `json:"contact_id"`
	Contact    *appdirectory.ContactResponse `json:"contact,omitempty"`
	Role       string                        `json:"role"`
	JoinedAt   *time.Time                    `json:"joined_at,omitempty"`
	HourlyRate *decimal.Decimal              `json:"hourly_rate,omitempty"`
}

// LinkRequest attaches an existing entity to a project
type LinkRequest struct {
	TargetID uint  `json:"target_id" binding:"required"`
	ActorID  *uint `json:"actor_id"`
}

// LinkCountsResponse tallies attached entities per kind
type LinkCountsResponse struct {
	Tasks     int64 `json:"tasks"`
	Documents int64 `json:"documents"`
	Events    int64 `json:"events"`
}

// ActivityResponse is one entry of a project's activity trail
type ActivityResponse struct {
	ID        uint      `json:"id"`
	ProjectID uint      `json:"project_id"`
	ActorID   *uint     `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectStatsResponse aggregates project state for a tenant
type ProjectStatsResponse struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	TotalBudget decimal.Decimal  `json:"total_budget"`
}

// ToMemberResponse converts a domain Member
func ToMemberResponse(m *project.Member) MemberResponse {
	resp := MemberResponse{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		ContactID:  m.ContactID,
		Role:       string(m.Role),
		JoinedAt:   m.JoinedAt,
		HourlyRate: m.HourlyRate,
	}
	if m.Contact != nil {
		contact := appdirectory.ToContactResponse(m.Contact)
		resp.Contact = &contact
	}
	return resp
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *project.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		StartsOn:    p.StartsOn,
		EndsOn:      p.EndsOn,
		Budget:      p.Budget,
		OwnerID:     p.OwnerID,
		ClientID:    p.ClientID,
		IsPublic:    p.IsPublic,
		IsArchived:  p.IsArchived,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.Members {
		resp.Members = append(resp.Members, ToMemberResponse(&p.Members[i]))
	}
	return resp
}

// ToProjectResponses converts a slice of domain Projects
func ToProjectResponses(projects []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}

// ToActivityResponses converts a slice of domain Activities
func ToActivityResponses(activities []project.Activity) []ActivityResponse {
	out := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		out[i] = ActivityResponse{
			ID:        a.ID,
			ProjectID: a.ProjectID,
			ActorID:   a.ActorID,
			Action:    a.Action,
			Detail:    a.Detail,
			CreatedAt: a.CreatedAt,
		}
	}
	return out
}
