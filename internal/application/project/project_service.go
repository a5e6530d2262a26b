// Package project implements application services for projects, their
// membership, cross-context links and the activity trail.
package project

import (
	"context"
	"fmt"
	"time"

	appcalendar "github.com/workhub/backend/internal/application/calendar"
	appdocument "github.com/workhub/backend/internal/application/document"
	apptask "github.com/workhub/backend/internal/application/task"
	"github.com/workhub/backend/internal/domain/calendar"
	"github.com/workhub/backend/internal/domain/directory"
	"github.com/workhub/backend/internal/domain/document"
	"github.com/workhub/backend/internal/domain/project"
	"github.com/workhub/backend/internal/domain/shared"
	"github.com/workhub/backend/internal/domain/task"
	"github.com/workhub/backend/internal/infrastructure/telemetry"
)

// TaskSource resolves tasks referenced by project links
type TaskSource interface {
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]task.Task, error)
}

// DocumentSource resolves documents referenced by project links
type DocumentSource interface {
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]document.Document, error)
}

// EventSource resolves events referenced by project links
type EventSource interface {
	ExistsForTenant(ctx context.Context, tenantID string, id uint) (bool, error)
	FindByIDsForTenant(ctx context.Context, tenantID string, ids []uint) ([]calendar.Event, error)
}

// ProjectService handles project-related business operations
type ProjectService struct {
	projectRepo project.Repository
	contactRepo directory.ContactRepository
	tasks       TaskSource
	documents   DocumentSource
	events      EventSource
	metrics     *telemetry.WorkspaceMetrics
	now         func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo project.Repository,
	contactRepo directory.ContactRepository,
	tasks TaskSource,
	documents DocumentSource,
	events EventSource,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		contactRepo: contactRepo,
		tasks:       tasks,
		documents:   documents,
		events:      events,
		now:         time.Now,
	}
}

// SetMetrics sets the workspace metrics collector
func (s *ProjectService) SetMetrics(m *telemetry.WorkspaceMetrics) {
	s.metrics = m
}

func (s *ProjectService) recordWrite(ctx context.Context, tenantID, operation string) {
	if s.metrics != nil {
		s.metrics.RecordEntityWrite(ctx, tenantID, "projects", operation)
	}
}

func (s *ProjectService) ensureContact(ctx context.Context, tenantID string, contactID uint, role string) error {
	exists, err := s.contactRepo.ExistsForTenant(ctx, tenantID, contactID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Unknown "+role+" contact")
	}
	return nil
}

func (s *ProjectService) appendActivity(ctx context.Context, tenantID string, projectID uint, actorID *uint, action, detail string) error {
	return s.projectRepo.AppendActivity(ctx, &project.Activity{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		ProjectID:    projectID,
		ActorID:      actorID,
		Action:       action,
		Detail:       detail,
	})
}

// Create creates a project. The owner contact, when given, always ends
// up in the member list with the owner role.
func (s *ProjectService) Create(ctx context.Context, tenantID string, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	if req.Status != "" {
		if err := p.SetStatus(project.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != "" {
		if err := p.SetPriority(project.Priority(req.Priority)); err != nil {
			return nil, err
		}
	}
	if err := p.SetSchedule(req.StartsOn, req.EndsOn); err != nil {
		return nil, err
	}
	p.Budget = req.Budget
	p.IsPublic = req.IsPublic

	var ownerID uint
	if req.OwnerID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.OwnerID, "owner"); err != nil {
			return nil, err
		}
		ownerID = *req.OwnerID
		p.OwnerID = req.OwnerID
	}
	if req.ClientID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.ClientID, "client"); err != nil {
			return nil, err
		}
		p.ClientID = req.ClientID
	}

	memberIDs := shared.EnsureMember(req.MemberIDs, ownerID)
	members := make([]project.Member, 0, len(memberIDs))
	for _, contactID := range memberIDs {
		if contactID != ownerID {
			if err := s.ensureContact(ctx, tenantID, contactID, "member"); err != nil {
				return nil, err
			}
		}
		m, err := project.NewMember(tenantID, 0, contactID, project.Role(project.OwnerDefaults.RoleFor(contactID, ownerID)))
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}

	if err := s.projectRepo.SaveWithMembers(ctx, p, members); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "create")
	response := ToProjectResponse(p)
	return &response, nil
}

// GetByID retrieves a project with its members and link counts
func (s *ProjectService) GetByID(ctx context.Context, tenantID string, projectID uint) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.projectRepo.CountLinks(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	response.Links = &LinkCountsResponse{
		Tasks:     counts.Tasks,
		Documents: counts.Documents,
		Events:    counts.Events,
	}
	return &response, nil
}

// List retrieves projects with filtering and pagination
func (s *ProjectService) List(ctx context.Context, tenantID string, filter ProjectListFilter) (*shared.Paginated[ProjectResponse], error) {
	domainFilter := shared.Filter{
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.OwnerID != 0 {
		domainFilter.Filters["owner_id"] = filter.OwnerID
	}
	if !filter.IncludeArchived {
		domainFilter.Filters["is_archived"] = false
	}

	projects, err := s.projectRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.projectRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProjectResponses(projects), total, domainFilter.Limit, domainFilter.Offset)
	return &page, nil
}

// Update updates a project
func (s *ProjectService) Update(ctx context.Context, tenantID string, projectID uint, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		renamed, err := project.NewProject(tenantID, *req.Name)
		if err != nil {
			return nil, err
		}
		p.Name = renamed.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		if err := p.SetStatus(project.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := p.SetPriority(project.Priority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.StartsOn != nil || req.EndsOn != nil {
		startsOn, endsOn := p.StartsOn, p.EndsOn
		if req.StartsOn != nil {
			startsOn = req.StartsOn
		}
		if req.EndsOn != nil {
			endsOn = req.EndsOn
		}
		if err := p.SetSchedule(startsOn, endsOn); err != nil {
			return nil, err
		}
	}
	if req.ClearBudget {
		p.Budget = nil
	} else if req.Budget != nil {
		p.Budget = req.Budget
	}
	if req.ClearClient {
		p.ClientID = nil
	} else if req.ClientID != nil {
		if err := s.ensureContact(ctx, tenantID, *req.ClientID, "client"); err != nil {
			return nil, err
		}
		p.ClientID = req.ClientID
	}
	if req.IsPublic != nil {
		p.IsPublic = *req.IsPublic
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToProjectResponse(p)
	return &response, nil
}

// Archive flags a project as archived without touching its lifecycle
// status
func (s *ProjectService) Archive(ctx context.Context, tenantID string, projectID uint) (*ProjectResponse, error) {
	return s.setArchived(ctx, tenantID, projectID, true)
}

// Unarchive clears a project's archived flag
func (s *ProjectService) Unarchive(ctx context.Context, tenantID string, projectID uint) (*ProjectResponse, error) {
	return s.setArchived(ctx, tenantID, projectID, false)
}

func (s *ProjectService) setArchived(ctx context.Context, tenantID string, projectID uint, archived bool) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	p.IsArchived = archived

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "update")
	response := ToProjectResponse(p)
	return &response, nil
}

// Delete removes a project with its members, links and activity trail.
// Linked tasks, documents and events are left untouched.
func (s *ProjectService) Delete(ctx context.Context, tenantID string, projectID uint) error {
	if err := s.projectRepo.DeleteCascade(ctx, tenantID, projectID); err != nil {
		return err
	}
	s.recordWrite(ctx, tenantID, "delete")
	return nil
}

// ListMembers returns the member list of a project
func (s *ProjectService) ListMembers(ctx context.Context, tenantID string, projectID uint) ([]MemberResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(p.Members))
	for i := range p.Members {
		out = append(out, ToMemberResponse(&p.Members[i]))
	}
	return out, nil
}

// AddMember attaches a contact to a project. The unique index on the
// (project, contact) pair is authoritative under concurrent adds.
func (s *ProjectService) AddMember(ctx context.Context, tenantID string, projectID uint, req AddMemberRequest) (*MemberResponse, error) {
	exists, err := s.projectRepo.ExistsForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	if err := s.ensureContact(ctx, tenantID, req.ContactID, "member"); err != nil {
		return nil, err
	}

	present, err := s.projectRepo.MemberExists(ctx, tenantID, projectID, req.ContactID)
	if err != nil {
		return nil, err
	}
	if present {
		return nil, shared.ErrAlreadyExists
	}

	m, err := project.NewMember(tenantID, projectID, req.ContactID, project.Role(req.Role))
	if err != nil {
		return nil, err
	}
	m.HourlyRate = req.HourlyRate
	if err := s.projectRepo.SaveMember(ctx, m); err != nil {
		return nil, err
	}
	if err := s.appendActivity(ctx, tenantID, projectID, req.ActorID, "member_added",
		fmt.Sprintf("contact %d joined as %s", m.ContactID, m.Role)); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "member_add")
	response := ToMemberResponse(m)
	return &response, nil
}

// ChangeRole changes a member's role. Demoting the last owner is
// rejected.
func (s *ProjectService) ChangeRole(ctx context.Context, tenantID string, projectID, contactID uint, req ChangeRoleRequest) (*MemberResponse, error) {
	m, err := s.projectRepo.FindMember(ctx, tenantID, projectID, contactID)
	if err != nil {
		return nil, err
	}

	newRole := project.Role(req.Role)
	if m.Role == project.RoleOwner && newRole != project.RoleOwner {
		if err := s.ensureNotLastOwner(ctx, tenantID, projectID); err != nil {
			return nil, err
		}
	}
	if err := m.ChangeRole(newRole); err != nil {
		return nil, err
	}
	if err := s.projectRepo.SaveMember(ctx, m); err != nil {
		return nil, err
	}
	if err := s.appendActivity(ctx, tenantID, projectID, req.ActorID, "member_role_changed",
		fmt.Sprintf("contact %d is now %s", contactID, newRole)); err != nil {
		return nil, err
	}

	s.recordWrite(ctx, tenantID, "member_update")
	response := ToMemberResponse(m)
	return &response, nil
}

// RemoveMember detaches a contact from a project. Removing the last
// owner is rejected.
func (s *ProjectService) RemoveMember(ctx context.Context, tenantID string, projectID, contactID uint, actorID *uint) error {
	m, err := s.projectRepo.FindMember(ctx, tenantID, projectID, contactID)
	if err != nil {
		return err
	}
	if m.Role == project.RoleOwner {
		if err := s.ensureNotLastOwner(ctx, tenantID, projectID); err != nil {
			return err
		}
	}

	if err := s.projectRepo.DeleteMember(ctx, tenantID, projectID, contactID); err != nil {
		return err
	}
	if err := s.appendActivity(ctx, tenantID, projectID, actorID, "member_removed",
		fmt.Sprintf("contact %d left the project", contactID)); err != nil {
		return err
	}

	s.recordWrite(ctx, tenantID, "member_remove")
	return nil
}

func (s *ProjectService) ensureNotLastOwner(ctx context.Context, tenantID string, projectID uint) error {
	owners, err := s.projectRepo.CountMembersWithRole(ctx, tenantID, projectID, project.RoleOwner)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return shared.NewDomainError("CONFLICT", "Project must retain at least one owner")
	}
	return nil
}

// LinkTask attaches an existing task to a project
func (s *ProjectService) LinkTask(ctx context.Context, tenantID string, projectID uint, req LinkRequest) error {
	return s.link(ctx, tenantID, projectID, project.LinkTask, req, s.tasks.ExistsForTenant)
}

// UnlinkTask detaches a task from a project
func (s *ProjectService) UnlinkTask(ctx context.Context, tenantID string, projectID, targetID uint, actorID *uint) error {
	return s.unlink(ctx, tenantID, projectID, project.LinkTask, targetID, actorID)
}

// LinkDocument attaches an existing document to a project
func (s *ProjectService) LinkDocument(ctx context.Context, tenantID string, projectID uint, req LinkRequest) error {
	return s.link(ctx, tenantID, projectID, project.LinkDocument, req, s.documents.ExistsForTenant)
}

// UnlinkDocument detaches a document from a project
func (s *ProjectService) UnlinkDocument(ctx context.Context, tenantID string, projectID, targetID uint, actorID *uint) error {
	return s.unlink(ctx, tenantID, projectID, project.LinkDocument, targetID, actorID)
}

// LinkEvent attaches an existing event to a project
func (s *ProjectService) LinkEvent(ctx context.Context, tenantID string, projectID uint, req LinkRequest) error {
	return s.link(ctx, tenantID, projectID, project.LinkEvent, req, s.events.ExistsForTenant)
}

// UnlinkEvent detaches an event from a project
func (s *ProjectService) UnlinkEvent(ctx context.Context, tenantID string, projectID, targetID uint, actorID *uint) error {
	return s.unlink(ctx, tenantID, projectID, project.LinkEvent, targetID, actorID)
}

func (s *ProjectService) link(
	ctx context.Context,
	tenantID string,
	projectID uint,
	kind project.LinkKind,
	req LinkRequest,
	targetExists func(context.Context, string, uint) (bool, error),
) error {
	exists, err := s.projectRepo.ExistsForTenant(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}

	found, err := targetExists(ctx, tenantID, req.TargetID)
	if err != nil {
		return err
	}
	if !found {
		return shared.NewDomainError("NOT_FOUND", "Unknown "+string(kind))
	}

	linked, err := s.projectRepo.LinkExists(ctx, kind, tenantID, projectID, req.TargetID)
	if err != nil {
		return err
	}
	if linked {
		return shared.ErrAlreadyExists
	}

	if err := s.projectRepo.SaveLink(ctx, kind, tenantID, projectID, req.TargetID); err != nil {
		return err
	}
	if err := s.appendActivity(ctx, tenantID, projectID, req.ActorID, string(kind)+"_linked",
		fmt.Sprintf("%s %d attached", kind, req.TargetID)); err != nil {
		return err
	}

	s.recordWrite(ctx, tenantID, "link")
	return nil
}

func (s *ProjectService) unlink(ctx context.Context, tenantID string, projectID uint, kind project.LinkKind, targetID uint, actorID *uint) error {
	linked, err := s.projectRepo.LinkExists(ctx, kind, tenantID, projectID, targetID)
	if err != nil {
		return err
	}
	if !linked {
		return shared.ErrNotFound
	}

	if err := s.projectRepo.DeleteLink(ctx, kind, tenantID, projectID, targetID); err != nil {
		return err
	}
	if err := s.appendActivity(ctx, tenantID, projectID, actorID, string(kind)+"_unlinked",
		fmt.Sprintf("%s %d detached", kind, targetID)); err != nil {
		return err
	}

	s.recordWrite(ctx, tenantID, "unlink")
	return nil
}

// LinkedTasks returns the tasks attached to a project
func (s *ProjectService) LinkedTasks(ctx context.Context, tenantID string, projectID uint) ([]apptask.TaskResponse, error) {
	ids, err := s.linkedIDs(ctx, tenantID, projectID, project.LinkTask)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []apptask.TaskResponse{}, nil
	}
	tasks, err := s.tasks.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	return apptask.ToTaskResponses(tasks, s.now()), nil
}

// LinkedDocuments returns the documents attached to a project
func (s *ProjectService) LinkedDocuments(ctx context.Context, tenantID string, projectID uint) ([]appdocument.DocumentResponse, error) {
	ids, err := s.linkedIDs(ctx, tenantID, projectID, project.LinkDocument)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []appdocument.DocumentResponse{}, nil
	}
	documents, err := s.documents.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	return appdocument.ToDocumentResponses(documents), nil
}

// LinkedEvents returns the events attached to a project
func (s *ProjectService) LinkedEvents(ctx context.Context, tenantID string, projectID uint) ([]appcalendar.EventResponse, error) {
	ids, err := s.linkedIDs(ctx, tenantID, projectID, project.LinkEvent)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []appcalendar.EventResponse{}, nil
	}
	events, err := s.events.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	return appcalendar.ToEventResponses(events), nil
}

func (s *ProjectService) linkedIDs(ctx context.Context, tenantID string, projectID uint, kind project.LinkKind) ([]uint, error) {
	exists, err := s.projectRepo.ExistsForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}
	return s.projectRepo.LinkedIDs(ctx, kind, tenantID, projectID)
}

// Activity returns the newest-first activity trail of a project
func (s *ProjectService) Activity(ctx context.Context, tenantID string, projectID uint, limit, offset int) ([]ActivityResponse, error) {
	exists, err := s.projectRepo.ExistsForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	filter := shared.Filter{Limit: limit, Offset: offset}
	filter.Normalize()
	activities, err := s.projectRepo.FindActivities(ctx, tenantID, projectID, filter)
	if err != nil {
		return nil, err
	}
	return ToActivityResponses(activities), nil
}

// Stats returns project counts by status plus the summed budget.
// An unknown tenant yields zeroes, not an error.
func (s *ProjectService) Stats(ctx context.Context, tenantID string) (*ProjectStatsResponse, error) {
	stats, err := s.projectRepo.StatsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := &ProjectStatsResponse{
		ByStatus:    make(map[string]int64, len(stats.ByStatus)),
		TotalBudget: stats.TotalBudget,
	}
	for status, count := range stats.ByStatus {
		out.ByStatus[string(status)] = count
		out.Total += count
	}
	return out, nil
}
