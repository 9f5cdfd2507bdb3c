package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventSubmitted EventStatus = "submitted"
	EventApproved  EventStatus = "approved"
	EventPublished EventStatus = "published"
)

type EventLocation struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// EventProposal is a community event draft. Proposals live under the
// owner's scope; publishing copies the event into the global list.
type EventProposal struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Category       string        `json:"category"`
	Description    string        `json:"description,omitempty"`
	DateISO        string        `json:"dateISO"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	Location       EventLocation `json:"location"`
	Capacity       int           `json:"capacity"`
	ExpectedImpact Impact        `json:"expectedImpact"`
	Status         EventStatus   `json:"status"`
	CreatedBy      string        `json:"createdBy,omitempty"`
}

type ProposeEventInput struct {
	Title          string
	Category       string
	Description    string
	DateISO        string
	StartTime      string
	EndTime        string
	Location       EventLocation
	Capacity       int
	ExpectedImpact Impact
}

func validateProposal(in ProposeEventInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		fields["category"] = "category is required"
	}
	if in.DateISO == "" {
		fields["dateISO"] = "date is required"
	}
	if in.StartTime == "" {
		fields["startTime"] = "start time is required"
	}
	if in.EndTime == "" {
		fields["endTime"] = "end time is required"
	} else if in.StartTime >= in.EndTime {
		fields["endTime"] = "end time must be after start time"
	}
	if in.Capacity < 1 {
		fields["capacity"] = "capacity must be at least 1"
	}
	if len(fields) > 0 {
		return ValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) proposalsKey(u *AuthUser) string {
	return storage.ScopedKey(storage.KeyEventProposals, u.Email)
}

// ProposeEvent creates a draft proposal for the signed-in user.
func (s *Service) ProposeEvent(ctx context.Context, in ProposeEventInput) (*EventProposal, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateProposal(in); err != nil {
		return nil, err
	}

	p := EventProposal{
		ID:             "event_" + uuid.NewString(),
		Title:          strings.TrimSpace(in.Title),
		Category:       strings.TrimSpace(in.Category),
		Description:    in.Description,
		DateISO:        in.DateISO,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       in.Location,
		Capacity:       in.Capacity,
		ExpectedImpact: in.ExpectedImpact,
		Status:         EventDraft,
		CreatedBy:      u.Email,
	}
	if err := s.saveProposal(ctx, u, p); err != nil {
		return nil, err
	}
	s.notify()
	return &p, nil
}

// saveProposal upserts by id into the owner's proposal list.
func (s *Service) saveProposal(ctx context.Context, u *AuthUser, p EventProposal) error {
	key := s.proposalsKey(u)
	var list []EventProposal
	if _, err := s.kv.Get(ctx, key, &list); err != nil {
		return err
	}

	idx := -1
	for i := range list {
		if list[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		list[idx] = p
	} else {
		list = append(list, p)
	}
	return s.kv.Set(ctx, key, list)
}

// Proposals returns the signed-in user's event proposals.
func (s *Service) Proposals(ctx context.Context) ([]EventProposal, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	var list []EventProposal
	if _, err := s.kv.Get(ctx, s.proposalsKey(u), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) proposalByID(ctx context.Context, id string) (*EventProposal, *AuthUser, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	var list []EventProposal
	if _, err := s.kv.Get(ctx, s.proposalsKey(u), &list); err != nil {
		return nil, nil, err
	}
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, u, nil
		}
	}
	return nil, nil, fmt.Errorf("event proposal %q: %w", id, ErrNotFound)
}

// SubmitProposal moves a draft to approved. There is no review queue: the
// community model approves submissions immediately.
func (s *Service) SubmitProposal(ctx context.Context, id string) (*EventProposal, error) {
	p, u, err := s.proposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Status = EventApproved
	if err := s.saveProposal(ctx, u, *p); err != nil {
		return nil, err
	}
	s.notify()
	return p, nil
}

// PublishProposal appends the event to the global published list, once, and
// marks the proposal published. Publishing twice is a no-op on the global
// list.
func (s *Service) PublishProposal(ctx context.Context, id string) (*EventProposal, error) {
	p, u, err := s.proposalByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var published []EventProposal
	if _, err := s.kv.Get(ctx, storage.KeyEventsPublished, &published); err != nil {
		return nil, err
	}

	found := false
	for i := range published {
		if published[i].ID == p.ID {
			found = true
			break
		}
	}
	if !found {
		pub := *p
		pub.Status = EventPublished
		published = append(published, pub)
		if err := s.kv.Set(ctx, storage.KeyEventsPublished, published); err != nil {
			return nil, err
		}
	}

	p.Status = EventPublished
	if err := s.saveProposal(ctx, u, *p); err != nil {
		return nil, err
	}
	s.notify()
	return p, nil
}

// PublishedEvents returns the global event list, visible to everyone.
func (s *Service) PublishedEvents(ctx context.Context) ([]EventProposal, error) {
	var published []EventProposal
	if _, err := s.kv.Get(ctx, storage.KeyEventsPublished, &published); err != nil {
		return nil, err
	}
	return published, nil
}

// PublishedEventByID returns a published event, or ErrNotFound.
func (s *Service) PublishedEventByID(ctx context.Context, id string) (*EventProposal, error) {
	published, err := s.PublishedEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range published {
		if published[i].ID == id {
			e := published[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

// ToggleRSVP flips the signed-in user's RSVP for a published event and
// reports the new state.
func (s *Service) ToggleRSVP(ctx context.Context, eventID string) (bool, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return false, err
	}
	if _, err := s.PublishedEventByID(ctx, eventID); err != nil {
		return false, err
	}

	key := storage.ScopedKey(storage.KeyEventsRSVP, u.Email)
	var ids []string
	if _, err := s.kv.Get(ctx, key, &ids); err != nil {
		return false, err
	}

	attending := true
	next := ids[:0]
	for _, id := range ids {
		if id == eventID {
			attending = false
			continue
		}
		next = append(next, id)
	}
	if attending {
		next = append(next, eventID)
	}
	if err := s.kv.Set(ctx, key, next); err != nil {
		return false, err
	}
	s.notify()
	return attending, nil
}

// IsRSVPd reports whether the signed-in user RSVP'd to the event.
func (s *Service) IsRSVPd(ctx context.Context, eventID string) (bool, error) {
	u, err := s.requireUser(ctx)
	if err != nil {
		return false, err
	}
	var ids []string
	if _, err := s.kv.Get(ctx, storage.ScopedKey(storage.KeyEventsRSVP, u.Email), &ids); err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == eventID {
			return true, nil
		}
	}
	return false, nil
}

// AddEventToActivities puts a published event on the user's ledger as a
// planned event-sourced activity carrying the event's expected impact.
func (s *Service) AddEventToActivities(ctx context.Context, eventID string) (*Activity, error) {
	e, err := s.PublishedEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	impact := e.ExpectedImpact
	return s.CreateActivity(ctx, CreateActivityInput{
		Title:          e.Title,
		Category:       CategorySocial,
		Note:           "From event: " + e.ID,
		DateISO:        e.DateISO,
		Status:         StatusPlanned,
		SourceType:     SourceEvent,
		EventID:        e.ID,
		ExpectedImpact: &impact,
	})
}
