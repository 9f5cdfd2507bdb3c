package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ariel-quanyu/spacegreen/internal/storage"
)

// CreateActivityInput carries the caller-supplied fields for a new ledger
// record. Zero values get defaults: status planned, source custom, frequency
// 1, date today.
type CreateActivityInput struct {
	Title             string
	Category          Category
	Note              string
	DateISO           string
	Status            Status
	SourceType        SourceType
	TipID             string
	FrequencyPerMonth int
	EventID           string
	Metrics           *Metrics
	ExpectedImpact    *Impact
}

// ActivityPatch is a partial update; nil fields are left unchanged.
type ActivityPatch struct {
	Title             *string
	Category          *Category
	Note              *string
	DateISO           *string
	Status            *Status
	FrequencyPerMonth *int
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Fields: map[string]string{"title": "title is required"}}
	}
	return t, nil
}

func newActivityID() string {
	return "activity_" + uuid.NewString()
}

func (s *Service) activitiesKey(ctx context.Context) (string, error) {
	scope, err := s.Scope(ctx)
	if err != nil {
		return "", err
	}
	return storage.ScopedKey(storage.KeyActivities, scope), nil
}

func (s *Service) loadActivities(ctx context.Context) ([]Activity, string, error) {
	key, err := s.activitiesKey(ctx)
	if err != nil {
		return nil, "", err
	}
	var all []Activity
	if _, err := s.kv.Get(ctx, key, &all); err != nil {
		return nil, "", err
	}
	return all, key, nil
}

// Activities returns the current user's ledger in insertion order. The
// ordering is stable across reloads because the collection round-trips as
// stored.
func (s *Service) Activities(ctx context.Context) ([]Activity, error) {
	all, _, err := s.loadActivities(ctx)
	return all, err
}

// ActivityByID returns the ledger record, or ErrNotFound.
func (s *Service) ActivityByID(ctx context.Context, id string) (*Activity, error) {
	all, _, err := s.loadActivities(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			a := all[i]
			return &a, nil
		}
	}
	return nil, fmt.Errorf("activity %q: %w", id, ErrNotFound)
}

// CreateActivity appends a new record. When the input references a tip that
// an existing record already covers, the fields are merged into that record
// instead: the ledger holds at most one activity per tip.
func (s *Service) CreateActivity(ctx context.Context, in CreateActivityInput) (*Activity, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.TipID != "" {
		if _, err := s.TipByID(ctx, in.TipID); err != nil {
			return nil, err
		}
	}

	a := Activity{
		ID:                newActivityID(),
		Title:             title,
		Category:          in.Category,
		Note:              in.Note,
		DateISO:           in.DateISO,
		Status:            in.Status,
		SourceType:        in.SourceType,
		TipID:             in.TipID,
		FrequencyPerMonth: in.FrequencyPerMonth,
		EventID:           in.EventID,
		Metrics:           in.Metrics,
		ExpectedImpact:    in.ExpectedImpact,
	}
	if a.Status == "" {
		a.Status = StatusPlanned
	}
	if !a.Status.IsValid() {
		return nil, ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid status %q", a.Status)}}
	}
	if a.SourceType == "" {
		a.SourceType = SourceCustom
	}
	if !a.SourceType.IsValid() {
		return nil, ValidationError{Fields: map[string]string{"sourceType": fmt.Sprintf("invalid source type %q", a.SourceType)}}
	}
	if a.FrequencyPerMonth <= 0 {
		a.FrequencyPerMonth = 1
	}
	if a.DateISO == "" {
		a.DateISO = s.now().Format(dateLayout)
	}
	if a.Status == StatusDone && a.DoneAt == nil {
		now := s.now()
		a.DoneAt = &now
	}

	all, key, err := s.loadActivities(ctx)
	if err != nil {
		return nil, err
	}

	stored := false
	if a.TipID != "" {
		for i := range all {
			if all[i].TipID == a.TipID {
				a.ID = all[i].ID
				all[i] = a
				stored = true
				break
			}
		}
	}
	if !stored {
		all = append(all, a)
	}

	if err := s.kv.Set(ctx, key, all); err != nil {
		return nil, err
	}
	s.notify()
	return &a, nil
}

// UpdateActivity merges patch into the record. Transitioning to done stamps
// DoneAt when unset; leaving done clears it (an explicit reset, not a new
// record).
func (s *Service) UpdateActivity(ctx context.Context, id string, patch ActivityPatch) (*Activity, error) {
	all, key, err := s.loadActivities(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("activity %q: %w", id, ErrNotFound)
	}

	a := all[idx]
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		a.Title = title
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Note != nil {
		a.Note = *patch.Note
	}
	if patch.DateISO != nil {
		a.DateISO = *patch.DateISO
	}
	if patch.FrequencyPerMonth != nil {
		if *patch.FrequencyPerMonth <= 0 {
			return nil, ValidationError{Fields: map[string]string{"frequencyPerMonth": "must be positive"}}
		}
		a.FrequencyPerMonth = *patch.FrequencyPerMonth
	}
	if patch.Status != nil {
		next := *patch.Status
		if !next.IsValid() {
			return nil, ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid status %q", next)}}
		}
		if next == StatusDone && a.DoneAt == nil {
			now := s.now()
			a.DoneAt = &now
		}
		if next != StatusDone {
			a.DoneAt = nil
		}
		a.Status = next
	}

	all[idx] = a
	if err := s.kv.Set(ctx, key, all); err != nil {
		return nil, err
	}
	s.notify()
	return &a, nil
}

// DeleteActivity removes the record by id. Deleting an unknown id is a no-op.
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	all, key, err := s.loadActivities(ctx)
	if err != nil {
		return err
	}

	next := all[:0]
	removed := false
	for _, a := range all {
		if a.ID == id {
			removed = true
			continue
		}
		next = append(next, a)
	}
	if !removed {
		return nil
	}

	if err := s.kv.Set(ctx, key, next); err != nil {
		return err
	}
	s.notify()
	return nil
}

// MarkTipDone upserts the tip's ledger record: an existing activity for the
// tip is stamped done with a fresh DoneAt, otherwise a tip-sourced done
// activity is created from the catalog entry. The ledger ends up with
// exactly one activity for the tip either way.
func (s *Service) MarkTipDone(ctx context.Context, tipID string) (*Activity, error) {
	tip, err := s.TipByID(ctx, tipID)
	if err != nil {
		return nil, err
	}

	all, key, err := s.loadActivities(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	idx := -1
	for i := range all {
		if all[i].TipID == tipID {
			idx = i
			break
		}
	}

	var a Activity
	if idx >= 0 {
		a = all[idx]
		a.Status = StatusDone
		a.DoneAt = &now
		all[idx] = a
	} else {
		a = Activity{
			ID:                newActivityID(),
			Title:             tip.Title,
			Category:          tip.Category,
			Note:              "Completed: " + tip.Summary,
			DateISO:           now.Format(dateLayout),
			Status:            StatusDone,
			SourceType:        SourceTip,
			TipID:             tip.ID,
			FrequencyPerMonth: 1,
			DoneAt:            &now,
		}
		all = append(all, a)
	}

	if err := s.kv.Set(ctx, key, all); err != nil {
		return nil, err
	}
	s.notify()
	return &a, nil
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
