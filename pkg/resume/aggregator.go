package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/pkg/logger"
)

// SubUpdate is the outcome of one independent write of a turn.
type SubUpdate struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

func (s SubUpdate) OK() bool { return s.Err == nil }

// Reason is the failure text, empty on success.
func (s SubUpdate) Reason() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Report aggregates every sub-update attempted for one patch.
type Report struct {
	DraftID uuid.UUID   `json:"draftId"`
	Updates []SubUpdate `json:"updates"`
}

// Failed returns the sub-updates that did not go through.
func (r Report) Failed() []SubUpdate {
	var out []SubUpdate
	for _, u := range r.Updates {
		if !u.OK() {
			out = append(out, u)
		}
	}
	return out
}

func (r Report) OK() bool { return len(r.Failed()) == 0 }

// Aggregator merges extracted fragments into the persisted draft.
// Each sub-entity is written on its own: a failing write is logged and
// recorded in the Report, the remaining writes still run.
type Aggregator struct {
	repo Repository
	log  *logger.Logger
}

func NewAggregator(repo Repository, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{repo: repo, log: log}
}

// Apply persists p for the user. The draft is created lazily (seeded with
// the account email) before any field is written.
func (a *Aggregator) Apply(ctx context.Context, userID uuid.UUID, email string, p *Patch) Report {
	var rep Report
	if p.IsEmpty() {
		return rep
	}
	draftID, err := a.repo.EnsureForUser(ctx, userID, email)
	if err != nil {
		rep.Updates = append(rep.Updates, SubUpdate{Name: "draft", Err: fmt.Errorf("ensure draft: %w", err)})
		a.log.Error("resume draft unavailable", "user_id", userID, "error", err)
		return rep
	}
	rep.DraftID = draftID

	run := func(name string, fn func() error) {
		err := fn()
		rep.Updates = append(rep.Updates, SubUpdate{Name: name, Err: err})
		if err != nil {
			a.log.Error("resume sub-update failed", "user_id", userID, "part", name, "error", err)
		}
	}

	if p.Education != nil {
		items := normalizeEducation(p.Education)
		run("education", func() error { return a.repo.SetEducation(ctx, draftID, items) })
	}
	if p.WorkHistories != nil {
		items := normalizeWork(p.WorkHistories)
		run("work_histories.delete", func() error { return a.repo.DeleteWorkHistories(ctx, userID) })
		if len(items) > 0 {
			run("work_histories.insert", func() error { return a.repo.InsertWorkHistories(ctx, draftID, userID, items) })
		}
	}
	if p.Skills != nil {
		skills := compactStrings(p.Skills)
		run("skills.delete", func() error { return a.repo.DeleteSkills(ctx, userID) })
		if len(skills) > 0 {
			run("skills.insert", func() error { return a.repo.InsertSkills(ctx, draftID, userID, skills, SkillTypeHard) })
		}
	}
	if p.Certifications != nil {
		items := compactStrings(p.Certifications)
		run("certifications", func() error { return a.repo.SetCertifications(ctx, draftID, items) })
	}
	if v := nonEmpty(p.SelfPR); v != nil {
		run("self_pr", func() error { return a.repo.SetSelfPR(ctx, draftID, *v) })
	}
	if v := nonEmpty(p.CareerObjective); v != nil {
		run("career_objective", func() error { return a.repo.SetCareerObjective(ctx, draftID, *v) })
	}
	if info := p.basicInfo(); !info.Empty() {
		if info.BirthDate != nil {
			d := NormalizeDate(*info.BirthDate)
			info.BirthDate = &d
		}
		run("basic_info", func() error { return a.repo.UpdateBasicInfo(ctx, draftID, info) })
	}

	if failed := rep.Failed(); len(failed) > 0 {
		a.log.Warn("resume draft partially saved", "user_id", userID, "failed", len(failed), "total", len(rep.Updates))
	} else {
		a.log.Debug("resume draft saved", "user_id", userID, "updates", len(rep.Updates))
	}
	return rep
}

// Reset clears the interview-collected collections and narrative fields.
// Account-level scalars (name, contact details, photo) are kept.
func (a *Aggregator) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := a.repo.ResetCollections(ctx, userID); err != nil {
		return fmt.Errorf("reset draft: %w", err)
	}
	return nil
}

// Load returns the user's draft, creating an empty one seeded with email if needed.
func (a *Aggregator) Load(ctx context.Context, userID uuid.UUID, email string) (Draft, error) {
	d, err := a.repo.GetByUser(ctx, userID)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Draft{}, err
	}
	if _, err := a.repo.EnsureForUser(ctx, userID, email); err != nil {
		return Draft{}, fmt.Errorf("ensure draft: %w", err)
	}
	return a.repo.GetByUser(ctx, userID)
}
