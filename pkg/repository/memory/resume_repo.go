package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/rirekisho/pkg/resume"
)

type skillRow struct {
	draftID   uuid.UUID
	name      string
	skillType string
}

type workRow struct {
	draftID uuid.UUID
	item    resume.WorkHistory
}

// ResumeRepository keeps drafts in memory. Work histories and skills live in
// per-user row lists to mirror the relational layout.
type ResumeRepository struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]resume.Draft // by user id
	work   map[uuid.UUID][]workRow
	skills map[uuid.UUID][]skillRow
	now    func() time.Time
}

func NewResumeRepository() *ResumeRepository {
	return &ResumeRepository{
		drafts: make(map[uuid.UUID]resume.Draft),
		work:   make(map[uuid.UUID][]workRow),
		skills: make(map[uuid.UUID][]skillRow),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *ResumeRepository) GetByUser(_ context.Context, userID uuid.UUID) (resume.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[userID]
	if !ok {
		return resume.Draft{}, resume.ErrNotFound
	}
	d.Education = append([]resume.Education{}, d.Education...)
	d.Certifications = append([]string{}, d.Certifications...)
	d.WorkHistories = []resume.WorkHistory{}
	for _, w := range r.work[userID] {
		d.WorkHistories = append(d.WorkHistories, w.item)
	}
	d.Skills = []string{}
	for _, s := range r.skills[userID] {
		d.Skills = append(d.Skills, s.name)
	}
	return d, nil
}

func (r *ResumeRepository) EnsureForUser(_ context.Context, userID uuid.UUID, email string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drafts[userID]; ok {
		return d.ID, nil
	}
	now := r.now()
	d := resume.Draft{
		ID:             uuid.New(),
		UserID:         userID,
		Email:          email,
		Education:      []resume.Education{},
		Certifications: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.drafts[userID] = d
	return d.ID, nil
}

// mutate applies fn to the draft with the given id.
func (r *ResumeRepository) mutate(draftID uuid.UUID, fn func(d *resume.Draft)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, d := range r.drafts {
		if d.ID != draftID {
			continue
		}
		fn(&d)
		d.UpdatedAt = r.now()
		r.drafts[uid] = d
		return nil
	}
	return resume.ErrNotFound
}

func (r *ResumeRepository) SetEducation(_ context.Context, draftID uuid.UUID, items []resume.Education) error {
	return r.mutate(draftID, func(d *resume.Draft) { d.Education = append([]resume.Education{}, items...) })
}

func (r *ResumeRepository) SetCertifications(_ context.Context, draftID uuid.UUID, items []string) error {
	return r.mutate(draftID, func(d *resume.Draft) { d.Certifications = append([]string{}, items...) })
}

func (r *ResumeRepository) DeleteWorkHistories(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.work, userID)
	return nil
}

func (r *ResumeRepository) InsertWorkHistories(_ context.Context, draftID, userID uuid.UUID, items []resume.WorkHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.work[userID] = append(r.work[userID], workRow{draftID: draftID, item: it})
	}
	return nil
}

func (r *ResumeRepository) DeleteSkills(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.skills, userID)
	return nil
}

func (r *ResumeRepository) InsertSkills(_ context.Context, draftID, userID uuid.UUID, skills []string, skillType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range skills {
		r.skills[userID] = append(r.skills[userID], skillRow{draftID: draftID, name: s, skillType: skillType})
	}
	return nil
}

func (r *ResumeRepository) SetSelfPR(_ context.Context, draftID uuid.UUID, text string) error {
	return r.mutate(draftID, func(d *resume.Draft) { d.SelfPR = text })
}

func (r *ResumeRepository) SetCareerObjective(_ context.Context, draftID uuid.UUID, text string) error {
	return r.mutate(draftID, func(d *resume.Draft) { d.CareerObjective = text })
}

func (r *ResumeRepository) UpdateBasicInfo(_ context.Context, draftID uuid.UUID, info resume.BasicInfo) error {
	return r.mutate(draftID, func(d *resume.Draft) {
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = *v
			}
		}
		set(&d.FullName, info.FullName)
		set(&d.FullNameKana, info.FullNameKana)
		set(&d.BirthDate, info.BirthDate)
		set(&d.Gender, info.Gender)
		set(&d.PostalCode, info.PostalCode)
		set(&d.Address, info.Address)
		set(&d.Phone, info.Phone)
		set(&d.Email, info.Email)
	})
}

func (r *ResumeRepository) ResetCollections(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.work, userID)
	delete(r.skills, userID)
	d, ok := r.drafts[userID]
	if !ok {
		return nil
	}
	d.Education = []resume.Education{}
	d.Certifications = []string{}
	d.SelfPR = ""
	d.CareerObjective = ""
	d.UpdatedAt = r.now()
	r.drafts[userID] = d
	return nil
}
