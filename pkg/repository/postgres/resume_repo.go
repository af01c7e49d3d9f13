package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/rirekisho/pkg/resume"
)

// ResumeRepository хранит черновик резюме: скаляры и JSONB в resumes,
// опыт работы и навыки в отдельных таблицах.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (r *ResumeRepository) GetByUser(ctx context.Context, userID uuid.UUID) (resume.Draft, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, full_name, full_name_kana, to_char(birth_date, 'YYYY-MM-DD'), gender,
	postal_code, address, phone, email, photo_url, photo_processed_url,
	education, certifications, ai_self_pr, ai_career_objective, created_at, updated_at
FROM resumes WHERE user_id = $1
`, userID)
	var d resume.Draft
	var fullName, kana, birth, gender, postal, address *string
	var phone, email, photo, photoProcessed, pr, career *string
	var education, certs []byte
	err := row.Scan(&d.ID, &d.UserID, &fullName, &kana, &birth, &gender,
		&postal, &address, &phone, &email, &photo, &photoProcessed,
		&education, &certs, &pr, &career, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resume.Draft{}, resume.ErrNotFound
		}
		return resume.Draft{}, err
	}
	d.FullName, d.FullNameKana, d.BirthDate, d.Gender = str(fullName), str(kana), str(birth), str(gender)
	d.PostalCode, d.Address, d.Phone, d.Email = str(postal), str(address), str(phone), str(email)
	d.PhotoURL, d.PhotoProcessedURL = str(photo), str(photoProcessed)
	d.SelfPR, d.CareerObjective = str(pr), str(career)
	d.CreatedAt, d.UpdatedAt = d.CreatedAt.UTC(), d.UpdatedAt.UTC()

	d.Education = []resume.Education{}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &d.Education); err != nil {
			return resume.Draft{}, fmt.Errorf("decode education: %w", err)
		}
	}
	d.Certifications = []string{}
	if len(certs) > 0 {
		if err := json.Unmarshal(certs, &d.Certifications); err != nil {
			return resume.Draft{}, fmt.Errorf("decode certifications: %w", err)
		}
	}

	if d.WorkHistories, err = r.workHistories(ctx, userID); err != nil {
		return resume.Draft{}, err
	}
	if d.Skills, err = r.skills(ctx, userID); err != nil {
		return resume.Draft{}, err
	}
	return d, nil
}

func (r *ResumeRepository) workHistories(ctx context.Context, userID uuid.UUID) ([]resume.WorkHistory, error) {
	rows, err := r.pool.Query(ctx, `
SELECT company_name, position, COALESCE(department, ''),
	COALESCE(to_char(start_date, 'YYYY-MM-DD'), ''), COALESCE(to_char(end_date, 'YYYY-MM-DD'), ''),
	is_current, COALESCE(description, ''), COALESCE(achievements, ''), display_order
FROM work_histories WHERE user_id = $1
ORDER BY display_order
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]resume.WorkHistory, 0)
	for rows.Next() {
		var w resume.WorkHistory
		if err := rows.Scan(&w.CompanyName, &w.Position, &w.Department, &w.StartDate, &w.EndDate,
			&w.IsCurrent, &w.Description, &w.Achievements, &w.DisplayOrder); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *ResumeRepository) skills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT skill_name FROM skills WHERE user_id = $1 ORDER BY created_at, skill_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// EnsureForUser creates the draft row on first use. The email is only
// written when the row is created.
func (r *ResumeRepository) EnsureForUser(ctx context.Context, userID uuid.UUID, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
INSERT INTO resumes (id, user_id, email)
VALUES ($1, $2, NULLIF($3::text, ''))
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id
`, uuid.New(), userID, email).Scan(&id)
	return id, err
}

func (r *ResumeRepository) setJSON(ctx context.Context, draftID uuid.UUID, column string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE resumes SET `+column+` = $2, updated_at = now() WHERE id = $1`, draftID, data)
}

func (r *ResumeRepository) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

func (r *ResumeRepository) SetEducation(ctx context.Context, draftID uuid.UUID, items []resume.Education) error {
	if items == nil {
		items = []resume.Education{}
	}
	return r.setJSON(ctx, draftID, "education", items)
}

func (r *ResumeRepository) SetCertifications(ctx context.Context, draftID uuid.UUID, items []string) error {
	if items == nil {
		items = []string{}
	}
	return r.setJSON(ctx, draftID, "certifications", items)
}

func (r *ResumeRepository) DeleteWorkHistories(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM work_histories WHERE user_id = $1`, userID)
	return err
}

func (r *ResumeRepository) InsertWorkHistories(ctx context.Context, draftID, userID uuid.UUID, items []resume.WorkHistory) error {
	batch := &pgx.Batch{}
	for _, w := range items {
		batch.Queue(`
INSERT INTO work_histories (id, resume_id, user_id, company_name, position, department,
	start_date, end_date, is_current, description, achievements, display_order)
VALUES ($1, $2, $3, $4, $5, NULLIF($6::text, ''),
	NULLIF($7::text, '')::date, NULLIF($8::text, '')::date, $9, NULLIF($10::text, ''), NULLIF($11::text, ''), $12)
`, uuid.New(), draftID, userID, w.CompanyName, w.Position, w.Department,
			w.StartDate, w.EndDate, w.IsCurrent, w.Description, w.Achievements, w.DisplayOrder)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *ResumeRepository) DeleteSkills(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE user_id = $1`, userID)
	return err
}

func (r *ResumeRepository) InsertSkills(ctx context.Context, draftID, userID uuid.UUID, skills []string, skillType string) error {
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for i, s := range skills {
		// created_at keeps insertion order for reads
		batch.Queue(`
INSERT INTO skills (id, resume_id, user_id, skill_name, skill_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, uuid.New(), draftID, userID, s, skillType, now.Add(time.Duration(i)*time.Microsecond))
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

func (r *ResumeRepository) SetSelfPR(ctx context.Context, draftID uuid.UUID, text string) error {
	return r.exec(ctx, `UPDATE resumes SET ai_self_pr = $2, updated_at = now() WHERE id = $1`, draftID, text)
}

func (r *ResumeRepository) SetCareerObjective(ctx context.Context, draftID uuid.UUID, text string) error {
	return r.exec(ctx, `UPDATE resumes SET ai_career_objective = $2, updated_at = now() WHERE id = $1`, draftID, text)
}

// UpdateBasicInfo writes only the fields that are set.
func (r *ResumeRepository) UpdateBasicInfo(ctx context.Context, draftID uuid.UUID, info resume.BasicInfo) error {
	return r.exec(ctx, `
UPDATE resumes SET
	full_name = COALESCE($2, full_name),
	full_name_kana = COALESCE($3, full_name_kana),
	birth_date = CASE WHEN $4::text IS NULL THEN birth_date ELSE NULLIF($4::text, '')::date END,
	gender = COALESCE($5, gender),
	postal_code = COALESCE($6, postal_code),
	address = COALESCE($7, address),
	phone = COALESCE($8, phone),
	email = COALESCE($9, email),
	updated_at = now()
WHERE id = $1
`, draftID, info.FullName, info.FullNameKana, info.BirthDate, info.Gender,
		info.PostalCode, info.Address, info.Phone, info.Email)
}

// ResetCollections empties what the interview collects. Account fields stay.
func (r *ResumeRepository) ResetCollections(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, sql := range []string{
		`DELETE FROM work_histories WHERE user_id = $1`,
		`DELETE FROM skills WHERE user_id = $1`,
		`UPDATE resumes SET education = '[]'::jsonb, certifications = '[]'::jsonb, languages = '[]'::jsonb,
			ai_self_pr = NULL, ai_summary = NULL, ai_career_objective = NULL, updated_at = now()
		WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(ctx, sql, userID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
