package resume

// Patch is the partial draft produced by one extraction.
// Scalars: nil means absent. Slices: nil means absent, a non-nil (even empty)
// slice replaces the stored collection.
type Patch struct {
	FullName        *string       `json:"fullName,omitempty"`
	FullNameKana    *string       `json:"fullNameKana,omitempty"`
	BirthDate       *string       `json:"birthDate,omitempty"`
	Gender          *string       `json:"gender,omitempty"`
	PostalCode      *string       `json:"postalCode,omitempty"`
	Address         *string       `json:"address,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	Email           *string       `json:"email,omitempty"`
	Education       []Education   `json:"education"`
	WorkHistories   []WorkHistory `json:"workHistories"`
	Skills          []string      `json:"skills"`
	Certifications  []string      `json:"certifications"`
	SelfPR          *string       `json:"selfPR,omitempty"`
	CareerObjective *string       `json:"careerObjective,omitempty"`
}

// IsEmpty reports whether applying p would not touch anything.
func (p *Patch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.basicInfo().Empty() && p.Education == nil && p.WorkHistories == nil &&
		p.Skills == nil && p.Certifications == nil && p.SelfPR == nil && p.CareerObjective == nil
}

func (p *Patch) basicInfo() BasicInfo {
	return BasicInfo{
		FullName:     nonEmpty(p.FullName),
		FullNameKana: nonEmpty(p.FullNameKana),
		BirthDate:    nonEmpty(p.BirthDate),
		Gender:       nonEmpty(p.Gender),
		PostalCode:   nonEmpty(p.PostalCode),
		Address:      nonEmpty(p.Address),
		Phone:        nonEmpty(p.Phone),
		Email:        nonEmpty(p.Email),
	}
}

// Merge overlays p onto d in memory, with the same replace rules the
// aggregator applies to storage. Used to build the draft returned with a turn.
func (p *Patch) Merge(d Draft) Draft {
	if p == nil {
		return d
	}
	set := func(dst *string, v *string) {
		if v = nonEmpty(v); v != nil {
			*dst = *v
		}
	}
	set(&d.FullName, p.FullName)
	set(&d.FullNameKana, p.FullNameKana)
	if v := nonEmpty(p.BirthDate); v != nil {
		d.BirthDate = NormalizeDate(*v)
	}
	set(&d.Gender, p.Gender)
	set(&d.PostalCode, p.PostalCode)
	set(&d.Address, p.Address)
	set(&d.Phone, p.Phone)
	set(&d.Email, p.Email)
	if p.Education != nil {
		d.Education = normalizeEducation(p.Education)
	}
	if p.WorkHistories != nil {
		d.WorkHistories = normalizeWork(p.WorkHistories)
	}
	if p.Skills != nil {
		d.Skills = compactStrings(p.Skills)
	}
	if p.Certifications != nil {
		d.Certifications = compactStrings(p.Certifications)
	}
	set(&d.SelfPR, p.SelfPR)
	set(&d.CareerObjective, p.CareerObjective)
	return d
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
