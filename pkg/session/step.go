package session

// Step — этап интервью по заполнению резюме.
type Step string

const (
	StepEducation Step = "education"
	StepWork      Step = "work"
	StepSkills    Step = "skills"
	StepPR        Step = "pr"
	StepComplete  Step = "complete"
)

var stepOrder = []Step{StepEducation, StepWork, StepSkills, StepPR, StepComplete}

// Steps returns the interview steps in the order they are visited.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool { return s.Index() >= 0 }

// Index returns the position of s in the step order, or -1 for unknown values.
func (s Step) Index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the step that follows s. complete loops onto itself,
// unknown values restart at education.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 {
		return StepEducation
	}
	if i+1 >= len(stepOrder) {
		return StepComplete
	}
	return stepOrder[i+1]
}

// ParseStep coerces raw client/database input to a Step.
// Stale or unknown values fall back to education instead of failing the turn.
func ParseStep(raw string) Step {
	s := Step(raw)
	if s.Valid() {
		return s
	}
	return StepEducation
}
