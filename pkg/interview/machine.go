package interview

import "github.com/artem13815/rirekisho/pkg/session"

// Transition is the decision taken for one turn.
type Transition struct {
	From      session.Step
	To        session.Step
	Advance   bool
	Completed bool
}

// Machine validates step transitions proposed by an extractor.
// A step only ever moves forward, and by at most one position.
type Machine struct{}

func (Machine) Apply(current session.Step, res Result) Transition {
	from := session.ParseStep(string(current))
	t := Transition{From: from, To: from, Completed: from == session.StepComplete}
	if !res.IsStepComplete || res.NextStep == nil {
		return t
	}
	to := *res.NextStep
	if !to.Valid() || to.Index() != from.Index()+1 {
		to = from.Next()
	}
	if to == from {
		return t
	}
	t.To = to
	t.Advance = true
	t.Completed = to == session.StepComplete
	return t
}
