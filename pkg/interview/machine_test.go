package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/rirekisho/pkg/session"
)

func proposal(next session.Step) Result {
	return Result{IsStepComplete: true, NextStep: &next}
}

func TestMachineAdvancesOneStep(t *testing.T) {
	var m Machine
	tr := m.Apply(session.StepEducation, proposal(session.StepWork))

	assert.Equal(t, Transition{From: session.StepEducation, To: session.StepWork, Advance: true}, tr)
}

func TestMachineClampsJumps(t *testing.T) {
	var m Machine
	assert.Equal(t, session.StepWork, m.Apply(session.StepEducation, proposal(session.StepComplete)).To)
	assert.Equal(t, session.StepPR, m.Apply(session.StepSkills, proposal(session.StepEducation)).To)
	assert.Equal(t, session.StepSkills, m.Apply(session.StepWork, proposal(session.Step("bogus"))).To)
}

func TestMachineStaysWithoutCompletion(t *testing.T) {
	var m Machine
	next := session.StepWork

	tr := m.Apply(session.StepEducation, Result{IsStepComplete: false, NextStep: &next})
	assert.False(t, tr.Advance)
	assert.Equal(t, session.StepEducation, tr.To)

	tr = m.Apply(session.StepEducation, Result{IsStepComplete: true})
	assert.False(t, tr.Advance)
}

func TestMachineCompleteIsTerminal(t *testing.T) {
	var m Machine
	tr := m.Apply(session.StepComplete, proposal(session.StepComplete))

	assert.False(t, tr.Advance)
	assert.Equal(t, session.StepComplete, tr.To)
	assert.True(t, tr.Completed)

	tr = m.Apply(session.StepPR, proposal(session.StepComplete))
	assert.True(t, tr.Advance)
	assert.True(t, tr.Completed)
}

func TestMachineCoercesUnknownCurrent(t *testing.T) {
	var m Machine
	tr := m.Apply(session.Step("stale"), proposal(session.StepWork))

	assert.Equal(t, session.StepEducation, tr.From)
	assert.Equal(t, session.StepWork, tr.To)
}

func TestMachineMonotonic(t *testing.T) {
	var m Machine
	for _, cur := range session.Steps() {
		for _, next := range append(session.Steps(), session.Step("x")) {
			tr := m.Apply(cur, proposal(next))
			assert.GreaterOrEqual(t, tr.To.Index(), cur.Index())
			assert.LessOrEqual(t, tr.To.Index()-cur.Index(), 1)
		}
	}
}
