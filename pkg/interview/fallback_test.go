package interview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/pkg/session"
)

func extractFallback(t *testing.T, step session.Step, msg string) Result {
	t.Helper()
	res, err := NewFallbackExtractor(nil).Extract(context.Background(), Input{Step: step, Message: msg})
	require.NoError(t, err)
	return res
}

func TestFallbackEducationParity(t *testing.T) {
	res := extractFallback(t, session.StepEducation, "東京大学 工学部")

	require.NotNil(t, res.Data)
	require.Len(t, res.Data.Education, 1)
	assert.Equal(t, "東京大学", res.Data.Education[0].SchoolName)
	assert.Equal(t, "工学部", res.Data.Education[0].Faculty)
	assert.Equal(t, "学士", res.Data.Education[0].Degree)
	require.NotNil(t, res.NextStep)
	assert.Equal(t, session.StepWork, *res.NextStep)
	assert.True(t, res.IsStepComplete)
}

func TestFallbackFullWidthSpace(t *testing.T) {
	res := extractFallback(t, session.StepWork, "株式会社ABC　営業　主任")

	require.Len(t, res.Data.WorkHistories, 1)
	assert.Equal(t, "株式会社ABC", res.Data.WorkHistories[0].CompanyName)
	assert.Equal(t, "営業 主任", res.Data.WorkHistories[0].Position)
}

func TestFallbackSkills(t *testing.T) {
	res := extractFallback(t, session.StepSkills, "Excel, 普通自動車免許、TOEIC800点")

	assert.Equal(t, []string{"Excel", "普通自動車免許", "TOEIC800点"}, res.Data.Skills)
	assert.NotNil(t, res.Data.Certifications)
	assert.Empty(t, res.Data.Certifications)
	assert.Equal(t, session.StepPR, *res.NextStep)
}

func TestFallbackPR(t *testing.T) {
	short := extractFallback(t, session.StepPR, "粘り強さ")
	require.NotNil(t, short.Data.SelfPR)
	assert.Equal(t, "私の強みは粘り強さです。これまでの経験を活かし、御社に貢献したいと考えております。", *short.Data.SelfPR)

	long := "粘り強く最後までやり遂げる力とチームでの協調性が私の強みです"
	res := extractFallback(t, session.StepPR, long)
	assert.Equal(t, long, *res.Data.SelfPR)
	assert.Equal(t, session.StepComplete, *res.NextStep)
}

func TestFallbackSkip(t *testing.T) {
	for _, msg := range []string{"なし", "特にないです", "Skip", "次へ", ""} {
		res := extractFallback(t, session.StepWork, msg)
		assert.Nil(t, res.Data, msg)
		require.NotNil(t, res.NextStep, msg)
		assert.Equal(t, session.StepSkills, *res.NextStep, msg)
	}
}

func TestFallbackComplete(t *testing.T) {
	res := extractFallback(t, session.StepComplete, "自己PRを変えて")

	assert.Nil(t, res.Data)
	assert.Nil(t, res.NextStep)
	assert.Equal(t, completeMessage, res.Message)
}

func TestFallbackUnknownStepActsAsEducation(t *testing.T) {
	res := extractFallback(t, session.Step("bogus"), "東京大学 工学部")
	assert.Equal(t, session.StepWork, *res.NextStep)
}

func TestFallbackReplyAsksAboutNextStep(t *testing.T) {
	keyword := map[session.Step]string{
		session.StepWork:     "職歴",
		session.StepSkills:   "スキル・資格",
		session.StepPR:       "自己PR",
		session.StepComplete: "完了",
	}
	inputs := []string{"東京大学 工学部", "なし", "株式会社ABC 営業", "Excel", "協調性"}
	for _, step := range []session.Step{session.StepEducation, session.StepWork, session.StepSkills, session.StepPR} {
		for _, msg := range inputs {
			res := extractFallback(t, step, msg)
			assert.Contains(t, res.Message, keyword[step.Next()], "step=%s msg=%q", step, msg)
		}
	}
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()
	assert.True(t, c.Classify("NEXT please").Skip)
	assert.True(t, c.Classify("N/A").Skip)
	assert.False(t, c.Classify("東京大学").Skip)

	custom := NewKeywordClassifier("pass")
	assert.True(t, custom.Classify("I pass").Skip)
	assert.False(t, custom.Classify("なし").Skip)
}

type alwaysSkip struct{}

func (alwaysSkip) Classify(string) Intent { return Intent{Skip: true} }

func TestFallbackUsesInjectedClassifier(t *testing.T) {
	res, err := NewFallbackExtractor(alwaysSkip{}).Extract(context.Background(), Input{Step: session.StepEducation, Message: "東京大学 工学部"})
	require.NoError(t, err)
	assert.Nil(t, res.Data)
	assert.Equal(t, session.StepWork, *res.NextStep)
}
