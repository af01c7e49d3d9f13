package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"東京大学", "工学部", "情報工学科"}, Fields(" 東京大学　工学部 情報工学科 "))
	assert.Empty(t, Fields("   "))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Excel", "普通自動車免許"}, SplitList("Excel, 普通自動車免許"))
	assert.Equal(t, []string{"Word", "簿記2級", "TOEIC800点"}, SplitList("Word、簿記2級，TOEIC800点"))
}

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("NEXT please", []string{"next"}))
	assert.True(t, ContainsAnyFold("特になし", []string{"なし"}))
	assert.False(t, ContainsAnyFold("東京大学", []string{"next", "", "なし"}))
}

func TestCompactList(t *testing.T) {
	assert.Equal(t, []string{"Excel", "Go", "go!"}, CompactList([]string{" Excel", "excel", "", "Go", "go!"}))
	assert.Equal(t, []string{"C++", "C#", "C", "Go"}, CompactList([]string{"C++", "C#", "C", "Go", "c++", "GO"}))
	assert.NotNil(t, CompactList([]string{}))
	assert.Nil(t, CompactList(nil))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ci/cd", NormalizeText("CI/CD"))
	assert.Equal(t, "visual basic", NormalizeText(" Visual　 BASIC "))
	assert.Equal(t, "普通自動車免許", NormalizeText("普通自動車免許"))
}
