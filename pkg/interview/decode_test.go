package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/rirekisho/pkg/session"
)

func TestDecodeResult(t *testing.T) {
	raw := "```json\n" + `{
  "message": "ありがとうございます！",
  "extractedData": {"education": [{"schoolName": "東京大学", "faculty": "工学部", "degree": "学士", "startDate": "", "endDate": ""}]},
  "isStepComplete": true,
  "nextStep": "work"
}` + "\n```"

	res, err := decodeResult(raw)
	require.NoError(t, err)

	assert.Equal(t, "ありがとうございます！", res.Message)
	assert.True(t, res.IsStepComplete)
	require.NotNil(t, res.NextStep)
	assert.Equal(t, session.StepWork, *res.NextStep)
	require.NotNil(t, res.Data)
	require.Len(t, res.Data.Education, 1)
	assert.Equal(t, "東京大学", res.Data.Education[0].SchoolName)
	assert.Nil(t, res.Data.WorkHistories)
}

func TestDecodeResultNulls(t *testing.T) {
	res, err := decodeResult(`{"message":"ok","extractedData":null,"isStepComplete":true,"nextStep":null}`)
	require.NoError(t, err)
	assert.Nil(t, res.Data)
	assert.Nil(t, res.NextStep)
}

func TestDecodeResultRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"not json":              "申し訳ありません",
		"missing message":       `{"isStepComplete":true,"nextStep":"work"}`,
		"empty message":         `{"message":"  ","isStepComplete":true}`,
		"message not string":    `{"message":1,"isStepComplete":true}`,
		"missing completion":    `{"message":"ok","nextStep":"work"}`,
		"completion as string":  `{"message":"ok","isStepComplete":"true"}`,
		"unknown step":          `{"message":"ok","isStepComplete":true,"nextStep":"interview"}`,
		"data as array":         `{"message":"ok","isStepComplete":true,"extractedData":[]}`,
		"data as string":        `{"message":"ok","isStepComplete":true,"extractedData":"none"}`,
		"unknown top-level key": `{"message":"ok","isStepComplete":true,"confidence":0.9}`,
		"unknown data key":      `{"message":"ok","isStepComplete":true,"extractedData":{"hobby":"囲碁"}}`,
		"skills not strings":    `{"message":"ok","isStepComplete":true,"extractedData":{"skills":[1,2]}}`,
	}
	for name, raw := range cases {
		_, err := decodeResult(raw)
		assert.Error(t, err, name)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}  "))
}
