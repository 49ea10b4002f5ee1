package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{"String", `"free text"`, TextAnswer("free text")},
		{"BlankStringIsEmpty", `"   "`, AnswerValue{}},
		{"Null", `null`, AnswerValue{}},
		{"Object", `{"choice":"Online"}`, StructuredAnswer(map[string]interface{}{"choice": "Online"})},
		{"EmptyObjectIsEmpty", `{}`, AnswerValue{}},
		{"NumberWrappedInValue", `4`, StructuredAnswer(map[string]interface{}{"value": float64(4)})},
		{"BoolWrappedInValue", `true`, StructuredAnswer(map[string]interface{}{"value": true})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestAnswerValueMarshal(t *testing.T) {
	data, err := json.Marshal(TextAnswer("hello"))
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, string(data))

	data, err = json.Marshal(StructuredAnswer(map[string]interface{}{"value": 3}))
	require.NoError(t, err)
	assert.Equal(t, `{"value":3}`, string(data))

	data, err = json.Marshal(AnswerValue{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

// SetAnswer ต้องไม่ปล่อยให้ responseText กับ responseData ถูกตั้งพร้อมกัน
func TestSetAnswerMutualExclusion(t *testing.T) {
	var r SurveyResponse

	r.SetAnswer(TextAnswer("typed"))
	require.NotNil(t, r.ResponseText)
	assert.Equal(t, "typed", *r.ResponseText)
	assert.Nil(t, r.ResponseData)

	r.SetAnswer(StructuredAnswer(map[string]interface{}{"value": 5}))
	assert.Nil(t, r.ResponseText)
	assert.Equal(t, map[string]interface{}{"value": 5}, r.ResponseData)

	r.SetAnswer(AnswerValue{})
	assert.Nil(t, r.ResponseText)
	assert.Nil(t, r.ResponseData)
}

func TestAnswerRoundTrip(t *testing.T) {
	var r SurveyResponse
	r.SetAnswer(TextAnswer("keep me"))
	assert.Equal(t, TextAnswer("keep me"), r.Answer())

	r.SetAnswer(StructuredAnswer(map[string]interface{}{"value": 2}))
	assert.Equal(t, AnswerStructured, r.Answer().Kind)

	r.SetAnswer(AnswerValue{})
	assert.True(t, r.Answer().IsEmpty())
}
