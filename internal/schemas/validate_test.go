package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidate_ValidPayload(t *testing.T) {
	payload := []byte(`{
		"name": "Ana",
		"skills": {"python": 4},
		"experience_years": 6,
		"desired_salary": "45k-55k",
		"motivations": ["compensation"]
	}`)

	assert.NoError(t, ValidateCandidate(payload))
}

func TestValidateCandidate_WrongFieldType(t *testing.T) {
	// motivations must be an array of strings
	payload := []byte(`{"motivations": "compensation"}`)

	err := ValidateCandidate(payload)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "motivations", ve.Errors[0].Field)
}

func TestValidateCandidate_NotAnObject(t *testing.T) {
	err := ValidateCandidate([]byte(`[1, 2, 3]`))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestValidateCandidate_MalformedJSON(t *testing.T) {
	err := ValidateCandidate([]byte(`{not json`))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "(root)")
}

func TestValidateCandidate_UnknownFieldsAllowed(t *testing.T) {
	payload := []byte(`{"questionnaire_extra": {"anything": true}}`)
	assert.NoError(t, ValidateCandidate(payload))
}

func TestValidateJob_ValidPayload(t *testing.T) {
	payload := []byte(`{
		"title": "Backend Engineer",
		"skills": {"go": {"importance": 5, "required": true}},
		"salary": {"min": 50000, "max": 65000},
		"remote_mode": "hybrid",
		"contract_type": "cdi"
	}`)

	assert.NoError(t, ValidateJob(payload))
}

func TestValidateJob_BooleanRemoteModeAllowed(t *testing.T) {
	// Legacy producers send remote as a boolean.
	assert.NoError(t, ValidateJob([]byte(`{"remote_policy": true}`)))
}

func TestValidateJob_WrongFieldType(t *testing.T) {
	err := ValidateJob([]byte(`{"contract_type": 42}`))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "contract_type", ve.Errors[0].Field)
}

func TestValidateJSONString_AdHocSchema(t *testing.T) {
	schema := `{"type": "object", "required": ["id"]}`

	assert.NoError(t, ValidateJSONString(schema, `{"id": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
}
