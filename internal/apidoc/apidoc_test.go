package apidoc

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceboard/backend/internal/dto"
	"github.com/raceboard/backend/internal/model"
)

func TestOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/v1/drivers/{driver_id}/documents/{document_id}", OpenAPIPath("/v1/drivers/:driver_id/documents/:document_id"))
	assert.Equal(t, "/v2/classifiers/types", OpenAPIPath("/v2/classifiers/types"))
}

func TestAddDocumentsParametersAndEnums(t *testing.T) {
	r := New("raceboard", "test")

	require.NoError(t, r.Add(Route{
		Method:   http.MethodGet,
		Path:     "/v3/drivers/:driver_id/records",
		Summary:  "Driver records",
		Tag:      "Drivers",
		Request:  &dto.GetDriverRecordsRequest{},
		Response: []dto.DriverRecordResponse{},
		Statuses: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}))

	op := r.Document().Paths.Find("/v3/drivers/{driver_id}/records").Get
	require.NotNil(t, op)
	assert.Nil(t, op.RequestBody)
	assert.Nil(t, op.Security)

	require.Len(t, op.Parameters, 3)
	assert.Equal(t, "driver_id", op.Parameters[0].Value.Name)
	assert.Equal(t, openapi3.ParameterInPath, op.Parameters[0].Value.In)

	params := map[string]*openapi3.Parameter{}
	for _, p := range op.Parameters {
		params[p.Value.Name] = p.Value
	}
	assert.False(t, params["c_race_type"].Required)
	assert.Equal(t, []any{1, 2}, params["c_race_type"].Schema.Value.Enum)
	assert.Contains(t, params["c_race_type"].Description, "1 - Time attack, 2 - Drag")
	assert.True(t, params["year"].Required)

	assert.NotNil(t, op.Responses.Status(http.StatusOK))
	assert.NotNil(t, op.Responses.Status(http.StatusBadRequest))
	assert.NotNil(t, op.Responses.Status(http.StatusInternalServerError))
}

func TestAddDocumentsBodyAndSecurity(t *testing.T) {
	r := New("raceboard", "test")

	require.NoError(t, r.Add(Route{
		Method:   http.MethodPost,
		Path:     "/v1/drivers/:driver_id/documents",
		Request:  &dto.AddDriverDocumentRequest{},
		Response: dto.DriverDocumentResponse{},
		Statuses: []int{http.StatusBadRequest},
		Roles:    []model.AppRole{model.AppRoleDriver},
	}))

	op := r.Document().Paths.Find("/v1/drivers/{driver_id}/documents").Post
	require.NotNil(t, op)
	require.NotNil(t, op.Security)
	assert.Contains(t, op.Description, "driver")

	require.NotNil(t, op.RequestBody)
	body := op.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.Contains(t, body.Properties, "c_document_type")
	assert.Contains(t, body.Properties, "file")
	assert.NotContains(t, body.Properties, "driver_id")
	assert.Equal(t, "Document number", body.Properties["number"].Value.Description)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"bearerAuth"`)
}
