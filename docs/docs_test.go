package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swaggo/swag"
)

func TestSwaggerSpecRenders(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	assert.NoError(t, err)

	var spec map[string]any
	assert.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "/api/v1", spec["basePath"])

	paths, ok := spec["paths"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, paths, "/transactions")
	assert.Contains(t, paths, "/recurring/process")
	assert.Contains(t, paths, "/reports/net-worth")
}
