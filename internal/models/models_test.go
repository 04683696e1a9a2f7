package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	assert.NoError(t, err)
	return string(data)
}
