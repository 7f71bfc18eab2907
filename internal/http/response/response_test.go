package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKUser(t *testing.T) {
	resp := OKUser(map[string]any{"id": 1, "username": "student"})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"success":true`)
	assert.Contains(t, string(body), `"username":"student"`)
	assert.NotContains(t, string(body), `"message"`)
}

func TestError(t *testing.T) {
	resp := Error("course not found")

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"course not found"}`, string(body))
}

func TestFieldConflict(t *testing.T) {
	resp := FieldConflict("email already in use", "email")

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"email already in use","field":"email"}`, string(body))
}
