package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), ParseTimestamp("2025-06-01T10:30:00"))
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), ParseTimestamp("2025-06-01T10:30:00Z"))
	assert.Equal(t, 123000000, ParseTimestamp("2025-06-01T10:30:00.123").Nanosecond())
	assert.True(t, ParseTimestamp("").IsZero())
	assert.True(t, ParseTimestamp("yesterday").IsZero())
}

func TestLoginResponse_Roles(t *testing.T) {
	var resp LoginResponse
	body := `{"accessToken":"abc","tokenType":"Bearer","username":"a@b.c",
		"authorities":[{"authority":"ROLE_CUSTOMER"},{"authority":"ROLE_ADMIN"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, []string{"ROLE_CUSTOMER", "ROLE_ADMIN"}, resp.Roles())
}

func TestProductResponse_MissingCategory(t *testing.T) {
	var p ProductResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"Scarf","price":75000}`), &p))
	assert.Nil(t, p.Category)
	assert.Equal(t, "75000", p.Price.String())
}
