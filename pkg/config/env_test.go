package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("TEST_STRING_UNSET", "default"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	assert.Equal(t, 42, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_INT_BAD", 1))
	assert.Equal(t, 7, GetEnvInt("TEST_INT_UNSET", 7))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "1.5")
	t.Setenv("TEST_FLOAT_BAD", "x")

	assert.InDelta(t, 1.5, GetEnvFloat("TEST_FLOAT", 0), 1e-9)
	assert.InDelta(t, 2.0, GetEnvFloat("TEST_FLOAT_BAD", 2.0), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "true", def: false, want: true},
		{value: "1", def: false, want: true},
		{value: "False", def: true, want: false},
		{value: "yes", def: true, want: true},
		{value: "", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("TEST_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION_BAD", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "password, 123456,,admin ")
	t.Setenv("TEST_LIST_EMPTY", " , ,")

	assert.Equal(t, []string{"password", "123456", "admin"}, GetEnvStringList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_LIST_EMPTY", []string{"x"}))
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))

	assert.NoError(t, ValidateDurationRange(5*time.Second, time.Second, 10*time.Second))
	assert.Error(t, ValidateDurationRange(20*time.Second, time.Second, 10*time.Second))
	assert.Error(t, ValidateDurationRange(0, time.Second, 10*time.Second))
}
