package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		value  string
		set    bool
		verify bool
	}{
		{set: false, verify: false},
		{value: "1", set: true, verify: true},
		{value: "true", set: true, verify: true},
		{value: "0", set: true, verify: false},
		{value: "maybe", set: true, verify: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if tt.set {
				t.Setenv(VerifyEnvVar, tt.value)
			}

			b := NewBuilder(ConfigFromEnv()...)

			assert.Equal(t, tt.verify, b.opts.verify)
		})
	}
}

func TestWithLogger_Ignores_Nil(t *testing.T) {
	b := NewBuilder(WithLogger(nil))
	assert.NotNil(t, b.logger())

	l := zap.NewExample()
	b = NewBuilder(WithLogger(l))
	assert.Same(t, l, b.logger())
}
