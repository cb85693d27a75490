package resolver

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"resolver-wizard/internal/schema"
)

func TestNewOptions(t *testing.T) {
	o := NewOptions()
	assert.Same(t, schema.Default(), o.Registry)
	assert.NotNil(t, o.Logger)

	logger := slog.Default()
	reg := &schema.Registry{}

	o = NewOptions(WithLogger(logger), WithRegistry(reg))
	assert.Same(t, logger, o.Logger)
	assert.Same(t, reg, o.Registry)
}
