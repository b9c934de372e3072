package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Prefixes(t *testing.T) {
	tests := []struct {
		gen    func() string
		prefix string
	}{
		{NewActorID, PrefixActor},
		{NewComponentID, PrefixComponent},
		{NewCameraID, PrefixCamera},
		{NewLayerID, PrefixLayer},
		{NewSceneID, PrefixScene},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			id := tt.gen()
			assert.True(t, strings.HasPrefix(id, tt.prefix+"_"))
			require.NoError(t, Validate(id, tt.prefix))
		})
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewActorID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValidate_Errors(t *testing.T) {
	assert.Error(t, Validate("not an id", PrefixActor))
	assert.Error(t, Validate(NewCameraID(), PrefixActor))
}
