package settings_test

import (
	"testing"

	"github.com/davetashner/glmbridge/internal/settings"
	"github.com/stretchr/testify/assert"
)

func TestMergeToolLists(t *testing.T) {
	tests := []struct {
		name     string
		defaults []string
		user     []string
		want     []string
	}{
		{
			name:     "empty user returns defaults unchanged",
			defaults: []string{"Bash", "Read"},
			user:     nil,
			want:     []string{"Bash", "Read"},
		},
		{
			name:     "user entries appended in order",
			defaults: []string{"Bash"},
			user:     []string{"Read", "Write"},
			want:     []string{"Bash", "Read", "Write"},
		},
		{
			name:     "duplicates dropped case-sensitively",
			defaults: []string{"Bash", "Read"},
			user:     []string{"Read", "bash", "Bash"},
			want:     []string{"Bash", "Read", "bash"},
		},
		{
			name:     "empty strings skipped",
			defaults: []string{"", "Bash"},
			user:     []string{"", "Read"},
			want:     []string{"Bash", "Read"},
		},
		{
			name:     "both empty yields nil not empty slice",
			defaults: nil,
			user:     nil,
			want:     nil,
		},
		{
			name:     "defaults deduplicated against themselves",
			defaults: []string{"Bash", "Bash", "Read"},
			user:     nil,
			want:     []string{"Bash", "Read"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settings.MergeToolLists(tt.defaults, tt.user)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeToolLists_NilWhenEmpty(t *testing.T) {
	// Callers distinguish "no restriction" (nil) from "restricted to
	// nothing", so the empty merge must be nil.
	assert.Nil(t, settings.MergeToolLists([]string{""}, []string{""}))
}

func TestComposePromptAppend(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"both present", "first", "second", "first\n\nsecond"},
		{"first blank", "   ", "second", "second"},
		{"second blank", "first", "\t\n", "first"},
		{"both blank", " ", "", ""},
		{"order preserved", "b", "a", "b\n\na"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, settings.ComposePromptAppend(tt.a, tt.b))
		})
	}
}
