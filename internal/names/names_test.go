package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"poison", "Poison"},
		{"ogre_chieftain", "Ogre Chieftain"},
		{"player_died", "Player Died"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.in))
		})
	}
}
