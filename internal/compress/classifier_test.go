package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVerbose(t *testing.T) {
	tests := []struct {
		command string
		verbose bool
	}{
		{"npm install", true},
		{"cargo build --release", true},
		{"docker-compose up -d", true},
		{"apt-get install -y curl", true},
		{"git status", false},
		{"echo hello", false},
		{"cd /tmp && npm test", true},
		{"echo start; make all", true},
		{"ls | grep foo", false},
		{"ls | docker ps", true},
		{"true || yarn build", true},
		{"", false},
		{"npmx run", false},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.verbose, IsVerbose(tt.command))
		})
	}
}
