package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-url=http://api", "-store", "memory"},
			allowedFlags: []string{"-url"},
			want:         []string{"-url=http://api"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-store", "sqlite"},
			allowedFlags: []string{"-c", "-store"},
			want:         []string{"-c", "-store", "sqlite"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestLookupString(t *testing.T) {
	assert.Equal(t, "b.json", LookupString([]string{"-c", "a.json", "-config", "b.json"}, "c", "config"))
	assert.Equal(t, "", LookupString([]string{"-x", "1"}, "c"))
	assert.Equal(t, "v", LookupString([]string{"-env=v"}, "env"))
}

func TestConfigFileFlags_ReadOSArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"fleetdesk", "-config", "/etc/fleetdesk.json", "-env", "/etc/fleetdesk.env"}
	assert.Equal(t, "/etc/fleetdesk.json", JsonConfigFlags())
	assert.Equal(t, "/etc/fleetdesk.env", EnvFileFlags())

	os.Args = []string{"fleetdesk"}
	assert.Empty(t, JsonConfigFlags())
	assert.Equal(t, ".env", EnvFileFlags())
}
