package shell

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/rushsh/rush/core/config"
)

func TestExpandPrompt(t *testing.T) {
	// Keep expansion deterministic regardless of the test environment.
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	info := promptInfo{
		User: "alice",
		Host: "worklaptop",
		Wd:   "~/src",
	}

	cases := []struct {
		template string
		expected string
	}{
		{`\u@\h:\w\$ `, "alice@worklaptop:~/src$ "},
		{`\w> `, "~/src> "},
		{`$ `, "$ "},
	}

	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			assert.Equal(t, tc.expected, expandPrompt(tc.template, info))
		})
	}
}

func TestApplyStartup(t *testing.T) {
	origPath := os.Getenv("PATH")
	defer os.Setenv("PATH", origPath)
	origColor := color.NoColor
	defer func() { color.NoColor = origColor }()

	cfg := config.Default()
	cfg.PathPrepend = "/opt/rush/bin"
	cfg.Color = config.ColorNever
	ApplyStartup(cfg)

	assert.True(t, strings.HasPrefix(os.Getenv("PATH"), "/opt/rush/bin"+string(os.PathListSeparator)))
	assert.True(t, color.NoColor)

	cfg.Color = config.ColorAlways
	ApplyStartup(cfg)
	assert.False(t, color.NoColor)
}

func TestExpandPromptRoot(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	info := promptInfo{User: "root", Host: "box", Wd: "/", Root: true}
	assert.Equal(t, "root@box:/# ", expandPrompt(`\u@\h:\w\$ `, info))
}
