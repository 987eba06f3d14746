package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{shell: "bash", want: []string{"# bash completion for ncli", "__start_ncli", "__completeNoDesc"}},
		{shell: "zsh", want: []string{"#compdef ncli", "_ncli()"}},
		{shell: "fish", want: []string{"fish completion for ncli", "complete -c ncli"}},
		{shell: "powershell", want: []string{"Register-ArgumentCompleter"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			stdout, _, err := runCLI(t, "completion", tt.shell)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	_, _, err := runCLI(t, "completion", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestCompletionRegistersCommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	joined := strings.Join(names, " ")

	for _, want := range []string{"services", "hosts", "show", "export", "init", "version", "completion"} {
		assert.Contains(t, joined, want)
	}
}
