package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRunWithoutGit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args opens the board", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "help shorthand after command", args: []string{"add", "-h"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "version shorthand", args: []string{"-v"}, want: true},
		{name: "help subcommand", args: []string{"help", "start"}, want: true},
		{name: "completion", args: []string{"completion", "bash"}, want: true},
		{name: "board command", args: []string{"list"}, want: false},
		{name: "init needs a repository", args: []string{"init"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutGit(tt.args))
		})
	}
}
