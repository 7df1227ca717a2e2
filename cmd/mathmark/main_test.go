package main

import (
	"strings"
	"testing"
)

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{"no command", []string{"mathmark"}, ExitUsage, "", "Usage:"},
		{"unknown command", []string{"mathmark", "bogus"}, ExitUsage, "", "unknown command: bogus"},
		{"version", []string{"mathmark", "version"}, ExitSuccess, "mathmark " + Version, ""},
		{"--version", []string{"mathmark", "--version"}, ExitSuccess, "mathmark", ""},
		{"help", []string{"mathmark", "help", "quiz"}, ExitSuccess, "mathmark quiz", ""},
		{"command --help", []string{"mathmark", "render", "--help"}, ExitSuccess, "", "Usage: mathmark render"},
		{"bad flag", []string{"mathmark", "quiz", "--bogus"}, ExitUsage, "", "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			code := runMain(tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d; stderr: %s", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stdout.String(), tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, env.stdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantErr, env.stderr)
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"render", "-v"}, true},
		{[]string{"sheet", "--verbose", "bank.csv"}, true},
		{[]string{"render", "--", "-v"}, false},
		{[]string{"render", "-vq"}, false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
