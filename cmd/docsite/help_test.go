package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"build", "--base-url"},
		{"serve", "--no-reload"},
		{"render", "--toc"},
		{"init", "--format"},
		{"doctor", "--json"},
		{"completion", "eval \"$(docsite completion bash)\""},
		{"version", "Usage: docsite version"},
		{"help", "Usage: docsite help"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			if err := runHelp([]string{tt.topic}, env); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("help %s missing %q:\n%s", tt.topic, tt.want, stdout.String())
			}
		})
	}
}

func TestRunHelp_Unknown(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil)
	err := runHelp([]string{"publish"}, env)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
	if !strings.Contains(stderr.String(), "Commands:") {
		t.Error("unknown topic should print the command list")
	}
}
