package app

import (
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{name: "empty defaults to serve", args: []string{}, want: CommandServe},
		{name: "serve", args: []string{"serve"}, want: CommandServe},
		{name: "migrate", args: []string{"migrate"}, want: CommandMigrate},
		{name: "migrate with direction", args: []string{"migrate", "down", "2"}, want: CommandMigrate},
		{name: "healthcheck", args: []string{"healthcheck"}, want: CommandHealthcheck},
		{name: "unknown defaults to serve", args: []string{"worker"}, want: CommandServe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCommand(tt.args); got != tt.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseMigrateArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want MigrateArgs
	}{
		{name: "no args applies all", args: nil, want: MigrateArgs{Direction: MigrateUp}},
		{name: "up", args: []string{"up"}, want: MigrateArgs{Direction: MigrateUp}},
		{name: "down defaults to one step", args: []string{"down"}, want: MigrateArgs{Direction: MigrateDown, Steps: 1}},
		{name: "down with steps", args: []string{"down", "3"}, want: MigrateArgs{Direction: MigrateDown, Steps: 3}},
		{name: "version", args: []string{"version"}, want: MigrateArgs{Direction: MigrateVersion}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMigrateArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseMigrateArgs(%v) returned error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("ParseMigrateArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseMigrateArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown direction", args: []string{"sideways"}},
		{name: "non numeric steps", args: []string{"down", "all"}},
		{name: "zero steps", args: []string{"down", "0"}},
		{name: "negative steps", args: []string{"down", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMigrateArgs(tt.args); err == nil {
				t.Errorf("ParseMigrateArgs(%v) expected error", tt.args)
			}
		})
	}
}
