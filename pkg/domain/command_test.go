package domain

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    Command
		ok      bool
	}{
		{name: "switch", payload: []byte("switch"), want: CommandSwitch, ok: true},
		{name: "rev-switch", payload: []byte("rev-switch"), want: CommandReverseSwitch, ok: true},
		{name: "trailing newline is noise", payload: []byte("switch\n"), ok: false},
		{name: "prefix is noise", payload: []byte("swit"), ok: false},
		{name: "empty", payload: nil, ok: false},
		{name: "upper case", payload: []byte("SWITCH"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommand(tt.payload)
			if ok != tt.ok {
				t.Fatalf("ParseCommand(%q) ok = %v, want %v", tt.payload, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}

func TestCommand_Direction(t *testing.T) {
	if !CommandSwitch.Forward() {
		t.Error("switch should walk forward")
	}
	if CommandReverseSwitch.Forward() {
		t.Error("rev-switch should walk backward")
	}
	if got := CommandReverseSwitch.Direction(); got != "backward" {
		t.Errorf("Direction() = %q, want backward", got)
	}
}
