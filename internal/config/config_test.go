package config

import "testing"

func TestSSHPortFromEnv(t *testing.T) {
	t.Setenv("APPWATCH_SSH_PORT", "2222")
	if got := Load().SSHPort; got != 2222 {
		t.Errorf("SSHPort = %d, expected 2222", got)
	}
}

func TestSSHPortDefault(t *testing.T) {
	t.Setenv("APPWATCH_SSH_PORT", "")
	if got := Load().SSHPort; got != 23234 {
		t.Errorf("SSHPort = %d, expected default 23234", got)
	}
}

func TestSSHPortInvalidFallsBack(t *testing.T) {
	t.Setenv("APPWATCH_SSH_PORT", "not-a-port")
	if got := Load().SSHPort; got != 23234 {
		t.Errorf("SSHPort = %d, expected default 23234 for a bad value", got)
	}
}
