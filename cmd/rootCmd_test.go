package cmd

import "testing"

func setDefaults() {
	portSpec = "1-1024"
	workers = 100
	timeoutSec = 1.0
	dnsServer = ""
}

func TestRun_InvalidSpec(t *testing.T) {
	setDefaults()
	portSpec = "22,abc"
	if code := run("127.0.0.1"); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_EmptyPortSet(t *testing.T) {
	setDefaults()
	portSpec = "0,70000"
	if code := run("127.0.0.1"); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	setDefaults()
	workers = 0
	if code := run("127.0.0.1"); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}

	setDefaults()
	timeoutSec = -1
	if code := run("127.0.0.1"); code != exitUsage {
		t.Errorf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRun_ResolutionFailure(t *testing.T) {
	setDefaults()
	// .invalid never resolves; no probe must be dispatched
	if code := run("host.invalid"); code != exitResolve {
		t.Errorf("exit code = %d, want %d", code, exitResolve)
	}
}
