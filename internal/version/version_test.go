package version

import "testing"

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version == "" || info.BuildDate == "" || info.GitCommit == "" {
		t.Errorf("expected all fields to be populated, got %+v", info)
	}
}

func TestGetLinkerValues(t *testing.T) {
	oldVersion, oldDate, oldCommit := version, buildDate, gitCommit
	t.Cleanup(func() { version, buildDate, gitCommit = oldVersion, oldDate, oldCommit })

	version, buildDate, gitCommit = "v1.2.0", "2024-05-31T16:08:37Z", "abc1234"

	info := Get()
	if info.Version != "v1.2.0" || info.BuildDate != "2024-05-31T16:08:37Z" || info.GitCommit != "abc1234" {
		t.Errorf("expected linker values to take precedence, got %+v", info)
	}
}

func TestShortRevision(t *testing.T) {
	if got := shortRevision("0123456789abcdef"); got != "0123456" {
		t.Errorf("shortRevision() = %q", got)
	}
	if got := shortRevision("abc"); got != "abc" {
		t.Errorf("shortRevision() = %q", got)
	}
}
