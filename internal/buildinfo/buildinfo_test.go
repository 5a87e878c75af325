package buildinfo

import "testing"

func TestSummary(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	defer func() {
		Version, Commit, Date = oldVersion, oldCommit, oldDate
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{name: "defaults", want: "dev"},
		{name: "version only", version: "0.1.0", want: "0.1.0"},
		{name: "short commit", version: "0.1.0", commit: "abc", want: "0.1.0 (commit=abc)"},
		{name: "long commit truncated", version: "0.1.0", commit: "0123456789abcdef", want: "0.1.0 (commit=0123456)"},
		{name: "commit and date", version: "1.2.3", commit: "deadbeef", date: "2026-01-02", want: "1.2.3 (commit=deadbee, date=2026-01-02)"},
		{name: "date only", date: "2026-01-02", want: "dev (date=2026-01-02)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date
			if got := Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
