package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version, GitCommit = "v1.2.0", "abc1234"

	info := Get()
	if info.Version != "v1.2.0" || info.GitCommit != "abc1234" {
		t.Errorf("Get() = %+v", info)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
	if s := String(); !strings.HasPrefix(s, "v1.2.0 (commit abc1234") {
		t.Errorf("String() = %q", s)
	}
}
