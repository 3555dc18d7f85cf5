package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
}

func TestTemplate(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	if got := Template(); !strings.Contains(got, "version v9.9.9") || !strings.HasPrefix(got, "{{.Name}}") {
		t.Errorf("Template() = %q", got)
	}
}
