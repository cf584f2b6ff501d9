package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String("digitizer")
	if !strings.HasPrefix(s, "digitizer "+Version) || !strings.Contains(s, GitCommit) {
		t.Errorf("String() = %q", s)
	}
}
