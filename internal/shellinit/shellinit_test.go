package shellinit

import (
	"strings"
	"testing"
)

func TestScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			script, err := Script(shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(script, "quickswitch") {
				t.Error("script does not invoke the binary")
			}
			if !strings.Contains(script, "cd") {
				t.Error("script does not cd")
			}
		})
	}
}

func TestScriptUnknownShell(t *testing.T) {
	if _, err := Script("powershell"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
