// Package shellinit emits shell wrapper functions. The binary prints
// the selected path on stderr so the wrapper can cd while the TUI owns
// the terminal.
package shellinit

import "fmt"

const bashScript = `qs() {
    local dest
    dest=$(command quickswitch "$@" 2>&1 >/dev/tty)
    if [ -n "$dest" ] && [ -d "$dest" ]; then
        cd "$dest" || return
    fi
}
`

const fishScript = `function qs
    set -l dest (command quickswitch $argv 2>&1 >/dev/tty)
    if test -n "$dest" -a -d "$dest"
        cd $dest
    end
end
`

// Script returns the wrapper function for the named shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash", "zsh":
		return bashScript, nil
	case "fish":
		return fishScript, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (want bash, zsh, or fish)", shell)
	}
}
