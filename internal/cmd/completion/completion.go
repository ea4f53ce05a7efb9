// Package completion installs and removes shell completion scripts.
package completion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/agentstation/repurpose/internal/cmd/emoji"
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Shell names a shell with installable completions.
type Shell string

// Supported shells.
const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// Shells lists the shells Install and Uninstall support.
var Shells = []Shell{Bash, Zsh, Fish}

// Generate writes the completion script of root for shell to w.
func Generate(w io.Writer, root *cobra.Command, shell Shell) error {
	switch shell {
	case Bash:
		return root.GenBashCompletion(w)
	case Zsh:
		return root.GenZshCompletion(w)
	case Fish:
		return root.GenFishCompletion(w, true)
	default:
		return errors.NewValidationError("shell", shell, fmt.Sprintf("unsupported shell %q", shell))
	}
}

// Install writes the completion script of root to the standard location
// for shell, replacing any previous script atomically.
func Install(w io.Writer, root *cobra.Command, shell Shell) (string, error) {
	path, err := Path(shell, root.Name())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Generate(&buf, root, shell); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	fmt.Fprintf(w, "%s %s completions installed to: %s\n", emoji.Success, shell, path)
	return path, nil
}

// Uninstall removes the script Install writes for shell and any copy in
// the other common locations. It reports whether anything was removed.
func Uninstall(w io.Writer, shell Shell, name string) (bool, error) {
	path, err := Path(shell, name)
	if err != nil {
		return false, err
	}

	removed := false
	for _, p := range append([]string{path}, commonPaths(shell, name)...) {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if err := os.Remove(p); err != nil {
			fmt.Fprintf(w, "%s Could not remove %s (try: sudo rm -f %s)\n", emoji.Error, p, p)
			continue
		}
		fmt.Fprintf(w, "%s Removed %s completions from: %s\n", emoji.Success, shell, p)
		removed = true
	}
	if !removed {
		fmt.Fprintf(w, "%s No %s completions found\n", emoji.Info, shell)
	}
	return removed, nil
}

// Path returns where Install puts the script of program name for shell.
// Homebrew prefixes win over the user's home directory.
func Path(shell Shell, name string) (string, error) {
	rel, ok := map[Shell]struct{ brew, home string }{
		Bash: {filepath.Join("etc", "bash_completion.d", name), filepath.Join(".bash_completion.d", name)},
		Zsh:  {filepath.Join("share", "zsh", "site-functions", "_"+name), filepath.Join(".zsh", "completions", "_"+name)},
		Fish: {filepath.Join("share", "fish", "vendor_completions.d", name+".fish"), filepath.Join(".config", "fish", "completions", name+".fish")},
	}[shell]
	if !ok {
		return "", errors.NewValidationError("shell", shell, fmt.Sprintf("unsupported shell %q", shell))
	}

	if prefix := brewPrefix(); prefix != "" {
		return filepath.Join(prefix, rel.brew), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapIO("resolve", "home directory", err)
	}
	return filepath.Join(home, rel.home), nil
}

func brewPrefix() string {
	if prefix := os.Getenv("HOMEBREW_PREFIX"); prefix != "" {
		return prefix
	}
	for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
		if _, err := os.Stat(filepath.Join(prefix, "bin", "brew")); err == nil {
			return prefix
		}
	}
	return ""
}

// commonPaths are system locations packages and older installs use.
func commonPaths(shell Shell, name string) []string {
	switch shell {
	case Bash:
		return []string{
			"/etc/bash_completion.d/" + name,
			"/usr/share/bash-completion/completions/" + name,
		}
	case Zsh:
		return []string{
			"/usr/local/share/zsh/site-functions/_" + name,
			"/usr/share/zsh/site-functions/_" + name,
		}
	case Fish:
		return []string{
			"/usr/share/fish/completions/" + name + ".fish",
			"/usr/local/share/fish/completions/" + name + ".fish",
		}
	}
	return nil
}
