// Package cli holds terminal helpers for the command-line frontends.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// PassphraseEnv is checked before prompting, so scripts and the MCP server
// (which has no terminal) can supply the passphrase non-interactively.
const PassphraseEnv = "REPVAULT_PASSPHRASE"

// Passphrase returns the session passphrase: from the environment if set,
// otherwise read from the terminal without echo.
func Passphrase() (string, error) {
	if v := os.Getenv(PassphraseEnv); v != "" {
		return v, nil
	}
	return promptPassphrase("Passphrase: ")
}

func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := readPassphraseNoEcho(os.Stdin)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	pass := strings.TrimSpace(string(line))
	if pass == "" {
		return "", errors.New("passphrase must not be empty")
	}
	return pass, nil
}
