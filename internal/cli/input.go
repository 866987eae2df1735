package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/codalotl/redline/internal/diff"
	qcli "github.com/codalotl/redline/internal/q/cli"
)

const stdinArg = "-"

// readInputs reads the ORIGINAL and CORRECTED args. At most one of them may be "-" (stdin).
func readInputs(in io.Reader, originalArg, correctedArg string) (original, corrected []byte, err error) {
	if originalArg == stdinArg && correctedArg == stdinArg {
		return nil, nil, qcli.Usagef("only one of ORIGINAL and CORRECTED may be read from stdin")
	}
	if original, err = readInput(in, originalArg); err != nil {
		return nil, nil, err
	}
	if corrected, err = readInput(in, correctedArg); err != nil {
		return nil, nil, err
	}
	return original, corrected, nil
}

func readInput(in io.Reader, arg string) ([]byte, error) {
	if arg == stdinArg {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

// loadPatches reads a JSON patch file and rejects it if it holds more than maxPatches patches. An empty path means no patches.
func loadPatches(path string, maxPatches int) ([]diff.Patch, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read patches: %w", err)
	}
	defer f.Close()
	patches, err := diff.DecodePatches(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := diff.CheckPatches(maxPatches, patches); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return patches, nil
}
