package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/pkg/domain"
)

// Stdin is the target that reads the document from standard input.
const Stdin = "-"

// BuildTarget builds what a command argument names: "-" reads stdin, an
// existing file is read directly, anything else is a document name for the
// engine's loader.
func BuildTarget(ctx context.Context, engine *portgraph.Engine, target string, stdin io.Reader) (*domain.Graph, error) {
	if target == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return engine.BuildBytes(ctx, data, "")
	}
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return engine.BuildFile(ctx, target)
	}
	return engine.Load(ctx, target)
}

// ExitCode maps a command error to a process exit code: 2 for build
// failures, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if domain.KindOf(err) != "" {
		return 2
	}
	return 1
}
