package overlap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"subalign/internal/logging"
)

// usableScore is the ratio below which the incumbent alignment is considered
// poor enough to hand over to an external fallback aligner.
const usableScore = 2.0

// NeedsFallback reports whether the best score warrants delegation.
func NeedsFallback(r float64) bool {
	return r < usableScore
}

// RunFallback resolves name on PATH and runs it against the two input files,
// streaming its stdout to w. The fallback's output becomes the final result.
func RunFallback(ctx context.Context, name, srcPath, trgPath string, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	resolved, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("fallback aligner %q not on PATH: %w", name, err)
	}

	logger.Info("delegating to fallback aligner",
		logging.String("fallback", resolved))

	cmd := exec.CommandContext(ctx, resolved, srcPath, trgPath)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("fallback aligner %s: %w", name, err)
	}
	return nil
}
