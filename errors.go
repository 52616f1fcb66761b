package ffbuild

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Pipeline stage sentinels. Every failure in a run is marked with exactly
// one of these so callers can classify it with errors.Is. All of them are
// fatal: the downstream binding generator needs every signal resolved, so
// there is no retry and no partial mode.
var (
	ErrPlatformResolution = errors.New("platform resolution failed")
	ErrAcquisition        = errors.New("source acquisition failed")
	ErrConfiguration      = errors.New("configure failed")
	ErrCompilation        = errors.New("build failed")
	ErrInstallation       = errors.New("install failed")
	ErrProbeCompile       = errors.New("probe program did not compile")
	ErrProbeExecution     = errors.New("probe program did not run")
	ErrProbeProtocol      = errors.New("probe output missing expected tag")
)

// stageError marks err with the given stage sentinel and attaches the
// captured process output so it surfaces verbatim in error reports.
func stageError(stage error, err error, output []string) error {
	marked := errors.Mark(err, stage)
	if len(output) > 0 {
		marked = errors.WithDetail(marked, strings.TrimSpace(strings.Join(output, "\n")))
	}
	return marked
}

// stageErrorf is stageError for failures that originate here rather than in
// a subprocess.
func stageErrorf(stage error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), stage)
}
