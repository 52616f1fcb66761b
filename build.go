package ffbuild

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// Pipeline runs the full preparation sequence for one configuration:
// platform resolution, source acquisition, configure/make/install into a
// private prefix, the capability probe and signal emission.
//
// The pipeline is strictly sequential and nothing is retried; any stage
// failure aborts the run with the stage's sentinel error. Re-running is
// idempotent with respect to acquisition and build (skipped when the
// installed artifact exists) while the probe and emission always re-run.
type Pipeline struct {
	opts  *Options
	plat  Platform
	log   *zap.SugaredLogger
	probe CapabilityCompiler
}

// NewPipeline creates a pipeline for the given options. A nil logger is
// replaced with a no-op logger.
func NewPipeline(opts *Options, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		opts: opts,
		plat: ResolvePlatform(opts),
		log:  log,
	}
}

// Platform exposes the resolved platform, fixed at construction.
func (p *Pipeline) Platform() Platform {
	return p.plat
}

// SetCapabilityCompiler replaces the probe toolchain. Production runs use
// the host compiler; tests substitute a fake returning canned output.
func (p *Pipeline) SetCapabilityCompiler(cc CapabilityCompiler) {
	p.probe = cc
}

// Run executes the pipeline and returns the install layout plus the emitted
// signal set.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	if p.opts.PrebuiltDir != "" {
		// Escape hatch: an existing FFmpeg installation replaces
		// acquisition and build entirely.
		res.IncludeDir = filepath.Join(p.opts.PrebuiltDir, "include")
		res.LibDir = prebuiltLibDir(p.opts.PrebuiltDir, p.plat.Arch)
		p.log.Infow("using prebuilt FFmpeg", "include", res.IncludeDir, "lib", res.LibDir)
	} else {
		if err := p.ensureInstalled(ctx, res); err != nil {
			return nil, err
		}
		res.IncludeDir = filepath.Join(p.opts.Prefix(), "include")
		res.LibDir = filepath.Join(p.opts.Prefix(), "lib")
	}

	report, err := p.runProbe(ctx, res.IncludeDir)
	if err != nil {
		return nil, err
	}

	signals, err := EmitSignals(p.opts, report)
	if err != nil {
		return nil, err
	}
	res.Signals = signals

	return res, nil
}

// ensureInstalled fetches and builds the pinned release unless the
// installed artifact already exists.
func (p *Pipeline) ensureInstalled(ctx context.Context, res *Result) error {
	if p.installed() {
		p.log.Infow("installed artifact present, skipping fetch and build",
			"prefix", p.opts.Prefix())
		return nil
	}

	if err := CheckRequiredTools(RequiredTools(p.opts)); err != nil {
		return stageError(ErrConfiguration, err, nil)
	}

	sysroot, err := p.plat.ResolveSysroot(p.opts, p.log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.opts.WorkDir, 0o755); err != nil {
		return stageError(ErrAcquisition, err, nil)
	}

	if err := p.fetch(ctx); err != nil {
		return err
	}
	return p.build(ctx, sysroot, res)
}

// installed reports whether the expected install marker exists. The base
// library archive is always produced, so its presence means a completed
// install.
func (p *Pipeline) installed() bool {
	return fileExists(filepath.Join(p.opts.Prefix(), "lib", "libavutil.a"))
}

// build runs configure, make and make install inside the checkout.
func (p *Pipeline) build(ctx context.Context, sysroot string, res *Result) error {
	crossCC, err := p.resolveCrossCompiler()
	if err != nil {
		return err
	}

	args, err := configureArgs(p.opts, p.plat, sysroot, crossCC)
	if err != nil {
		return err
	}

	srcDir := p.opts.SourceDir()
	configurePath := filepath.Join(srcDir, "configure")
	if !fileExists(configurePath) {
		return stageErrorf(ErrConfiguration, "configure script not found at %s", configurePath)
	}

	// FFmpeg's configure is a POSIX shell script; on Windows it has to go
	// through sh (MSYS2/MinGW).
	name, cmdArgs := configurePath, args
	if runtime.GOOS == "windows" {
		name = "sh"
		cmdArgs = append([]string{configurePath}, args...)
	}

	if err := p.runStep(ctx, ErrConfiguration, srcDir, res, name, cmdArgs...); err != nil {
		return err
	}

	jobs := p.opts.Jobs()
	if err := p.runStep(ctx, ErrCompilation, srcDir, res, "make", fmt.Sprintf("-j%d", jobs)); err != nil {
		return err
	}

	return p.runStep(ctx, ErrInstallation, srcDir, res, "make", "install")
}

// resolveCrossCompiler picks the target compiler used both for configure's
// --cc and for the cross-prefix derivation. Native builds need none.
func (p *Pipeline) resolveCrossCompiler() (string, error) {
	if !p.plat.Cross {
		return "", nil
	}
	if p.plat.OS == "ios" {
		return appleSDKCompiler()
	}
	return p.opts.TargetCC, nil
}

// runStep executes one external build step, capturing combined output into
// the result and wrapping failure with the stage sentinel and the output.
func (p *Pipeline) runStep(ctx context.Context, stage error, dir string, res *Result, name string, args ...string) error {
	p.log.Infow("running", "cmd", shellquote.Join(append([]string{name}, args...)...), "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	lines := splitOutput(output)
	res.Output = append(res.Output, lines...)

	if err != nil {
		return stageError(stage, err, lines)
	}
	return nil
}

// prebuiltLibDir locates the library directory inside a prebuilt FFmpeg
// distribution, honoring the per-arch layouts some distributions use.
func prebuiltLibDir(dir, arch string) string {
	sub := map[string]string{
		"x86_64":  "amd64",
		"arm":     "armhf",
		"aarch64": "arm64",
	}[arch]
	if sub != "" {
		candidate := filepath.Join(dir, "lib", sub)
		if dirExists(candidate) {
			return candidate
		}
	}
	return filepath.Join(dir, "lib")
}

// runProbe compiles and executes the capability probe against the installed
// headers and parses its report.
func (p *Pipeline) runProbe(ctx context.Context, includeDir string) (*ProbeReport, error) {
	comp := p.probe
	if comp == nil {
		scratch := filepath.Join(p.opts.WorkDir, "probe")
		comp = NewHostCompiler(p.opts.HostCC, []string{includeDir}, scratch)
	}
	return RunProbe(ctx, comp, ProbeSpecs, VersionGates, p.opts.Selected)
}
