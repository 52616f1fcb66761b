package ffbuild

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
)

// CapabilityCompiler abstracts the compile-and-run half of the capability
// probe so the probe algorithm can be tested against canned output.
//
// Compile turns the generated C source into an executable and returns its
// path; Run executes it and returns captured standard output. The
// production implementation (NewHostCompiler) always uses the host
// compiler: the probe must run on the build machine regardless of the
// final target.
type CapabilityCompiler interface {
	Compile(ctx context.Context, source string) (string, error)
	Run(ctx context.Context, exe string) (string, error)
}

// RunProbe generates the diagnostic program for the given probe specs and
// version gates, compiles and executes it, and parses the report.
//
// selected gates component-scoped specs: a spec whose Component is not
// selected contributes nothing to the program, so its header need not
// exist. The probe either fully succeeds or fails; partial results are
// never returned.
func RunProbe(ctx context.Context, comp CapabilityCompiler, specs []ProbeSpec, gates []VersionGate, selected func(string) bool) (*ProbeReport, error) {
	source := probeSource(specs, gates, selected)

	exe, err := comp.Compile(ctx, source)
	if err != nil {
		return nil, errors.Mark(err, ErrProbeCompile)
	}

	stdout, err := comp.Run(ctx, exe)
	if err != nil {
		return nil, errors.Mark(err, ErrProbeExecution)
	}

	return parseProbeOutput(stdout, specs, gates, selected)
}

// probeSource synthesizes the probe translation unit.
//
// For every active spec it emits a deduplicated #include, a macro block
// that turns "is this macro defined" into an inspectable value pair, and a
// printf line tagged with the spec's bracketed key followed by exactly two
// digits (value, definedness). For every version gate cell it emits a
// printf whose argument is a boolean expression over the library's version
// macros, so the compiler does the version arithmetic.
func probeSource(specs []ProbeSpec, gates []VersionGate, selected func(string) bool) string {
	var includes strings.Builder
	var main strings.Builder

	seen := make(map[string]bool)
	for _, spec := range specs {
		if spec.Component != "" && !selected(spec.Component) {
			continue
		}

		if !seen[spec.Header] {
			seen[spec.Header] = true
			fmt.Fprintf(&includes, "#include <%s>\n", spec.Header)
		}

		fmt.Fprintf(&includes, `#ifndef %[1]s_is_defined
#ifndef %[1]s
#define %[1]s 0
#define %[1]s_is_defined 0
#else
#define %[1]s_is_defined 1
#endif
#endif
`, spec.Name)

		fmt.Fprintf(&main, "    printf(\"%s%%d%%d\\n\", %s, %s_is_defined);\n",
			spec.Tag(), spec.Name, spec.Name)
	}

	for _, gate := range gates {
		macro := "LIB" + strings.ToUpper(gate.Library) + "_VERSION"
		for major := gate.MajorLo; major < gate.MajorHi; major++ {
			for minor := gate.MinorLo; minor < gate.MinorHi; minor++ {
				fmt.Fprintf(&main,
					"    printf(\"[%s]%%d\\n\", %s_MAJOR > %d || (%s_MAJOR == %d && %s_MINOR > %d));\n",
					gateKey(gate.Library, major, minor),
					macro, major, macro, major, macro, minor)
			}
		}
	}

	return fmt.Sprintf("#include <stdio.h>\n%s\nint main()\n{\n%s    return 0;\n}\n",
		includes.String(), main.String())
}

// gateKey names the signal for one version threshold: true means the
// installed library version is strictly greater than major.minor.
func gateKey(library string, major, minor int) string {
	return fmt.Sprintf("%s_version_greater_than_%d_%d", library, major, minor)
}

// parseProbeOutput extracts every expected tag from the probe's stdout.
//
// The protocol is strictly positional: each tag is immediately followed by
// two digits for macro specs and one digit for gate cells, with no escaping
// and no variable-width values. Tags are bracket-delimited, which keeps
// them prefix-free. A missing tag means the spec tables and the installed
// headers disagree and is fatal.
func parseProbeOutput(stdout string, specs []ProbeSpec, gates []VersionGate, selected func(string) bool) (*ProbeReport, error) {
	report := &ProbeReport{Gates: make(map[string]bool)}

	for _, spec := range specs {
		if spec.Component != "" && !selected(spec.Component) {
			continue
		}

		digits, err := digitsAfter(stdout, spec.Tag(), 2)
		if err != nil {
			return nil, err
		}
		report.Facts = append(report.Facts, ProbeResult{
			Name:    spec.Name,
			True:    digits[0] != '0',
			Defined: digits[1] == '1',
		})
	}

	for _, gate := range gates {
		for major := gate.MajorLo; major < gate.MajorHi; major++ {
			for minor := gate.MinorLo; minor < gate.MinorHi; minor++ {
				key := gateKey(gate.Library, major, minor)
				digits, err := digitsAfter(stdout, "["+key+"]", 1)
				if err != nil {
					return nil, err
				}
				report.Gates[key] = digits[0] != '0'
			}
		}
	}

	return report, nil
}

// digitsAfter locates tag in the output and returns the n bytes following
// it.
func digitsAfter(stdout, tag string, n int) (string, error) {
	idx := strings.Index(stdout, tag)
	if idx < 0 {
		return "", stageErrorf(ErrProbeProtocol, "tag %s not found in probe output", tag)
	}
	start := idx + len(tag)
	if start+n > len(stdout) {
		return "", stageErrorf(ErrProbeProtocol, "probe output truncated after tag %s", tag)
	}
	return stdout[start : start+n], nil
}

// hostCompiler is the production CapabilityCompiler: it writes the source
// to a scratch directory, compiles it with the host C compiler against the
// resolved include paths and runs the binary locally. The scratch files are
// overwritten on every run and are not a persisted artifact.
type hostCompiler struct {
	cc          string
	includeDirs []string
	workDir     string
}

// NewHostCompiler returns a CapabilityCompiler backed by the given host C
// compiler. includeDirs are passed as -I search paths.
func NewHostCompiler(cc string, includeDirs []string, workDir string) CapabilityCompiler {
	return &hostCompiler{cc: cc, includeDirs: includeDirs, workDir: workDir}
}

func (h *hostCompiler) Compile(ctx context.Context, source string) (string, error) {
	if err := os.MkdirAll(h.workDir, 0o755); err != nil {
		return "", err
	}

	srcPath := filepath.Join(h.workDir, "check.c")
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		return "", err
	}

	exe := filepath.Join(h.workDir, "check")
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}

	args := make([]string, 0, 2*len(h.includeDirs)+3)
	for _, dir := range h.includeDirs {
		args = append(args, "-I", dir)
	}
	args = append(args, "-o", exe, srcPath)

	cmd := exec.CommandContext(ctx, h.cc, args...)
	cmd.Dir = h.workDir

	if output, err := cmd.CombinedOutput(); err != nil {
		diag := errors.Wrapf(err, "%s failed compiling probe", h.cc)
		if lines := splitOutput(output); len(lines) > 0 {
			diag = errors.WithDetail(diag, strings.Join(lines, "\n"))
		}
		return "", diag
	}
	return exe, nil
}

func (h *hostCompiler) Run(ctx context.Context, exe string) (string, error) {
	cmd := exec.CommandContext(ctx, exe)
	cmd.Dir = h.workDir

	stdout, err := cmd.Output()
	if err != nil {
		diag := errors.Wrapf(err, "probe %s failed", exe)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			diag = errors.WithDetail(diag, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", diag
	}
	return string(stdout), nil
}
