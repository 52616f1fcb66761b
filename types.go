package ffbuild

// Library is one FFmpeg component library in the feature matrix.
//
// Optional libraries are built only when selected in Options.Components and
// each contributes an --enable-NAME/--disable-NAME pair to configure plus a
// static selection signal. The base library (avutil) is never optional and
// is always built.
type Library struct {
	Name     string // configure and signal name, e.g. "avcodec"
	Optional bool   // false only for avutil
}

// Platform is the resolved build platform. It is immutable once resolved at
// the start of a pipeline run.
type Platform struct {
	Host   string // host triple, e.g. "x86_64-unknown-linux-gnu"
	Target string // target triple, equal to Host for native builds
	OS     string // normalized target OS: linux, macos, ios, android, windows
	Arch   string // target architecture token from the triple
	Cross  bool   // true when Host != Target
}

// FFmpegOS returns the --target-os value for the upstream configure script.
// FFmpeg has no separate iOS target; it builds for "darwin".
func (p Platform) FFmpegOS() string {
	if p.OS == "ios" || p.OS == "macos" {
		return "darwin"
	}
	return p.OS
}

// ProbeSpec declares one discoverable fact: a macro in an installed header
// whose value and definedness become two boolean signals.
//
// Component gates the probe: when non-empty, the spec contributes to the
// generated program only if that component library was selected. This keeps
// the program compilable when the component's header was never installed.
type ProbeSpec struct {
	Header    string // header the macro lives in, e.g. "libavcodec/avcodec.h"
	Component string // gating component library, "" means always probed
	Name      string // macro name, e.g. "FF_API_OLD_AVOPTIONS"
}

// Tag returns the bracketed key that marks this spec's line in the probe
// output. Brackets delimit the tag, so no tag can be a prefix of another.
func (s ProbeSpec) Tag() string {
	return "[" + s.Name + "]"
}

// VersionGate declares a grid of version thresholds for one component
// library. One boolean signal is produced per (major, minor) cell meaning
// "installed library version strictly greater than major.minor".
type VersionGate struct {
	Library string
	MajorLo int // inclusive
	MajorHi int // exclusive
	MinorLo int // inclusive
	MinorHi int // exclusive
}

// ProbeResult carries the two independent facts extracted for one ProbeSpec.
type ProbeResult struct {
	Name    string
	True    bool // macro value is non-zero
	Defined bool // macro was defined at all
}

// ProbeReport is the full outcome of one capability probe run. Facts are in
// probe-spec order; Gates maps each version-gate key to its truth value.
type ProbeReport struct {
	Facts []ProbeResult
	Gates map[string]bool
}

// Result is what a completed pipeline run hands back: the resolved install
// layout and the emitted signal set.
type Result struct {
	IncludeDir string   // installed headers, input to the binding generator
	LibDir     string   // installed static libraries
	Output     []string // captured output lines from the native build, if any
	Signals    *SignalSet
}
