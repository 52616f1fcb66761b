package ffbuild

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/viper"
)

// DefaultRelease is the pinned upstream release built when no override is
// given.
const DefaultRelease = "7.1"

// Options is the single configuration object for a pipeline run.
//
// It is constructed once, either by NewOptions from FFBUILD_* environment
// variables or directly by a caller, and passed by reference to every
// component. Nothing in this package reads the process environment after
// construction. Treat a constructed Options as read-only.
type Options struct {
	// Release is the pinned FFmpeg release, e.g. 7.1. The source tree is
	// fetched from the release/<major>.<minor> branch.
	Release *semver.Version

	// WorkDir holds the checkout, the private install prefix and the probe
	// scratch files.
	WorkDir string

	// Host and Target are compiler triples. A build is a cross build when
	// they differ.
	Host   string
	Target string

	// Debug builds unstripped with debug info instead of the stripped,
	// aggressively optimized release configuration.
	Debug bool

	// Components selects the optional FFmpeg component libraries. The base
	// library avutil is always built regardless of this map.
	Components map[string]bool

	// ExternalLibs selects external codec/filter/protocol libraries
	// (libx264, libopus, ...). Enable-only: unselected entries contribute
	// no flag.
	ExternalLibs map[string]bool

	// HWAccels selects hardware acceleration backends. A selection whose
	// (os, arch) does not match the target is silently dropped.
	HWAccels map[string]bool

	// License gates. These do not enable features by themselves; they
	// record obligations the consumer of the resulting binary must satisfy.
	GPL      bool
	Version3 bool
	Nonfree  bool

	// Sysroot overrides sysroot resolution for cross builds.
	Sysroot string

	// NDKSysroot is the Android NDK sysroot, required for Android targets.
	NDKSysroot string

	// CUDAPath points at the NVIDIA CUDA toolkit for nvenc builds.
	CUDAPath string

	// PrebuiltDir bypasses fetch and build entirely and records the
	// include/lib directories of an existing FFmpeg installation.
	PrebuiltDir string

	// HostCC compiles the capability probe. Never a cross compiler.
	HostCC string

	// TargetCC is the cross C compiler; the cross toolchain prefix is
	// derived from its file name. Required for Android targets.
	TargetCC string

	// Parallel bounds make's worker pool. Zero means detected CPU count.
	Parallel int
}

// NewOptions builds Options from FFBUILD_* environment variables, applying
// defaults for everything unset. This is the only environment read in the
// package.
func NewOptions() (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix("FFBUILD")
	v.AutomaticEnv()

	v.SetDefault("release", DefaultRelease)
	v.SetDefault("workdir", filepath.Join(".", "build"))
	v.SetDefault("cc", "cc")

	// Plain CC is honored for the probe compiler when FFBUILD_CC is unset.
	_ = v.BindEnv("cc", "FFBUILD_CC", "CC")
	_ = v.BindEnv("target_cc", "FFBUILD_TARGET_CC", "TARGET_CC")

	release, err := semver.NewVersion(v.GetString("release"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid release %q", v.GetString("release"))
	}

	host := v.GetString("host")
	if host == "" {
		host = HostTriple()
	}
	target := v.GetString("target")
	if target == "" {
		target = host
	}

	opts := &Options{
		Release:      release,
		WorkDir:      v.GetString("workdir"),
		Host:         host,
		Target:       target,
		Debug:        v.GetBool("debug"),
		Components:   selectionSet(v.GetString("components"), defaultComponents()),
		ExternalLibs: selectionSet(v.GetString("libs"), nil),
		HWAccels:     selectionSet(v.GetString("hwaccel"), nil),
		GPL:          v.GetBool("gpl"),
		Version3:     v.GetBool("version3"),
		Nonfree:      v.GetBool("nonfree"),
		Sysroot:      v.GetString("sysroot"),
		NDKSysroot:   v.GetString("ndk_sysroot"),
		CUDAPath:     v.GetString("cuda_path"),
		PrebuiltDir:  v.GetString("prebuilt_dir"),
		HostCC:       v.GetString("cc"),
		TargetCC:     v.GetString("target_cc"),
		Parallel:     v.GetInt("jobs"),
	}

	return opts, nil
}

// Selected reports whether a component library is part of this build. The
// base library is always selected.
func (o *Options) Selected(component string) bool {
	if component == "avutil" {
		return true
	}
	return o.Components[component]
}

// Prefix is the private install prefix the native build installs into.
func (o *Options) Prefix() string {
	return filepath.Join(o.WorkDir, "dist")
}

// SourceDir is the checkout location for the pinned release.
func (o *Options) SourceDir() string {
	return filepath.Join(o.WorkDir, "ffmpeg-"+o.ReleaseString())
}

// ReleaseString renders the pinned release as "major.minor".
func (o *Options) ReleaseString() string {
	return fmt.Sprintf("%d.%d", o.Release.Major(), o.Release.Minor())
}

// ReleaseBranch is the upstream branch holding the pinned release.
func (o *Options) ReleaseBranch() string {
	return "release/" + o.ReleaseString()
}

// Jobs resolves the make parallelism: the explicit setting when positive,
// otherwise the detected logical CPU count.
func (o *Options) Jobs() int {
	if o.Parallel > 0 {
		return o.Parallel
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// HostTriple maps the running Go platform onto a compiler triple. Used as
// the default for both host and target.
func HostTriple() string {
	arch := map[string]string{
		"amd64": "x86_64",
		"arm64": "aarch64",
		"386":   "i686",
		"arm":   "arm",
	}[runtime.GOARCH]
	if arch == "" {
		arch = runtime.GOARCH
	}

	switch runtime.GOOS {
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-gnu"
	default:
		return arch + "-unknown-" + runtime.GOOS + "-gnu"
	}
}

// selectionSet parses a comma separated list into a selection map, falling
// back to the given defaults when the list is empty.
func selectionSet(list string, defaults []string) map[string]bool {
	set := make(map[string]bool)
	if list == "" {
		for _, name := range defaults {
			set[name] = true
		}
		return set
	}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = true
		}
	}
	return set
}

func defaultComponents() []string {
	var names []string
	for _, lib := range Libraries {
		if lib.Optional {
			names = append(names, lib.Name)
		}
	}
	return names
}
