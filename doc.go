// Package ffbuild prepares a static FFmpeg installation for binding
// generation. It resolves the build platform, fetches and compiles a pinned
// FFmpeg release under a declarative feature and license matrix, and then
// probes the installed headers for compile-time facts that cannot be known
// statically.
//
// # Pipeline
//
// A run is a strictly sequential pipeline:
//
//	Resolve -> Fetch -> Configure -> Make -> Install -> Probe -> Emit
//
// Fetch through Install are skipped when the installed artifact
// (lib/libavutil.a under the private prefix) already exists, or when a
// prebuilt FFmpeg is supplied via FFBUILD_PREBUILT_DIR. The probe and
// signal emission always re-run.
//
// # Capability probe
//
// Rather than parsing C headers itself, the probe generates a small
// diagnostic program against the installed headers, compiles it with the
// host compiler, executes it, and parses its output. The compiler does the
// interpretation: each FF_API_* macro becomes a pair of boolean facts
// (value, definedness) and each version threshold becomes a boolean the
// preprocessor evaluated. See CapabilityCompiler and RunProbe.
//
// # Basic usage
//
//	opts, err := ffbuild.NewOptions()
//	if err != nil {
//	    return err
//	}
//	pipe := ffbuild.NewPipeline(opts, logger)
//	result, err := pipe.Run(ctx)
//	if err != nil {
//	    return err
//	}
//	result.Signals.WriteTo(os.Stdout)
//
// The emitted SignalSet is the contract consumed by the downstream binding
// generator: one flat namespace of named booleans plus the universe of all
// legal names.
//
// # Configuration
//
// All knobs are read once into an immutable Options value, either from
// FFBUILD_* environment variables via NewOptions or by constructing Options
// directly. No component reads the process environment after construction.
//
// # Platform support
//
// Native builds on Linux and macOS, cross builds for iOS, Android and
// generic cross toolchains with an explicit sysroot. Limited Windows
// support (MinGW/MSYS2, a POSIX sh is required for configure).
package ffbuild
