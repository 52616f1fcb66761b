package ffbuild

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// execLookPath and xcrunOutput are seams for tests; see platform_test.go.
var (
	execLookPath = exec.LookPath
	xcrunOutput  = func(args ...string) ([]byte, error) {
		return exec.Command("xcrun", args...).Output()
	}
)

// ResolvePlatform derives the build platform from the configured host and
// target triples. It never fails: unknown triples degrade to empty OS/arch
// tokens, which later stages reject where it matters.
func ResolvePlatform(opts *Options) Platform {
	arch, osName := splitTriple(opts.Target)
	return Platform{
		Host:   opts.Host,
		Target: opts.Target,
		OS:     osName,
		Arch:   arch,
		Cross:  opts.Host != opts.Target,
	}
}

// splitTriple extracts the architecture and normalized OS from a compiler
// triple such as "aarch64-apple-ios" or "x86_64-unknown-linux-gnu".
// Android must be checked before Linux: its triples carry both tokens
// (aarch64-linux-android).
func splitTriple(triple string) (arch, osName string) {
	parts := strings.SplitN(triple, "-", 2)
	arch = parts[0]
	if len(parts) < 2 {
		return arch, ""
	}
	rest := parts[1]

	switch {
	case strings.Contains(rest, "android"):
		return arch, "android"
	case strings.Contains(rest, "ios"):
		return arch, "ios"
	case strings.Contains(rest, "windows"):
		return arch, "windows"
	case strings.Contains(rest, "darwin"), strings.Contains(rest, "macos"):
		return arch, "macos"
	case strings.Contains(rest, "linux"):
		return arch, "linux"
	case strings.Contains(rest, "apple"):
		// Vendor token without an OS token means macOS.
		return arch, "macos"
	}
	return arch, ""
}

// ResolveSysroot determines the sysroot for a cross build.
//
// Resolution order is fixed: the explicit override wins; iOS targets query
// the platform SDK via xcrun and fail when the tool or the reported path is
// missing; Android targets require the NDK sysroot and fail naming the
// missing path; every other cross target proceeds without a sysroot after a
// warning, since many cross toolchains already target correctly.
//
// Native builds need no sysroot and always resolve to "".
func (p Platform) ResolveSysroot(opts *Options, log *zap.SugaredLogger) (string, error) {
	if !p.Cross {
		return "", nil
	}

	if opts.Sysroot != "" {
		return opts.Sysroot, nil
	}

	switch p.OS {
	case "ios":
		return appleSDKPath()
	case "android":
		if opts.NDKSysroot == "" {
			return "", stageErrorf(ErrPlatformResolution,
				"android target %s needs an NDK sysroot; set FFBUILD_NDK_SYSROOT to <ndk>/toolchains/llvm/prebuilt/<host>/sysroot", p.Target)
		}
		if !dirExists(opts.NDKSysroot) {
			return "", stageErrorf(ErrPlatformResolution,
				"android NDK sysroot does not exist: %s", opts.NDKSysroot)
		}
		return opts.NDKSysroot, nil
	default:
		log.Warnw("cross compilation without a sysroot; set FFBUILD_SYSROOT if headers are missing",
			"target", p.Target)
		return "", nil
	}
}

// appleSDKPath asks the Xcode toolchain for the iPhoneOS SDK root.
func appleSDKPath() (string, error) {
	if _, err := execLookPath("xcrun"); err != nil {
		return "", stageError(ErrPlatformResolution,
			errors.WithHint(err, "install the Xcode command line tools or set FFBUILD_SYSROOT explicitly"), nil)
	}

	out, err := xcrunOutput("--sdk", "iphoneos", "--show-sdk-path")
	if err != nil {
		return "", stageError(ErrPlatformResolution,
			errors.Wrap(err, "xcrun --show-sdk-path"), nil)
	}

	path := strings.TrimSpace(string(out))
	if !dirExists(path) {
		return "", stageErrorf(ErrPlatformResolution, "xcrun reported a nonexistent SDK path: %s", path)
	}
	return path, nil
}

// appleSDKCompiler resolves the clang shipped with the iPhoneOS SDK, used as
// --cc for iOS cross builds.
func appleSDKCompiler() (string, error) {
	out, err := xcrunOutput("--sdk", "iphoneos", "-f", "clang")
	if err != nil {
		return "", stageError(ErrPlatformResolution,
			errors.Wrap(err, "xcrun -f clang"), nil)
	}
	return strings.TrimSpace(string(out)), nil
}

// CrossPrefix derives the --cross-prefix value from a cross compiler path.
//
// Cross toolchains conventionally name their tools <prefix>-gcc,
// <prefix>-ar and so on, so the prefix is everything before the final dash
// of the compiler's file stem. A trailing "-wr" wrapper segment (seen in
// "wr-cc" style wrappers) is stripped too. Returns "" when the name carries
// no prefix; Android callers skip this derivation entirely because the NDK
// ships one full compiler path per target instead of prefixed tools.
func CrossPrefix(compiler string) string {
	stem := filepath.Base(compiler)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))

	idx := strings.LastIndex(stem, "-")
	if idx <= 0 {
		return ""
	}
	prefix := strings.TrimSuffix(stem[:idx], "-wr")
	return prefix + "-"
}
