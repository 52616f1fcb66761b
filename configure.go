package ffbuild

import (
	"path/filepath"
	"runtime"
	"strings"
)

// configureArgs assembles the full argument list for FFmpeg's configure
// script from the feature matrix, the license gates and the resolved
// platform. It is a pure function of its inputs so the flag policy can be
// tested without touching a real source tree.
//
// crossCC is the resolved target compiler for cross builds (the xcrun clang
// for iOS, the NDK compiler for Android, Options.TargetCC otherwise); it is
// ignored for native builds.
func configureArgs(opts *Options, plat Platform, sysroot, crossCC string) ([]string, error) {
	var args []string

	args = append(args, "--prefix="+opts.Prefix())

	if plat.Cross {
		args = append(args, "--enable-cross-compile")

		// Apple clang needs an explicit --target; -arch alone is not enough.
		if strings.Contains(filepath.Base(crossCC), "clang") {
			args = append(args,
				"--extra-cflags=--target="+plat.Target,
				"--extra-ldflags=--target="+plat.Target)
		}

		args = append(args, "--arch="+plat.Arch)
		args = append(args, "--target-os="+plat.FFmpegOS())

		// A uniform tool prefix does not exist on Android; the NDK ships one
		// compiler path per target triple instead, handled below.
		if plat.OS != "android" {
			if prefix := CrossPrefix(crossCC); prefix != "" {
				args = append(args, "--cross-prefix="+prefix)
			}
		}
	} else {
		// Tune for the machine we are building on.
		args = append(args, "--extra-cflags=-march=native -mtune=native")
	}

	switch plat.OS {
	case "ios":
		if sysroot == "" {
			return nil, stageErrorf(ErrConfiguration,
				"iOS cross build requires a sysroot; none was resolved")
		}
		args = append(args, "--sysroot="+sysroot)
		if crossCC != "" {
			args = append(args, "--cc="+crossCC)
		}
	case "android":
		if crossCC == "" {
			return nil, stageErrorf(ErrConfiguration,
				"android target %s needs a compiler; set FFBUILD_TARGET_CC to the NDK clang for this triple", plat.Target)
		}
		if !fileExists(crossCC) {
			return nil, stageErrorf(ErrConfiguration,
				"android compiler does not exist: %s", crossCC)
		}
		args = append(args, "--cc="+crossCC)

		// The llvm binutils live next to the compiler in the NDK.
		toolDir := filepath.Dir(crossCC)
		args = append(args, "--nm="+filepath.Join(toolDir, "llvm-nm"))
		args = append(args, "--strip="+filepath.Join(toolDir, "llvm-strip"))

		// x86 asm contains position dependent code (relocations).
		if plat.Arch == "x86_64" || plat.Arch == "i686" || plat.Arch == "x86" {
			args = append(args, "--disable-asm")
		}
		args = append(args, "--extra-cflags=-fPIC")
	}

	if opts.Debug {
		args = append(args, "--enable-debug", "--disable-stripping")
	} else {
		args = append(args, "--disable-debug", "--enable-stripping")
		args = append(args, "--extra-cflags=-O3 -ffast-math -funroll-loops")
		if runtime.GOOS != "windows" {
			args = append(args, "--extra-ldflags=-flto")
		}
	}

	// Static archives with position independent code, nothing autodetected,
	// no programs and no docs: the bindings are the only consumer.
	args = append(args,
		"--enable-static",
		"--disable-shared",
		"--enable-pthreads",
		"--enable-pic",
		"--disable-autodetect",
		"--disable-programs",
		"--disable-doc",
	)

	// License gates are always passed in both directions. They unlock
	// optional dependencies elsewhere but mainly record what the consumer
	// of the resulting binary must comply with.
	args = append(args, licenseSwitch(opts.GPL, "gpl"))
	args = append(args, licenseSwitch(opts.Version3, "version3"))
	args = append(args, licenseSwitch(opts.Nonfree, "nonfree"))

	for _, lib := range Libraries {
		if !lib.Optional {
			continue
		}
		if major, dropped := droppedAtMajor[lib.Name]; dropped && opts.Release.Major() >= major {
			continue
		}
		if opts.Selected(lib.Name) {
			args = append(args, "--enable-"+lib.Name)
		} else {
			args = append(args, "--disable-"+lib.Name)
		}
	}

	for _, name := range ExternalLibraries {
		if opts.ExternalLibs[name] {
			args = append(args, "--enable-"+name)
		}
	}

	args = append(args, hwAccelArgs(opts, plat)...)

	// Keep build logs tractable; some platforms spray thousands of
	// nullability warnings otherwise.
	args = append(args, "--extra-cflags=-w")

	return args, nil
}

// hwAccelArgs expands the selected acceleration backends, silently dropping
// any whose (os, arch) does not match the target.
func hwAccelArgs(opts *Options, plat Platform) []string {
	var args []string
	for _, accel := range HWAccels {
		if !opts.HWAccels[accel.Name] || !accel.allows(plat) {
			continue
		}
		args = append(args, accel.Flags...)

		switch accel.Name {
		case "videotoolbox":
			if plat.Cross && plat.OS == "ios" {
				args = append(args, "--extra-cflags=-mios-version-min=11.0")
			}
			if plat.Cross && plat.OS == "macos" {
				args = append(args, "--extra-cflags=-mmacosx-version-min=10.11")
			}
		case "audiotoolbox":
			args = append(args, "--extra-cflags=-mios-version-min=11.0")
		case "nvidia":
			if opts.CUDAPath != "" {
				args = append(args, "--cuda-path="+opts.CUDAPath)
			}
		}
	}
	return args
}

func licenseSwitch(enabled bool, name string) string {
	if enabled {
		return "--enable-" + name
	}
	return "--disable-" + name
}
