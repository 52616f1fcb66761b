package ffbuild

import (
	"strings"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	for _, key := range []string{
		"FFBUILD_RELEASE", "FFBUILD_WORKDIR", "FFBUILD_HOST", "FFBUILD_TARGET",
		"FFBUILD_COMPONENTS", "FFBUILD_LIBS", "FFBUILD_CC", "CC",
	} {
		t.Setenv(key, "")
	}

	opts, err := NewOptions()
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	if got := opts.ReleaseString(); got != DefaultRelease {
		t.Errorf("release = %s, want %s", got, DefaultRelease)
	}
	if opts.Host != HostTriple() {
		t.Errorf("host = %s, want %s", opts.Host, HostTriple())
	}
	if opts.Target != opts.Host {
		t.Errorf("target %s should default to host %s", opts.Target, opts.Host)
	}
	if opts.HostCC != "cc" {
		t.Errorf("cc = %s, want cc", opts.HostCC)
	}

	for _, name := range []string{"avcodec", "avformat", "swscale", "postproc"} {
		if !opts.Selected(name) {
			t.Errorf("component %s should be selected by default", name)
		}
	}
	if len(opts.ExternalLibs) != 0 {
		t.Errorf("external libs should default to none, got %v", opts.ExternalLibs)
	}
}

func TestNewOptionsFromEnvironment(t *testing.T) {
	t.Setenv("FFBUILD_RELEASE", "6.1")
	t.Setenv("FFBUILD_TARGET", "aarch64-linux-android")
	t.Setenv("FFBUILD_COMPONENTS", "avcodec, avformat")
	t.Setenv("FFBUILD_LIBS", "libx264,libopus")
	t.Setenv("FFBUILD_GPL", "true")
	t.Setenv("FFBUILD_JOBS", "3")
	t.Setenv("FFBUILD_NDK_SYSROOT", "/opt/ndk/sysroot")

	opts, err := NewOptions()
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	if got := opts.ReleaseBranch(); got != "release/6.1" {
		t.Errorf("branch = %s", got)
	}
	if opts.Target != "aarch64-linux-android" {
		t.Errorf("target = %s", opts.Target)
	}
	if !opts.Selected("avcodec") || !opts.Selected("avformat") {
		t.Error("listed components not selected")
	}
	if opts.Selected("avfilter") {
		t.Error("avfilter selected despite explicit component list")
	}
	if !opts.Selected("avutil") {
		t.Error("the base library must stay selected under any component list")
	}
	if !opts.ExternalLibs["libx264"] || !opts.ExternalLibs["libopus"] {
		t.Errorf("external libs = %v", opts.ExternalLibs)
	}
	if !opts.GPL {
		t.Error("GPL gate not picked up")
	}
	if opts.Jobs() != 3 {
		t.Errorf("jobs = %d, want 3", opts.Jobs())
	}
	if opts.NDKSysroot != "/opt/ndk/sysroot" {
		t.Errorf("ndk sysroot = %s", opts.NDKSysroot)
	}
}

func TestNewOptionsPlainCCFallback(t *testing.T) {
	t.Setenv("FFBUILD_CC", "")
	t.Setenv("CC", "clang-18")

	opts, err := NewOptions()
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.HostCC != "clang-18" {
		t.Errorf("cc = %s, want clang-18", opts.HostCC)
	}
}

func TestNewOptionsInvalidRelease(t *testing.T) {
	t.Setenv("FFBUILD_RELEASE", "latest")

	_, err := NewOptions()
	if err == nil {
		t.Fatal("expected an error for an unparseable release")
	}
	if !strings.Contains(err.Error(), "latest") {
		t.Errorf("error should name the bad value: %v", err)
	}
}

func TestOptionsPaths(t *testing.T) {
	opts := testOptions(t)
	if got := opts.SourceDir(); !strings.HasSuffix(got, "ffmpeg-7.1") {
		t.Errorf("source dir = %s", got)
	}
	if got := opts.Prefix(); !strings.HasSuffix(got, "dist") {
		t.Errorf("prefix = %s", got)
	}
}

func TestJobsFallback(t *testing.T) {
	opts := testOptions(t)
	opts.Parallel = 0
	if opts.Jobs() < 1 {
		t.Errorf("jobs = %d, want at least one", opts.Jobs())
	}
	opts.Parallel = 7
	if opts.Jobs() != 7 {
		t.Errorf("jobs = %d, want the explicit setting", opts.Jobs())
	}
}

func TestSelectionSet(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		defaults []string
		want     []string
	}{
		{"defaults", "", []string{"a", "b"}, []string{"a", "b"}},
		{"explicit", "x,y", []string{"a"}, []string{"x", "y"}},
		{"whitespace", " x , y ", nil, []string{"x", "y"}},
		{"empty entries", "x,,y,", nil, []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := selectionSet(tt.list, tt.defaults)
			if len(set) != len(tt.want) {
				t.Fatalf("got %v, want %v", set, tt.want)
			}
			for _, name := range tt.want {
				if !set[name] {
					t.Errorf("missing %s in %v", name, set)
				}
			}
		})
	}
}
