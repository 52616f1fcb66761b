package ffbuild

// Libraries is the FFmpeg component matrix. Order matters: it is the order
// of the configure switches and of the static selection signals.
var Libraries = []Library{
	{Name: "avcodec", Optional: true},
	{Name: "avdevice", Optional: true},
	{Name: "avfilter", Optional: true},
	{Name: "avformat", Optional: true},
	{Name: "avresample", Optional: true},
	{Name: "avutil", Optional: false},
	{Name: "postproc", Optional: true},
	{Name: "swresample", Optional: true},
	{Name: "swscale", Optional: true},
}

// droppedAtMajor records component libraries upstream removed: building
// them must not be attempted at or past the given major release.
var droppedAtMajor = map[string]uint64{
	"avresample": 5,
	"postproc":   8,
}

// ExternalLibraries lists every external library FFmpeg can be linked
// against that this engine knows how to request. Selection is enable-only:
// configure autodetection is off, so an unselected entry simply contributes
// no flag.
var ExternalLibraries = []string{
	// SSL
	"gnutls",
	"openssl",

	// filters
	"fontconfig",
	"frei0r",
	"ladspa",
	"libass",
	"libfreetype",
	"libfribidi",
	"libopencv",
	"libvmaf",

	// encoders/decoders
	"libaacplus",
	"libcelt",
	"libdcadec",
	"libdav1d",
	"libfaac",
	"libfdk-aac",
	"libgsm",
	"libilbc",
	"libvazaar",
	"libmp3lame",
	"libopencore-amrnb",
	"libopencore-amrwb",
	"libopenh264",
	"libopenh265",
	"libopenjpeg",
	"libopus",
	"libschroedinger",
	"libshine",
	"libsnappy",
	"libspeex",
	"libstagefright-h264",
	"libtheora",
	"libtwolame",
	"libutvideo",
	"libvo-aacenc",
	"libvo-amrwbenc",
	"libvorbis",
	"libvpx",
	"libwavpack",
	"libwebp",
	"libx264",
	"libx265",
	"libavs",
	"libxvid",

	// other
	"libdrm",
	"nvenc",
	"vulkan",

	// protocols
	"libsmbclient",
	"libssh",
}

// HWAccel describes one hardware acceleration backend and the platforms it
// can be compiled for. A selection whose OS (or arch, when constrained)
// does not match the target is silently dropped rather than passed through.
type HWAccel struct {
	Name   string
	OSes   []string // target OSes the backend builds on
	Arches []string // nil means every arch
	Flags  []string // configure flags the selection expands to
}

// HWAccels is the platform gating table for acceleration backends.
var HWAccels = []HWAccel{
	{
		Name:  "videotoolbox",
		OSes:  []string{"ios", "macos"},
		Flags: []string{"--enable-videotoolbox"},
	},
	{
		Name:  "audiotoolbox",
		OSes:  []string{"ios", "macos"},
		Flags: []string{"--enable-audiotoolbox"},
	},
	{
		Name:  "vaapi",
		OSes:  []string{"linux"},
		Flags: []string{"--enable-vaapi"},
	},
	{
		Name:  "d3d11va",
		OSes:  []string{"windows"},
		Flags: []string{"--enable-d3d11va"},
	},
	{
		Name:  "dxva2",
		OSes:  []string{"windows"},
		Flags: []string{"--enable-dxva2"},
	},
	{
		Name: "nvidia",
		OSes: []string{"linux", "windows"},
		Flags: []string{
			"--enable-libnpp",
			"--enable-cuda-nvcc",
			"--enable-cuvid",
			"--enable-nvenc",
			"--enable-cuda-llvm",
		},
	},
	{
		Name:  "libmfx",
		OSes:  []string{"linux", "windows"},
		Flags: []string{"--enable-libmfx"},
	},
	{
		Name: "mediacodec",
		OSes: []string{"android"},
		Flags: []string{
			"--enable-mediacodec",
			"--enable-jni",
			"--enable-decoder=h264_mediacodec",
			"--enable-decoder=hevc_mediacodec",
			"--enable-decoder=vp8_mediacodec",
			"--enable-decoder=vp9_mediacodec",
			"--enable-decoder=av1_mediacodec",
		},
	},
	{
		Name:   "amf",
		OSes:   []string{"linux", "windows"},
		Arches: []string{"x86_64"},
		Flags:  []string{"--enable-amf"},
	},
}

// allows reports whether the backend may be enabled for the platform.
func (h HWAccel) allows(p Platform) bool {
	osOK := false
	for _, os := range h.OSes {
		if os == p.OS {
			osOK = true
			break
		}
	}
	if !osOK {
		return false
	}
	if len(h.Arches) == 0 {
		return true
	}
	for _, arch := range h.Arches {
		if arch == p.Arch {
			return true
		}
	}
	return false
}
