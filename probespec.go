package ffbuild

// ProbeSpecs is the declarative table of discoverable facts: every FF_API_*
// deprecation guard worth knowing about, with the header it lives in and
// the component library that gates it. Entries with an empty component come
// from avutil and are always probed.
var ProbeSpecs = []ProbeSpec{
	{Header: "libavutil/avutil.h", Name: "FF_API_OLD_AVOPTIONS"},
	{Header: "libavutil/avutil.h", Name: "FF_API_PIX_FMT"},
	{Header: "libavutil/avutil.h", Name: "FF_API_CONTEXT_SIZE"},
	{Header: "libavutil/avutil.h", Name: "FF_API_PIX_FMT_DESC"},
	{Header: "libavutil/avutil.h", Name: "FF_API_AV_REVERSE"},
	{Header: "libavutil/avutil.h", Name: "FF_API_AUDIOCONVERT"},
	{Header: "libavutil/avutil.h", Name: "FF_API_CPU_FLAG_MMX2"},
	{Header: "libavutil/avutil.h", Name: "FF_API_LLS_PRIVATE"},
	{Header: "libavutil/avutil.h", Name: "FF_API_AVFRAME_LAVC"},
	{Header: "libavutil/avutil.h", Name: "FF_API_VDPAU"},
	{Header: "libavutil/avutil.h", Name: "FF_API_GET_CHANNEL_LAYOUT_COMPAT"},
	{Header: "libavutil/avutil.h", Name: "FF_API_XVMC"},
	{Header: "libavutil/avutil.h", Name: "FF_API_OPT_TYPE_METADATA"},
	{Header: "libavutil/avutil.h", Name: "FF_API_DLOG"},
	{Header: "libavutil/avutil.h", Name: "FF_API_HMAC"},
	{Header: "libavutil/avutil.h", Name: "FF_API_VAAPI"},
	{Header: "libavutil/avutil.h", Name: "FF_API_PKT_PTS"},
	{Header: "libavutil/avutil.h", Name: "FF_API_ERROR_FRAME"},
	{Header: "libavutil/avutil.h", Name: "FF_API_FRAME_QP"},

	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_VIMA_DECODER"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_REQUEST_CHANNELS"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_OLD_DECODE_AUDIO"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_OLD_ENCODE_AUDIO"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_OLD_ENCODE_VIDEO"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CODEC_ID"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AUDIO_CONVERT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AVCODEC_RESAMPLE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_DEINTERLACE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_DESTRUCT_PACKET"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_GET_BUFFER"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MISSING_SAMPLE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_LOWRES"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CAP_VDPAU"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_BUFS_VDPAU"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_VOXWARE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_SET_DIMENSIONS"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_DEBUG_MV"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AC_VLC"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_OLD_MSMPEG4"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_ASPECT_EXTENDED"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_THREAD_OPAQUE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CODEC_PKT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_ARCH_ALPHA"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_ERROR_RATE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_QSCALE_TYPE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MB_TYPE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MAX_BFRAMES"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_NEG_LINESIZES"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_EMU_EDGE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_ARCH_SH4"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_ARCH_SPARC"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_UNUSED_MEMBERS"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_IDCT_XVIDMMX"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_INPUT_PRESERVED"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_NORMALIZE_AQP"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_GMC"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MV0"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CODEC_NAME"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AFD"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_VISMV"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_DV_FRAME_PROFILE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AUDIOENC_DELAY"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_VAAPI_CONTEXT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AVCTX_TIMEBASE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MPV_OPT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_STREAM_CODEC_TAG"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_QUANT_BIAS"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_RC_STRATEGY"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CODED_FRAME"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_MOTION_EST"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_WITHOUT_PREFIX"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CONVERGENCE_DURATION"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_PRIVATE_OPT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_CODER_TYPE"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_RTP_CALLBACK"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_STAT_BITS"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_VBV_DELAY"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_SIDEDATA_ONLY_PKT"},
	{Header: "libavcodec/avcodec.h", Component: "avcodec", Name: "FF_API_AVPICTURE"},

	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_LAVF_BITEXACT"},
	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_LAVF_FRAC"},
	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_URL_FEOF"},
	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_PROBESIZE_32"},
	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_LAVF_AVCTX"},
	{Header: "libavformat/avformat.h", Component: "avformat", Name: "FF_API_OLD_OPEN_CALLBACKS"},

	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_AVFILTERPAD_PUBLIC"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_FOO_COUNT"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_OLD_FILTER_OPTS"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_OLD_FILTER_OPTS_ERROR"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_AVFILTER_OPEN"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_OLD_FILTER_REGISTER"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_OLD_GRAPH_PARSE"},
	{Header: "libavfilter/avfilter.h", Component: "avfilter", Name: "FF_API_NOCONST_GET_NAME"},

	{Header: "libavresample/avresample.h", Component: "avresample", Name: "FF_API_RESAMPLE_CLOSE_OPEN"},

	{Header: "libswscale/swscale.h", Component: "swscale", Name: "FF_API_SWS_CPU_CAPS"},
	{Header: "libswscale/swscale.h", Component: "swscale", Name: "FF_API_ARCH_BFIN"},
}

// VersionGates is the probed threshold grid. One signal per cell,
// evaluated by the compiler against the installed version macros.
var VersionGates = []VersionGate{
	{Library: "avcodec", MajorLo: 56, MajorHi: 63, MinorLo: 0, MinorHi: 108},
}

// eraVersion maps a coarse release label to the libavcodec version the
// release shipped with. A label's era signal is true when the installed
// libavcodec version is at least that cutoff, looked up in the gate grid at
// (major, minor-1).
type eraVersion struct {
	Label string
	Major int
	Minor int
}

var eraVersions = []eraVersion{
	{"ffmpeg_3_0", 57, 24},
	{"ffmpeg_3_1", 57, 48},
	{"ffmpeg_3_2", 57, 64},
	{"ffmpeg_3_3", 57, 89},
	// TODO: ffmpeg_3_1 is listed a second time here with the 57.107 cutoff.
	// That slot lines up with the 3.4 release and probably should read
	// ffmpeg_3_4; kept as found until confirmed against release history.
	{"ffmpeg_3_1", 57, 107},
	{"ffmpeg_4_0", 58, 18},
	{"ffmpeg_4_1", 58, 35},
	{"ffmpeg_4_2", 58, 54},
	{"ffmpeg_4_3", 58, 91},
	{"ffmpeg_4_4", 58, 100},
	{"ffmpeg_5_0", 59, 18},
	{"ffmpeg_5_1", 59, 37},
	{"ffmpeg_6_0", 60, 3},
	{"ffmpeg_6_1", 60, 31},
	{"ffmpeg_7_0", 61, 3},
	{"ffmpeg_7_1", 61, 19},
	{"ffmpeg_8_0", 62, 8},
}
