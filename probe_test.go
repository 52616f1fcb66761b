package ffbuild

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// fakeCompiler is a canned CapabilityCompiler: it records the generated
// source and returns a fixed stdout, letting the probe algorithm run
// without a C toolchain.
type fakeCompiler struct {
	stdout     string
	compileErr error
	runErr     error
	lastSource string
}

func (f *fakeCompiler) Compile(_ context.Context, source string) (string, error) {
	f.lastSource = source
	if f.compileErr != nil {
		return "", f.compileErr
	}
	return "check", nil
}

func (f *fakeCompiler) Run(context.Context, string) (string, error) {
	if f.runErr != nil {
		return "", f.runErr
	}
	return f.stdout, nil
}

// fakeProbeOutput synthesizes a full probe stdout for the given specs and
// gates, as if the installed library had the given avcodec version. Macro
// facts are all reported undefined.
func fakeProbeOutput(specs []ProbeSpec, gates []VersionGate, selected func(string) bool, major, minor int) string {
	var b strings.Builder
	for _, spec := range specs {
		if spec.Component != "" && !selected(spec.Component) {
			continue
		}
		fmt.Fprintf(&b, "%s00\n", spec.Tag())
	}
	for _, gate := range gates {
		for m := gate.MajorLo; m < gate.MajorHi; m++ {
			for n := gate.MinorLo; n < gate.MinorHi; n++ {
				v := 0
				if major > m || (major == m && minor > n) {
					v = 1
				}
				fmt.Fprintf(&b, "[%s]%d\n", gateKey(gate.Library, m, n), v)
			}
		}
	}
	return b.String()
}

func allSelected(string) bool { return true }

func TestProbeSourceGating(t *testing.T) {
	specs := []ProbeSpec{
		{Header: "x.h", Name: "OLD_API"},
		{Header: "libavdevice/avdevice.h", Component: "avdevice", Name: "GATED_API"},
	}
	baseOnly := func(component string) bool { return component == "avutil" }

	source := probeSource(specs, nil, baseOnly)

	require.Contains(t, source, "#include <x.h>")
	require.Contains(t, source, "[OLD_API]")
	require.NotContains(t, source, "avdevice.h",
		"unselected component must contribute no include")
	require.NotContains(t, source, "GATED_API",
		"unselected component must contribute no print statement")
}

func TestProbeSourceDeduplicatesHeaders(t *testing.T) {
	specs := []ProbeSpec{
		{Header: "x.h", Name: "A"},
		{Header: "x.h", Name: "B"},
	}

	source := probeSource(specs, nil, allSelected)
	require.Equal(t, 1, strings.Count(source, "#include <x.h>"))
}

func TestProbeSourceMacroBlock(t *testing.T) {
	specs := []ProbeSpec{{Header: "x.h", Name: "OLD_API"}}

	source := probeSource(specs, nil, allSelected)

	for _, want := range []string{
		"#ifndef OLD_API_is_defined",
		"#define OLD_API 0",
		"#define OLD_API_is_defined 0",
		"#define OLD_API_is_defined 1",
		`printf("[OLD_API]%d%d\n", OLD_API, OLD_API_is_defined);`,
	} {
		require.Contains(t, source, want)
	}
}

func TestProbeSourceVersionGateExpression(t *testing.T) {
	gates := []VersionGate{{Library: "avcodec", MajorLo: 56, MajorHi: 57, MinorLo: 0, MinorHi: 1}}

	source := probeSource(nil, gates, allSelected)

	require.Contains(t, source,
		`printf("[avcodec_version_greater_than_56_0]%d\n", LIBAVCODEC_VERSION_MAJOR > 56 || (LIBAVCODEC_VERSION_MAJOR == 56 && LIBAVCODEC_VERSION_MINOR > 0));`,
		"the compiler, not this engine, evaluates version arithmetic")
}

func TestRunProbeExampleScenario(t *testing.T) {
	specs := []ProbeSpec{{Header: "x.h", Name: "OLD_API"}}
	comp := &fakeCompiler{stdout: "[OLD_API]11\n"}

	report, err := RunProbe(context.Background(), comp, specs, nil, allSelected)
	require.NoError(t, err)
	require.Len(t, report.Facts, 1)
	require.Equal(t, ProbeResult{Name: "OLD_API", True: true, Defined: true}, report.Facts[0])
}

func TestParseProbeOutputDigits(t *testing.T) {
	testCases := []struct {
		stdout  string
		isTrue  bool
		defined bool
	}{
		{"[V]11", true, true},
		{"[V]10", true, false},
		{"[V]01", false, true},
		{"[V]00", false, false},
		// Any non-'0' first character is signal-true.
		{"[V]91", true, true},
		{"[V]-1", true, true},
	}

	specs := []ProbeSpec{{Header: "x.h", Name: "V"}}
	for _, tc := range testCases {
		t.Run(tc.stdout, func(t *testing.T) {
			report, err := parseProbeOutput(tc.stdout, specs, nil, allSelected)
			require.NoError(t, err)
			require.Equal(t, tc.isTrue, report.Facts[0].True)
			require.Equal(t, tc.defined, report.Facts[0].Defined)
		})
	}
}

func TestParseProbeOutputMissingTag(t *testing.T) {
	specs := []ProbeSpec{
		{Header: "x.h", Name: "PRESENT"},
		{Header: "x.h", Name: "ABSENT"},
	}

	_, err := parseProbeOutput("[PRESENT]11\n", specs, nil, allSelected)
	require.Error(t, err, "a missing tag means spec table and headers disagree")
	require.ErrorIs(t, err, ErrProbeProtocol)
	require.Contains(t, err.Error(), "[ABSENT]")
}

func TestParseProbeOutputTruncated(t *testing.T) {
	specs := []ProbeSpec{{Header: "x.h", Name: "V"}}

	_, err := parseProbeOutput("[V]1", specs, nil, allSelected)
	require.ErrorIs(t, err, ErrProbeProtocol)
}

func TestRunProbeCompileFailureIsFatal(t *testing.T) {
	comp := &fakeCompiler{compileErr: errors.New("cc: catastrophic failure")}

	_, err := RunProbe(context.Background(), comp, ProbeSpecs, nil, allSelected)
	require.ErrorIs(t, err, ErrProbeCompile)
}

func TestRunProbeExecutionFailureIsFatal(t *testing.T) {
	comp := &fakeCompiler{runErr: errors.New("segfault")}

	_, err := RunProbe(context.Background(), comp, ProbeSpecs, nil, allSelected)
	require.ErrorIs(t, err, ErrProbeExecution)
}

// Every tag must be prefix-free against every other tag, or the positional
// parser could read digits belonging to a different signal.
func TestTagPrefixFreeness(t *testing.T) {
	var tags []string
	for _, spec := range ProbeSpecs {
		tags = append(tags, spec.Tag())
	}
	for _, gate := range VersionGates {
		for major := gate.MajorLo; major < gate.MajorHi; major++ {
			for minor := gate.MinorLo; minor < gate.MinorHi; minor++ {
				tags = append(tags, "["+gateKey(gate.Library, major, minor)+"]")
			}
		}
	}

	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		require.False(t, seen[tag], "duplicate tag %s", tag)
		seen[tag] = true
	}

	for i, a := range tags {
		for j, b := range tags {
			if i == j {
				continue
			}
			require.False(t, strings.HasPrefix(a, b), "tag %s is a prefix of %s", b, a)
		}
	}
}

func TestRunProbeFullTables(t *testing.T) {
	stdout := fakeProbeOutput(ProbeSpecs, VersionGates, allSelected, 61, 19)
	comp := &fakeCompiler{stdout: stdout}

	report, err := RunProbe(context.Background(), comp, ProbeSpecs, VersionGates, allSelected)
	require.NoError(t, err)
	require.Len(t, report.Facts, len(ProbeSpecs))

	require.True(t, report.Gates[gateKey("avcodec", 58, 18)])
	require.True(t, report.Gates[gateKey("avcodec", 61, 18)])
	require.False(t, report.Gates[gateKey("avcodec", 61, 19)], "strictly greater, not equal")
	require.False(t, report.Gates[gateKey("avcodec", 62, 0)])
}
