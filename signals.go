package ffbuild

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SignalSet is the flat namespace of named boolean signals handed to the
// binding generator, together with the declared universe of every legal
// signal name. The universe lets downstream tooling statically enumerate
// conditional-compilation keys even when a signal is false or unresolved
// for this particular build.
//
// EmitSignals is the sole writer; a SignalSet is read-only afterwards.
type SignalSet struct {
	values   map[string]bool
	universe []string
}

// EmitSignals merges the static component selection, the probe facts and
// the version gates into one signal namespace, and derives the coarse
// release-era signals from the gate grid.
func EmitSignals(opts *Options, report *ProbeReport) (*SignalSet, error) {
	values := make(map[string]bool)

	for _, lib := range Libraries {
		values[lib.Name] = opts.Selected(lib.Name)
	}

	for _, fact := range report.Facts {
		name := strings.ToLower(fact.Name)
		values[name] = fact.True
		values[name+"_is_defined"] = fact.Defined
	}

	for key, v := range report.Gates {
		values[key] = v
	}

	// An era label X.Y is reached exactly when the installed version is
	// strictly greater than (major, minor-1).
	for _, era := range eraVersions {
		key := gateKey("avcodec", era.Major, era.Minor-1)
		reached, ok := report.Gates[key]
		if !ok {
			return nil, stageErrorf(ErrProbeProtocol,
				"era label %s needs gate %s, which is outside the probed grid", era.Label, key)
		}
		values[era.Label] = reached
	}

	return &SignalSet{values: values, universe: SignalUniverse()}, nil
}

// SignalUniverse enumerates every signal name this engine can ever emit,
// independent of selection and probe outcome. Sorted and duplicate-free.
func SignalUniverse() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, lib := range Libraries {
		add(lib.Name)
	}
	for _, spec := range ProbeSpecs {
		name := strings.ToLower(spec.Name)
		add(name)
		add(name + "_is_defined")
	}
	for _, gate := range VersionGates {
		for major := gate.MajorLo; major < gate.MajorHi; major++ {
			for minor := gate.MinorLo; minor < gate.MinorHi; minor++ {
				add(gateKey(gate.Library, major, minor))
			}
		}
	}
	for _, era := range eraVersions {
		add(era.Label)
	}

	sort.Strings(names)
	return names
}

// Lookup returns a signal's value and whether it was resolved for this
// build. Signals in the universe but gated out stay unresolved.
func (s *SignalSet) Lookup(name string) (value, ok bool) {
	value, ok = s.values[name]
	return value, ok
}

// Names returns the resolved signal names in sorted order.
func (s *SignalSet) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// True returns the sorted names of every signal resolved to true.
func (s *SignalSet) True() []string {
	var names []string
	for name, v := range s.values {
		if v {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Universe returns the declared universe of legal signal names.
func (s *SignalSet) Universe() []string {
	return s.universe
}

// WriteTo emits the resolved signals as sorted name=value lines. The output
// is byte-identical for identical inputs.
func (s *SignalSet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, name := range s.Names() {
		n, err := fmt.Fprintf(w, "%s=%t\n", name, s.values[name])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// YAML renders the signal set for file-based consumers: the resolved
// values plus the universe.
func (s *SignalSet) YAML() ([]byte, error) {
	doc := struct {
		Signals  map[string]bool `yaml:"signals"`
		Universe []string        `yaml:"universe"`
	}{
		Signals:  s.values,
		Universe: s.universe,
	}
	return yaml.Marshal(&doc)
}
