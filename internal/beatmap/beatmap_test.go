package beatmap

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"gitlab.com/gomidi/midi/v2/smf"
)

func TestRead(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []Change
	}{
		{
			name: "single change then terminal",
			in: "A 1 1 1 0:00:00.000 1 1 60\n" +
				"A 1 2 1 0:00:01.000 1 1\n",
			want: []Change{
				{Tick: 0, BPM: 60, QPM: 60, Label: "A", Section: 1, Measure: 1, Beat: 1, Timestamp: "0:00:00.000"},
			},
		},
		{
			name: "non quarter beat value",
			in: "C5 3 5 2 0:02:56.280 3 2 60\n" +
				"C5 3 5 3 0:02:57.780 3 2 60\n" +
				"C5 3 6 1 0:02:59.280 1 1\n",
			want: []Change{
				{Tick: 0, BPM: 60, QPM: 90, Label: "C5", Section: 3, Measure: 5, Beat: 2, Timestamp: "0:02:56.280"},
				{Tick: 720, BPM: 60, QPM: 90, Label: "C5", Section: 3, Measure: 5, Beat: 3, Timestamp: "0:02:57.780"},
			},
		},
		{
			name: "terminal line halts parsing",
			in: "A 1 1 1 0:00:00.000 1 1 60\n" +
				"A 1 2 1 0:00:01.000 1 1\n" +
				"garbage that would not parse\n",
			want: []Change{
				{Tick: 0, BPM: 60, QPM: 60, Label: "A", Section: 1, Measure: 1, Beat: 1, Timestamp: "0:00:00.000"},
			},
		},
		{
			name: "blank lines skipped",
			in: "\nA 1 1 1 0:00:00.000 1 1 120\n\n" +
				"A 1 1 2 0:00:00.500 1 1 120\n",
			want: []Change{
				{Tick: 0, BPM: 120, QPM: 120, Label: "A", Section: 1, Measure: 1, Beat: 1, Timestamp: "0:00:00.000"},
				{Tick: 480, BPM: 120, QPM: 120, Label: "A", Section: 1, Measure: 1, Beat: 2, Timestamp: "0:00:00.500"},
			},
		},
		{
			name: "no terminal line",
			in:   "A 1 1 1 0:00:00.000 2 1 72\n",
			want: []Change{
				{Tick: 0, BPM: 72, QPM: 144, Label: "A", Section: 1, Measure: 1, Beat: 1, Timestamp: "0:00:00.000"},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tc.in), smf.MetricTicks(480))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Read: got %d changes, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("change %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       string
		wantLine int
	}{
		{
			name:     "too few fields",
			in:       "A 1 1 1 0:00:00.000 1\n",
			wantLine: 1,
		},
		{
			name:     "too many fields",
			in:       "A 1 1 1 0:00:00.000 1 1 60 extra\n",
			wantLine: 1,
		},
		{
			name: "non numeric tempo",
			in: "A 1 1 1 0:00:00.000 1 1 60\n" +
				"A 1 1 2 0:00:01.000 1 1 fast\n",
			wantLine: 2,
		},
		{
			name:     "non numeric section",
			in:       "A x 1 1 0:00:00.000 1 1 60\n",
			wantLine: 1,
		},
		{
			name:     "zero beat value denominator",
			in:       "A 1 1 1 0:00:00.000 1 0 60\n",
			wantLine: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.in), smf.MetricTicks(480))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Read: got error %v, want a ParseError", err)
			}
			if perr.Line != tc.wantLine {
				t.Errorf("Read: error on line %d, want line %d", perr.Line, tc.wantLine)
			}
		})
	}
}

func TestTickAccumulation(t *testing.T) {
	in := "A 1 1 1 0:00:00.000 3 2 60\n" +
		"A 1 1 2 0:00:01.500 1 2 60\n" +
		"A 1 1 3 0:00:02.000 1 1 60\n"
	got, err := Read(strings.NewReader(in), smf.MetricTicks(480))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wantTicks := []int64{0, 720, 960}
	if len(got) != len(wantTicks) {
		t.Fatalf("Read: got %d changes, want %d", len(got), len(wantTicks))
	}
	for i, want := range wantTicks {
		if got[i].Tick != want {
			t.Errorf("change %d: got tick %d, want %d", i, got[i].Tick, want)
		}
	}
}

func TestReadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"perf.beatmap": &fstest.MapFile{
			Data: []byte("A 1 1 1 0:00:00.000 1 1 90\nA 1 2 1 0:00:00.667 1 1\n"),
		},
	}
	got, err := ReadFile(fsys, "perf.beatmap", smf.MetricTicks(480))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 1 || got[0].QPM != 90 {
		t.Errorf("ReadFile: got %+v, want one change with qpm 90", got)
	}

	if _, err := ReadFile(fsys, "missing.beatmap", smf.MetricTicks(480)); err == nil {
		t.Error("ReadFile: no error for missing file")
	}
}
