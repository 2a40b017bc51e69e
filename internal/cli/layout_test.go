package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackview/pkg/errors"
)

func TestLayoutJSON(t *testing.T) {
	out, err := execute(t, "layout", "-n", "2", "--width", "1200", "--height", "800", "-f", "json")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	var r layoutReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if r.Count != 2 || r.MaxVisible != 3 {
		t.Errorf("count=%d max_visible=%d", r.Count, r.MaxVisible)
	}
	if len(r.Layouts) != 3 {
		t.Fatalf("got %d layouts, want 3 (two panels and the lookahead)", len(r.Layouts))
	}
	wantWidths := []float64{400, 800, 400}
	for i, w := range wantWidths {
		if r.Layouts[i].Size.X != w {
			t.Errorf("layout %d width = %v, want %v", i, r.Layouts[i].Size.X, w)
		}
	}
	if r.Layouts[2].Visible {
		t.Error("lookahead should not be visible")
	}
	if r.Viewport.Transition != nil {
		t.Error("transition should be absent unless --animating")
	}
}

func TestLayoutTable(t *testing.T) {
	out, err := execute(t, "layout", "-n", "3", "--width", "500", "--height", "400", "--animating")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"visible", "opacity", "max visible", "(1000, 0)", "translate3d(-1000px, 0px, 0)", "transform 2000ms ease-out"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestLayoutNoLookaheadWarning(t *testing.T) {
	out, err := execute(t, "layout", "-n", "2", "--width", "500", "--height", "400", "--no-lookahead")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(out, "--no-lookahead has no effect") {
		t.Errorf("expected single-visible warning:\n%s", out)
	}
}

func TestLayoutPolicyFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "stackview.yaml")
	if err := os.WriteFile(cfgPath, []byte("layout:\n  width_policy: equal\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "layout", "-n", "2", "--width", "1200", "--height", "800", "-f", "json", "--config", cfgPath)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var r layoutReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatal(err)
	}
	if r.Layouts[0].Size.X != 600 || r.Layouts[1].Size.X != 600 {
		t.Errorf("equal policy widths = %v, %v", r.Layouts[0].Size.X, r.Layouts[1].Size.X)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"negative count", []string{"--count=-1"}, errors.ErrCodeInvalidCount},
		{"negative width", []string{"--width=-1"}, errors.ErrCodeInvalidSize},
		{"unknown policy", []string{"--policy", "golden"}, errors.ErrCodeInvalidPolicy},
		{"unknown format", []string{"-f", "xml"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"layout"}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestInvalidConfigFailsEveryCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "stackview.toml")
	if err := os.WriteFile(cfgPath, []byte("[layout]\nwidth_policy = \"golden\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{{"layout"}, {"cache", "path"}} {
		_, err := execute(t, append(args, "--config", cfgPath)...)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%v: err = %v, want INVALID_CONFIG", args, err)
		}
	}
}
