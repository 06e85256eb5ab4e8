package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/internal/testutil"
	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// quietOutput discards command output for the duration of a test.
func quietOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvSettings, "")
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "check", "settings", "duplicate"} {
		if !strings.Contains(strings.Join(names, " "), want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	quietOutput(t)
	root := t.TempDir()
	fronts := testutil.Deck(t, filepath.Join(root, "fronts"), 5)
	out := filepath.Join(root, "deck.pdf")

	if err := execute(t, "generate", fronts, "-o", out, "--rows", "2", "--columns", "2", "--border"); err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("output missing or empty: %v", err)
	}
}

func TestGenerateInfersBackMode(t *testing.T) {
	quietOutput(t)
	root := t.TempDir()
	fronts := testutil.Deck(t, filepath.Join(root, "fronts"), 3)
	backs := testutil.Deck(t, filepath.Join(root, "backs"), 2)

	// A back directory selects unique backs, which needs one back per front.
	err := execute(t, "generate", fronts, backs, "-o", filepath.Join(root, "deck.json"))
	if !errors.Is(err, errors.ErrCodeInsufficientBackImages) {
		t.Errorf("error = %v, want INSUFFICIENT_BACK_IMAGES", err)
	}
}

func TestGenerateDoesNotFit(t *testing.T) {
	quietOutput(t)
	root := t.TempDir()
	fronts := testutil.Deck(t, filepath.Join(root, "fronts"), 3)
	out := filepath.Join(root, "deck.pdf")

	err := execute(t, "generate", fronts, "-o", out, "--paper", "a5")
	if !errors.Is(err, errors.ErrCodeDoesNotFit) {
		t.Fatalf("error = %v, want DOES_NOT_FIT", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written for a grid that does not fit")
	}
}

func TestCheckCommand(t *testing.T) {
	buf := quietOutput(t)
	root := t.TempDir()
	fronts := testutil.Deck(t, filepath.Join(root, "fronts"), 4)

	if err := execute(t, "check", fronts); err != nil {
		t.Fatalf("check error = %v", err)
	}
	// 6×8 px images against a 63×88 mm card differ by more than 2%.
	if !strings.Contains(buf.String(), "card-000.png") {
		t.Errorf("aspect mismatch table missing:\n%s", buf.String())
	}
}

func TestSettingsInitAndShow(t *testing.T) {
	buf := quietOutput(t)
	path := filepath.Join(t.TempDir(), "cards.toml")

	if err := execute(t, "settings", "init", "--settings", path); err != nil {
		t.Fatalf("init error = %v", err)
	}
	s, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(layout.DefaultSettings(), s); diff != "" {
		t.Errorf("written settings (-want +got):\n%s", diff)
	}

	if err := execute(t, "settings", "init", "--settings", path); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want INVALID_PATH", err)
	}

	buf.Reset()
	if err := execute(t, "settings", "show", "--settings", path); err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(buf.String(), config.KeyGuideLineWidth) {
		t.Errorf("show output missing keys:\n%s", buf.String())
	}
}

func TestDuplicateCommand(t *testing.T) {
	quietOutput(t)
	root := t.TempDir()
	src := testutil.Deck(t, filepath.Join(root, "src"), 2)
	dst := filepath.Join(root, "dst")

	if err := execute(t, "duplicate", src, dst, "-n", "3"); err != nil {
		t.Fatalf("duplicate error = %v", err)
	}
	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 6 {
		t.Errorf("wrote %d files, want 6", len(entries))
	}
}
