package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akdl/audioknigi-dl/internal/config"
)

func TestLoadSettings_FlagOverrides(t *testing.T) {
	opts := &options{
		outputDir: "/books",
		yes:       true,
		oneFile:   true,
		noTag:     true,
		timeout:   30,
	}

	settings, err := loadSettings(opts)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}

	if settings.OutputDir != "/books" {
		t.Errorf("OutputDir = %q, want /books", settings.OutputDir)
	}
	if !settings.ForceOverwrite {
		t.Error("-y should set ForceOverwrite")
	}
	if !settings.OneFile {
		t.Error("-1 should set OneFile")
	}
	if settings.TagChapters {
		t.Error("--no-tag should disable tagging")
	}
	if settings.PlaylistWaitSeconds != 30 {
		t.Errorf("PlaylistWaitSeconds = %d, want 30", settings.PlaylistWaitSeconds)
	}
}

func TestLoadSettings_DefaultsWithoutFlags(t *testing.T) {
	settings, err := loadSettings(&options{})
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}

	if settings.OneFile {
		t.Error("one-file mode must stay off without the flag")
	}
	if !settings.TagChapters {
		t.Error("tagging should default on")
	}
	if settings.PlaylistWaitSeconds != 60 {
		t.Errorf("PlaylistWaitSeconds = %d, want 60", settings.PlaylistWaitSeconds)
	}
}

func TestLoadSettings_BadConfigPath(t *testing.T) {
	_, err := loadSettings(&options{configPath: filepath.Join(t.TempDir(), "nope.json")})
	if err == nil {
		t.Error("a --config path that does not exist must error")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetIn(strings.NewReader(tt.input))

			if got := confirm(cmd, "Overwrite?"); got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRun_DeclinedOverwriteTerminates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glava-1.mp3"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"https://audioknigi.club/some-book", "-o", dir})
	cmd.SetIn(strings.NewReader("n\n"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("declining the overwrite prompt must exit cleanly, got %v", err)
	}
	if !strings.Contains(out.String(), "Terminated.") {
		t.Errorf("output = %q, want it to report termination", out.String())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory changed after a declined prompt: %d entries", len(entries))
	}
}

func TestConfirmOverwrite_EmptyDirSkipsPrompt(t *testing.T) {
	cmd := newRootCommand()
	// An answered "n" would decline, so proceeding proves the prompt
	// was never consulted.
	cmd.SetIn(strings.NewReader("n\n"))
	var out bytes.Buffer
	cmd.SetOut(&out)

	ok, err := confirmOverwrite(cmd, config.DefaultSettings(), t.TempDir())
	if err != nil {
		t.Fatalf("confirmOverwrite: %v", err)
	}
	if !ok {
		t.Error("an empty directory must proceed without a prompt")
	}
	if strings.Contains(out.String(), "[y/N]") {
		t.Errorf("prompt printed for an empty directory: %q", out.String())
	}
}

func TestConfirmOverwrite_ForceSkipsPrompt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glava-1.mp3"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	settings := config.DefaultSettings()
	settings.ForceOverwrite = true

	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader("n\n"))

	ok, err := confirmOverwrite(cmd, settings, dir)
	if err != nil {
		t.Fatalf("confirmOverwrite: %v", err)
	}
	if !ok {
		t.Error("-y must skip the prompt even for a non-empty directory")
	}
}

func TestRootCommand_RequiresURL(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("running without a book URL should error")
	}
}

func TestRootCommand_FlagSurface(t *testing.T) {
	cmd := newRootCommand()

	for flag, shorthand := range map[string]string{
		"output-dir": "o",
		"yes":        "y",
		"one-file":   "1",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("missing --%s flag", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("--%s shorthand = %q, want %q", flag, f.Shorthand, shorthand)
		}
	}
}
