package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tl/config"
	"github.com/ayoisaiah/tl/internal/testutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Display: config.Display{
			TwentyFourHour: false,
			DarkTheme:      true,
		},
		Settings: config.Settings{
			DefaultCategory: "",
			StopCmd:         "",
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, defaultConfig(), cfg)

	written, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal("failed to read config", err)
	}

	assert.True(t, strings.Contains(string(written), "dark_theme"))

	// Reading the freshly written file back must yield the same config.
	reread, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, cfg, reread)
}

func TestViperReadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	err := testutil.CopyFile("testdata/modified_config.yml", configPath)
	if err != nil {
		t.Fatal(err)
	}

	want := &config.Config{
		Display: config.Display{
			TwentyFourHour: true,
			DarkTheme:      false,
		},
		Settings: config.Settings{
			DefaultCategory: "deep-work",
			StopCmd:         "echo done",
		},
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, want, cfg)
}

func TestCLIConfigOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	f := flag.NewFlagSet("stop", flag.PanicOnError)
	_ = f.String("cmd", "", "")

	if err := f.Set("cmd", "notify-send done"); err != nil {
		t.Fatal(err)
	}

	ctx := cli.NewContext(&cli.App{}, f, nil)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "notify-send done", cfg.Settings.StopCmd)
}
