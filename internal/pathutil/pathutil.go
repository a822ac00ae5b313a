// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "tl",
			configFileName: "config.yml",
			dbFileName:     "tl.db",
			logFileName:    "tl.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}
	return paths
}

func Dir() string {
	return paths.configDir
}

func ConfigFilePath() string {
	return paths.configFilePath
}

func DBFilePath() string {
	return paths.dbFilePath
}

func LogFilePath() string {
	return paths.logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	tlEnv := strings.TrimSpace(os.Getenv("TL_ENV"))
	if tlEnv != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", tlEnv)
		p.dbFileName = fmt.Sprintf("tl_%s.db", tlEnv)
		p.logFileName = fmt.Sprintf("tl_%s.log", tlEnv)
	}
}

func (p *Paths) computePaths() error {
	relPath := filepath.Join(p.configDir, p.configFileName)

	configFilePath, err := xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	p.configFilePath = configFilePath

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}
