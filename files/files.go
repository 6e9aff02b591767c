package files

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Finder locates project files relative to a project directory.
type Finder interface {
	FindEnv() (string, error)
	FindConfig() (string, error)
}

func NewFinder(projectPath string) Finder {
	return &finder{
		ProjectPath: projectPath,
	}
}

type finder struct {
	ProjectPath string
}

func (f *finder) FindEnv() (string, error) {
	return f.first(".env")
}

func (f *finder) FindConfig() (string, error) {
	return f.first("fxsema.yaml", "fxsema.yml", "fxsema.toml")
}

func (f *finder) first(names ...string) (string, error) {
	if f.ProjectPath == "" {
		return "", errors.New("no project path")
	}

	for _, name := range names {
		candidate := filepath.Join(f.ProjectPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("none of %v found in %v", names, f.ProjectPath)
}
