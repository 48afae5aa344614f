package loader

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PubspecFile is the Dart package manifest at the project root.
const PubspecFile = "pubspec.yaml"

// Project describes the Flutter project being migrated.
type Project struct {
	// Root is the absolute project directory.
	Root string
	// Name is the package name from pubspec.yaml, empty when there is no manifest.
	Name string
	// Flutter reports whether the package depends on the Flutter SDK.
	Flutter bool
	// ScanDir is the directory that will actually be scanned.
	ScanDir string
}

type pubspec struct {
	Name         string         `yaml:"name"`
	Dependencies map[string]any `yaml:"dependencies"`
}

// LoadProject inspects root and resolves the directory to scan.
//
// A missing pubspec.yaml is not an error: the project is still migrated, but a
// warning is logged since relative imports assume the standard lib/ layout.
//
// It implements a fallback similar to a recursive retry: if scanDir does not exist
// but sourceDir does (a project without a features/ folder), the whole source
// directory is scanned instead.
//
// root: project directory.
// sourceDir: source root relative to root (usually "lib").
// scanDir: preferred scan directory relative to root (usually "lib/features").
func LoadProject(root, sourceDir, scanDir string) (Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Project{}, err
	}
	p := Project{Root: absRoot}

	data, err := os.ReadFile(filepath.Join(absRoot, PubspecFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("[WARN] No %s in %s; assuming a Flutter layout.", PubspecFile, absRoot)
	case err != nil:
		return Project{}, fmt.Errorf("read %s: %w", PubspecFile, err)
	default:
		var manifest pubspec
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return Project{}, fmt.Errorf("parse %s: %w", PubspecFile, err)
		}
		p.Name = manifest.Name
		_, p.Flutter = manifest.Dependencies["flutter"]
		if !p.Flutter {
			log.Printf("[WARN] Package %q does not depend on flutter.", p.Name)
		}
	}

	scan := filepath.Join(absRoot, scanDir)
	if isDir(scan) {
		p.ScanDir = scanDir
		return p, nil
	}
	if scanDir != sourceDir && isDir(filepath.Join(absRoot, sourceDir)) {
		log.Printf("[INFO] %s not found. Scanning %s instead.", scanDir, sourceDir)
		p.ScanDir = sourceDir
		return p, nil
	}
	return Project{}, fmt.Errorf("directory %s not found in %s", scanDir, absRoot)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
