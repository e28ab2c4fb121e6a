// Package template implements logic-less (Mustache-style) prompt template
// rendering with a three-tier resolution chain: project, then user, then
// bundled defaults.
package template

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed templates/*.tmpl
var bundled embed.FS

// WriteBundled copies every bundled template into dir (creating it if
// needed), skipping any file that already exists so repeated `init`
// invocations stay idempotent.
func WriteBundled(dir string) error {
	entries, err := bundled.ReadDir("templates")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		dest := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		data, err := bundled.ReadFile("templates/" + entry.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// Engine resolves a template name to its source text by checking, in
// order, the project directory, the user's home directory, and finally the
// bundled defaults; the first hit wins.
type Engine struct {
	ProjectDir string
	UserHome   string
}

// NewEngine constructs an Engine rooted at projectDir, using the given
// user home directory (pass "" to skip the user tier).
func NewEngine(projectDir, userHome string) *Engine {
	return &Engine{ProjectDir: projectDir, UserHome: userHome}
}

func (e *Engine) candidates(name string) []string {
	var out []string
	if e.ProjectDir != "" {
		out = append(out, filepath.Join(e.ProjectDir, ".jwright", "templates", name))
	}
	if e.UserHome != "" {
		out = append(out, filepath.Join(e.UserHome, ".jwright", "templates", name))
	}
	return out
}

// Resolve returns the source text of the named template, trying project,
// then user, then bundled tiers in order.
func (e *Engine) Resolve(name string) (string, error) {
	for _, path := range e.candidates(name) {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
	}
	data, err := bundled.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether name resolves at any of the three tiers.
func (e *Engine) Exists(name string) bool {
	for _, path := range e.candidates(name) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	_, err := bundled.ReadFile("templates/" + name)
	return err == nil
}

// RenderTemplate resolves name and renders it against data.
func (e *Engine) RenderTemplate(name string, data interface{}) (string, error) {
	src, err := e.Resolve(name)
	if err != nil {
		return "", err
	}
	return Render(src, data)
}
