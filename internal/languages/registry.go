// Package languages holds the fixed set of languages the editor can run and
// the interpreter command each one maps to.
package languages

import (
	"fmt"
	"runtime"
	"strings"
)

// CodePlaceholder is replaced by the buffer contents when building argv.
const CodePlaceholder = "{code}"

const (
	Python     = "Python"
	Java       = "Java"
	CPP        = "C++"
	JavaScript = "JavaScript"
	Batch      = "Batch"
	Lua        = "Lua"
)

// Language maps a selector label to an interpreter invocation.
type Language struct {
	Name       string
	Extensions []string
	Command    []string
	// Shell marks languages that hand the source to the platform shell.
	// The runner refuses them unless shell mode was explicitly allowed.
	Shell bool
}

// Argv substitutes source into the command template.
func (l Language) Argv(source string) []string {
	argv := make([]string, len(l.Command))
	for i, arg := range l.Command {
		if arg == CodePlaceholder {
			argv[i] = source
			continue
		}
		argv[i] = arg
	}
	return argv
}

func (l Language) validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("language name is required")
	}
	if len(l.Command) == 0 {
		return fmt.Errorf("language %s: command is required", l.Name)
	}
	for _, arg := range l.Command {
		if arg == CodePlaceholder {
			return nil
		}
	}
	return fmt.Errorf("language %s: command has no %s argument", l.Name, CodePlaceholder)
}

// Registry is an ordered set of languages with one default member.
type Registry struct {
	order       []string
	languages   map[string]Language
	defaultName string
}

// Builtin returns the registry the editor starts with, for the host OS.
func Builtin() *Registry {
	return builtinFor(runtime.GOOS)
}

func builtinFor(goos string) *Registry {
	python := []string{"python3", "-c", CodePlaceholder}
	shell := []string{"sh", "-c", CodePlaceholder}
	if goos == "windows" {
		python = []string{"python", "-c", CodePlaceholder}
		shell = []string{"cmd", "/c", CodePlaceholder}
	}

	r := &Registry{languages: make(map[string]Language)}
	r.add(Language{Name: Python, Extensions: []string{".py"}, Command: python})
	// No inline interpreter exists for Java or C++; both run through Python.
	r.add(Language{Name: Java, Extensions: []string{".java"}, Command: python})
	r.add(Language{Name: CPP, Extensions: []string{".cpp"}, Command: python})
	r.add(Language{Name: JavaScript, Extensions: []string{".js"}, Command: []string{"node", "-e", CodePlaceholder}})
	r.add(Language{Name: Batch, Extensions: []string{".bat"}, Command: shell, Shell: true})
	r.add(Language{Name: Lua, Extensions: []string{".lua"}, Command: []string{"lua", "-e", CodePlaceholder}})
	r.defaultName = Python
	return r
}

func (r *Registry) add(l Language) {
	if _, ok := r.languages[l.Name]; !ok {
		r.order = append(r.order, l.Name)
	}
	r.languages[l.Name] = l
}

// Register adds a language or replaces the command of an existing one.
// Replaced languages keep their position in the selector.
func (r *Registry) Register(l Language) error {
	if err := l.validate(); err != nil {
		return err
	}
	if existing, ok := r.languages[l.Name]; ok && len(l.Extensions) == 0 {
		l.Extensions = existing.Extensions
	}
	r.add(l)
	return nil
}

// SetDefault changes the language selected at startup.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.languages[name]; !ok {
		return fmt.Errorf("unknown language %q", name)
	}
	r.defaultName = name
	return nil
}

func (r *Registry) Default() Language {
	return r.languages[r.defaultName]
}

func (r *Registry) Lookup(name string) (Language, bool) {
	l, ok := r.languages[name]
	return l, ok
}

// Names lists languages in selector order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Extensions returns every language's extensions in selector order, without
// duplicates.
func (r *Registry) Extensions() []string {
	seen := make(map[string]bool)
	var extensions []string
	for _, name := range r.order {
		for _, ext := range r.languages[name].Extensions {
			if seen[ext] {
				continue
			}
			seen[ext] = true
			extensions = append(extensions, ext)
		}
	}
	return extensions
}
