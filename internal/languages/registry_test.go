package languages

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinOrderAndDefault(t *testing.T) {
	r := builtinFor("linux")

	want := []string{Python, Java, CPP, JavaScript, Batch, Lua}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}
	if got := r.Default().Name; got != Python {
		t.Errorf("Default() = %q, want %q", got, Python)
	}
}

func TestArgv(t *testing.T) {
	tests := []struct {
		goos, lang, source string
		want               []string
	}{
		{"linux", Python, "print('hi')", []string{"python3", "-c", "print('hi')"}},
		{"windows", Python, "print('hi')", []string{"python", "-c", "print('hi')"}},
		{"linux", Lua, "print(1)", []string{"lua", "-e", "print(1)"}},
		{"linux", Java, "x", []string{"python3", "-c", "x"}},
		{"linux", Batch, "echo a; echo b", []string{"sh", "-c", "echo a; echo b"}},
		{"windows", Batch, "dir", []string{"cmd", "/c", "dir"}},
	}
	for _, tt := range tests {
		l, ok := builtinFor(tt.goos).Lookup(tt.lang)
		if !ok {
			t.Fatalf("Lookup(%q) failed", tt.lang)
		}
		if diff := cmp.Diff(tt.want, l.Argv(tt.source)); diff != "" {
			t.Errorf("%s/%s Argv (-want +got):\n%s", tt.goos, tt.lang, diff)
		}
	}
}

func TestOnlyBatchIsShell(t *testing.T) {
	r := builtinFor("linux")
	for _, name := range r.Names() {
		l, _ := r.Lookup(name)
		if l.Shell != (name == Batch) {
			t.Errorf("%s: Shell = %v", name, l.Shell)
		}
	}
}

func TestRegister(t *testing.T) {
	r := builtinFor("linux")

	if err := r.Register(Language{Name: Python, Command: []string{"pypy3", "-c", CodePlaceholder}}); err != nil {
		t.Fatal(err)
	}
	py, _ := r.Lookup(Python)
	if diff := cmp.Diff([]string{".py"}, py.Extensions); diff != "" {
		t.Errorf("extensions not kept (-want +got):\n%s", diff)
	}
	if r.Names()[0] != Python {
		t.Errorf("replaced language moved: %v", r.Names())
	}

	if err := r.Register(Language{Name: "Ruby", Extensions: []string{".rb"}, Command: []string{"ruby", "-e", CodePlaceholder}}); err != nil {
		t.Fatal(err)
	}
	if names := r.Names(); names[len(names)-1] != "Ruby" {
		t.Errorf("Ruby not appended: %v", names)
	}

	for _, bad := range []Language{
		{Command: []string{"x", CodePlaceholder}},
		{Name: "NoCmd"},
		{Name: "NoPlaceholder", Command: []string{"ruby", "-e"}},
	} {
		if err := r.Register(bad); err == nil {
			t.Errorf("Register(%+v) succeeded", bad)
		}
	}
}

func TestSetDefault(t *testing.T) {
	r := builtinFor("linux")
	if err := r.SetDefault(Lua); err != nil {
		t.Fatal(err)
	}
	if r.Default().Name != Lua {
		t.Errorf("Default() = %q", r.Default().Name)
	}
	if err := r.SetDefault("Cobol"); err == nil {
		t.Error("SetDefault(Cobol) succeeded")
	}
}

func TestExtensions(t *testing.T) {
	r := builtinFor("linux")
	if err := r.Register(Language{Name: "Py2", Extensions: []string{".py", ".py2"}, Command: []string{"python2", "-c", CodePlaceholder}}); err != nil {
		t.Fatal(err)
	}

	want := []string{".py", ".java", ".cpp", ".js", ".bat", ".lua", ".py2"}
	if diff := cmp.Diff(want, r.Extensions()); diff != "" {
		t.Errorf("Extensions() (-want +got):\n%s", diff)
	}
}
