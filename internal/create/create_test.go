package create

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/ctxlog"
	"github.com/miles-labs/create-miles/internal/delegate"
	"github.com/miles-labs/create-miles/internal/manifest"
	"github.com/miles-labs/create-miles/internal/pkgmanager"
	"github.com/miles-labs/create-miles/internal/pkgspec"
	"github.com/miles-labs/create-miles/internal/runtime"
	"github.com/miles-labs/create-miles/internal/runtime/runtimetest"
)

const templatePackage = "miles-prototype"

// newCreator wires a Creator to a scripted runner, the way the cli package
// wires it to a real one.
func newCreator(t *testing.T, fake *runtimetest.Runner, baseDir string) (*Creator, *bytes.Buffer) {
	t.Helper()
	spec, err := pkgspec.Parse(templatePackage)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	c := New(
		pkgmanager.New(fake, "npm", "error"),
		delegate.New(fake, "node", spec.Name),
		Options{Package: spec, BaseDir: baseDir, Out: &out},
	)
	return c, &out
}

func TestRun_EndToEnd(t *testing.T) {
	base := t.TempDir()
	fake := runtimetest.New()
	c, out := newCreator(t, fake, base)

	if err := c.Run(context.Background(), "my-app"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if c.State() != Delegated {
		t.Errorf("State() = %s, want Delegated", c.State())
	}

	root := filepath.Join(base, "my-app")
	assertManifest(t, root, "my-app")

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one directory in %s, got %d", base, len(entries))
	}

	calls := fake.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected install then delegate, got %d calls: %v", len(calls), calls)
	}
	if calls[0].String() != "npm install --save --save-exact --loglevel error miles-prototype" {
		t.Errorf("install command = %q", calls[0].String())
	}
	if calls[0].Dir != root {
		t.Errorf("install ran in %q, want %q", calls[0].Dir, root)
	}
	wantDelegate := "node " + delegate.ScriptPath(templatePackage) + " " + root
	if calls[1].String() != wantDelegate {
		t.Errorf("delegate command = %q, want %q", calls[1].String(), wantDelegate)
	}
	if calls[1].Dir != root {
		t.Errorf("delegate ran in %q, want %q", calls[1].Dir, root)
	}

	if !strings.Contains(out.String(), "Creating a new Miles app in") || !strings.Contains(out.String(), root) {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestRun_InvalidNames(t *testing.T) {
	names := []string{"", "My-App", "_private", ".hidden", "node_modules", "http", "has space", "crazy!", templatePackage}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			base := t.TempDir()
			fake := runtimetest.New()
			c, _ := newCreator(t, fake, base)

			err := c.Run(context.Background(), name)
			if !clierror.IsKind(err, clierror.InvalidName) {
				t.Fatalf("expected InvalidName, got %v", err)
			}
			if c.State() != Failed || c.FailedAt() != Start {
				t.Errorf("state = %s (failed at %s), want Failed at Start", c.State(), c.FailedAt())
			}

			entries, _ := os.ReadDir(base)
			if len(entries) != 0 {
				t.Errorf("no directory should be created, found %d entries", len(entries))
			}
			if len(fake.Calls()) != 0 {
				t.Errorf("no subprocess should run, got %v", fake.Calls())
			}
		})
	}
}

func TestRun_InvalidNameListsAllProblems(t *testing.T) {
	c, _ := newCreator(t, runtimetest.New(), t.TempDir())

	err := c.Run(context.Background(), "_Bad")
	e := clierror.As(err)
	if e == nil {
		t.Fatalf("expected *clierror.Error, got %v", err)
	}
	want := []string{"name cannot start with an underscore", "name can no longer contain capital letters"}
	if len(e.Details) != len(want) {
		t.Fatalf("Details = %q, want %q", e.Details, want)
	}
	for i := range want {
		if e.Details[i] != want[i] {
			t.Errorf("Details[%d] = %q, want %q", i, e.Details[i], want[i])
		}
	}
}

func TestRun_DirectoryExists(t *testing.T) {
	base := t.TempDir()
	existing := filepath.Join(base, "my-app")
	if err := os.Mkdir(existing, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(existing, "README.md"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := runtimetest.New()
	c, _ := newCreator(t, fake, base)

	err := c.Run(context.Background(), "my-app")
	if !clierror.IsKind(err, clierror.DirectoryExists) {
		t.Fatalf("expected DirectoryExists, got %v", err)
	}
	if c.FailedAt() != NameValidated {
		t.Errorf("FailedAt() = %s, want NameValidated", c.FailedAt())
	}

	entries, _ := os.ReadDir(existing)
	if len(entries) != 1 || entries[0].Name() != "README.md" {
		t.Errorf("existing directory was modified: %v", entries)
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("no subprocess should run, got %v", fake.Calls())
	}
}

func TestRun_InstallFailure(t *testing.T) {
	base := t.TempDir()
	fake := runtimetest.New().ExitWith("npm", 1)
	c, _ := newCreator(t, fake, base)

	err := c.Run(context.Background(), "my-app")
	e := clierror.As(err)
	if e == nil || e.Kind != clierror.SubprocessFailure {
		t.Fatalf("expected SubprocessFailure, got %v", err)
	}
	if !strings.HasPrefix(e.Command, "npm install") {
		t.Errorf("Command = %q, want the npm command line", e.Command)
	}
	if c.FailedAt() != DirectoryCreated {
		t.Errorf("FailedAt() = %s, want DirectoryCreated", c.FailedAt())
	}

	// The manifest stays behind and the delegate never runs.
	assertManifest(t, filepath.Join(base, "my-app"), "my-app")
	if calls := fake.CallsTo("node"); len(calls) != 0 {
		t.Errorf("delegate should not run after a failed install, got %v", calls)
	}
}

func TestRun_DelegateFailure(t *testing.T) {
	fake := runtimetest.New().ExitWith("node", 1)
	c, _ := newCreator(t, fake, t.TempDir())

	err := c.Run(context.Background(), "my-app")
	if !clierror.IsKind(err, clierror.SubprocessFailure) {
		t.Fatalf("expected SubprocessFailure, got %v", err)
	}
	if c.FailedAt() != PackageInstalled {
		t.Errorf("FailedAt() = %s, want PackageInstalled", c.FailedAt())
	}
	if len(fake.CallsTo("npm")) != 1 || len(fake.CallsTo("node")) != 1 {
		t.Errorf("expected one install and one delegate call, got %v", fake.Calls())
	}
}

func TestRun_PinnedPackageVersion(t *testing.T) {
	spec, err := pkgspec.Parse("miles-prototype@1.4.2")
	if err != nil {
		t.Fatal(err)
	}
	fake := runtimetest.New()
	c := New(
		pkgmanager.New(fake, "npm", "error"),
		delegate.New(fake, "node", spec.Name),
		Options{Package: spec, BaseDir: t.TempDir()},
	)

	if err := c.Run(context.Background(), "my-app"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	install := fake.CallsTo("npm")[0]
	if last := install.Args[len(install.Args)-1]; last != "miles-prototype@1.4.2" {
		t.Errorf("installed %q, want %q", last, "miles-prototype@1.4.2")
	}
	script := fake.CallsTo("node")[0].Args[0]
	if script != delegate.ScriptPath("miles-prototype") {
		t.Errorf("script = %q, want the unversioned package path", script)
	}
}

func TestRun_OnlyOnce(t *testing.T) {
	c, _ := newCreator(t, runtimetest.New(), t.TempDir())
	if err := c.Run(context.Background(), "my-app"); err != nil {
		t.Fatal(err)
	}
	if err := c.Run(context.Background(), "other-app"); err == nil {
		t.Fatal("second Run should fail")
	}
}

func TestRun_DelegateSeesInstalledPackage(t *testing.T) {
	base := t.TempDir()
	fake := runtimetest.New().OnRun("npm", func(cmd runtime.Command) {
		script := filepath.Join(cmd.Dir, delegate.ScriptPath(templatePackage))
		if err := os.MkdirAll(filepath.Dir(script), 0755); err != nil {
			t.Error(err)
		}
		if err := os.WriteFile(script, []byte("// init"), 0644); err != nil {
			t.Error(err)
		}
	})
	fake.OnRun("node", func(cmd runtime.Command) {
		if _, err := os.Stat(filepath.Join(cmd.Dir, cmd.Args[0])); err != nil {
			t.Errorf("init script missing when delegate ran: %v", err)
		}
	})

	c, _ := newCreator(t, fake, base)
	if err := c.Run(context.Background(), "my-app"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestRun_ScopedNameInExistingScope(t *testing.T) {
	names := []string{"@scope/pkg", "@_x/pkg", "@.x/pkg", "@a!b/pkg"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			base := t.TempDir()
			scope := strings.SplitN(name, "/", 2)[0]
			if err := os.Mkdir(filepath.Join(base, scope), 0755); err != nil {
				t.Fatal(err)
			}
			fake := runtimetest.New()
			c, _ := newCreator(t, fake, base)

			if err := c.Run(context.Background(), name); err != nil {
				t.Fatalf("Run(%q) error: %v", name, err)
			}
			assertManifest(t, filepath.Join(base, filepath.FromSlash(name)), name)
			if len(fake.Calls()) != 2 {
				t.Errorf("expected install then delegate, got %v", fake.Calls())
			}
		})
	}
}

func TestRun_DirectoryCreatedBeforeProgressMessage(t *testing.T) {
	var out bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&out, true))
	spec, err := pkgspec.Parse(templatePackage)
	if err != nil {
		t.Fatal(err)
	}
	fake := runtimetest.New().ExitWith("npm", 1)
	c := New(
		pkgmanager.New(fake, "npm", "error"),
		delegate.New(fake, "node", spec.Name),
		Options{Package: spec, BaseDir: t.TempDir(), Out: &out},
	)

	if err := c.Run(ctx, "my-app"); err == nil {
		t.Fatal("expected install failure")
	}
	log := out.String()
	created := strings.Index(log, "to=DirectoryCreated")
	progress := strings.Index(log, "Creating a new Miles app")
	if created < 0 || progress < 0 || created > progress {
		t.Errorf("DirectoryCreated should be reached as soon as the directory exists, got:\n%s", log)
	}
	if c.FailedAt() != DirectoryCreated {
		t.Errorf("FailedAt() = %s, want DirectoryCreated", c.FailedAt())
	}
}

func TestRun_LogsInstalledVersion(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&logs, true))
	fake := runtimetest.New().OnRun("npm", func(cmd runtime.Command) {
		m := manifest.New("my-app")
		m.Dependencies = map[string]string{templatePackage: "1.4.2"}
		if _, err := manifest.Write(cmd.Dir, m); err != nil {
			t.Error(err)
		}
	})
	c, _ := newCreator(t, fake, t.TempDir())

	if err := c.Run(ctx, "my-app"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(logs.String(), "version=1.4.2") {
		t.Errorf("expected the installed version in the debug log, got:\n%s", logs.String())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Start, "Start"},
		{NameValidated, "NameValidated"},
		{DirectoryCreated, "DirectoryCreated"},
		{PackageInstalled, "PackageInstalled"},
		{Delegated, "Delegated"},
		{Failed, "Failed"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func assertManifest(t *testing.T, root, name string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	want := map[string]any{"name": name, "version": "0.1.0", "private": true}
	if len(got) != len(want) {
		t.Fatalf("manifest = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("manifest[%q] = %v, want %v", k, got[k], v)
		}
	}
}
