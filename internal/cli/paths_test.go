package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name    string
		env     string
		dir     func() (string, error)
		homeSub string
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir, ".cache"},
		{"config", "XDG_CONFIG_HOME", configDir, ".config"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/default", func(t *testing.T) {
			t.Setenv(tt.env, "")
			got, err := tt.dir()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if want := filepath.Join(home, tt.homeSub, appName); got != want {
				t.Errorf("dir = %q, want %q", got, want)
			}
		})
		t.Run(tt.name+"/xdg", func(t *testing.T) {
			custom := filepath.Join(t.TempDir(), "xdg")
			t.Setenv(tt.env, custom)
			got, err := tt.dir()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if want := filepath.Join(custom, appName); got != want {
				t.Errorf("dir = %q, want %q", got, want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range completionShells() {
		t.Run(shell, func(t *testing.T) {
			root := New(&strings.Builder{}, LogInfo).RootCommand()
			var out strings.Builder
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}

	root := New(&strings.Builder{}, LogInfo).RootCommand()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}
