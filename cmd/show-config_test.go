package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tldr-pro/po-compiler/repository"
)

func gitCommand(t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func TestShowConfigCommand(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	repo := t.TempDir()
	gitCommand(t, "init", "-q", repo)
	gitCommand(t, "-C", repo, "config", "po-compiler.languagesDir", "lang")

	userConfig := "languages_dir: user-languages\nverify: true\n"
	if err := os.WriteFile(filepath.Join(home, ".po-compiler.yaml"), []byte(userConfig), 0644); err != nil {
		t.Fatal(err)
	}
	repoConfig := "languages_dir: translations\ninclude_header: true\n"
	if err := os.WriteFile(filepath.Join(repo, "po-compiler.yaml"), []byte(repoConfig), 0644); err != nil {
		t.Fatal(err)
	}

	repository.OpenRepository(repo)
	t.Cleanup(func() {
		repository.OpenRepository(t.TempDir())
	})
	if !repository.Opened() {
		t.Fatalf("fail to open repository %s", repo)
	}

	var out bytes.Buffer
	c := showConfigCommand{}
	c.Command().SetOut(&out)
	if err := c.Execute([]string{"extra"}); err == nil || !IsErrorWithUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := c.Execute(nil); err != nil {
		t.Fatalf("show-config failed: %v", err)
	}

	expect := `# Merged configuration from:
# - ~/.po-compiler.yaml (lower priority)
# - <repo-root>/po-compiler.yaml (higher priority)
# git config po-compiler.languagesdir overrides languages_dir: lang

languages_dir: translations
include_header: true
verify: true
`
	if out.String() != expect {
		t.Fatalf("show-config output:\n%s\nwant:\n%s", out.String(), expect)
	}
}
