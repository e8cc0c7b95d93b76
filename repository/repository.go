// Package repository locates the project the translations belong to.
package repository

import (
	"os"

	"github.com/jiangxin/goconfig"
	log "github.com/sirupsen/logrus"
)

// LanguagesDirConfig is the git config variable overriding the languages
// directory, e.g. "git config po-compiler.languagesDir languages".
const LanguagesDirConfig = "po-compiler.languagesdir"

// Repository holds repository and error.
type Repository struct {
	repository *goconfig.Repository
	error      error
}

var theRepository Repository

// Open will try to find repository in dir.
func (v *Repository) Open(dir string) error {
	v.repository, v.error = goconfig.FindRepository(dir)
	return v.error
}

// OpenRepository will try to find repository in dir. Running outside of a
// git worktree is fine, see Opened.
func OpenRepository(dir string) {
	if err := theRepository.Open(dir); err != nil {
		log.Debugf("not in a git repository: %s", err)
	}
}

// Opened returns true if a repository was successfully opened.
func Opened() bool {
	return theRepository.error == nil && theRepository.repository != nil
}

// WorkDirOrCwd returns the root of the worktree when a repository is
// opened, otherwise the current working directory.
func WorkDirOrCwd() string {
	if Opened() {
		return theRepository.repository.WorkDir()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// LanguagesDir returns the value of po-compiler.languagesDir from git
// config, or "" when not set or outside of a repository.
func LanguagesDir() string {
	if !Opened() {
		return ""
	}
	return theRepository.repository.Config().Get(LanguagesDirConfig)
}
