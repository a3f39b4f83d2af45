package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Installer materializes manifest dependencies under a cache directory so
// sketches can reference library scripts by name.
type Installer struct {
	CacheDir string
}

// InstalledDependency records where a dependency landed and which commit
// (for git sources) it resolved to.
type InstalledDependency struct {
	Name   string
	Dir    string
	Commit string
}

// NewInstaller returns an installer rooted at cacheDir.
func NewInstaller(cacheDir string) *Installer {
	return &Installer{CacheDir: cacheDir}
}

// Install fetches every dependency in the map, in name order so output is
// deterministic. Git sources are cloned into CacheDir/<name>; an existing
// clone is reused. Path sources resolve in place relative to baseDir.
func (ins *Installer) Install(baseDir string, deps map[string]*DependencySpec) ([]InstalledDependency, error) {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	installed := make([]InstalledDependency, 0, len(names))
	for _, name := range names {
		dep := deps[name]
		if dep == nil {
			continue
		}
		entry, err := ins.installOne(baseDir, name, dep)
		if err != nil {
			return nil, fmt.Errorf("install %s: %w", name, err)
		}
		installed = append(installed, entry)
	}
	return installed, nil
}

func (ins *Installer) installOne(baseDir, name string, dep *DependencySpec) (InstalledDependency, error) {
	if dep.Path != "" {
		dir := dep.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return InstalledDependency{}, fmt.Errorf("path source: %w", err)
		}
		if !info.IsDir() {
			return InstalledDependency{}, fmt.Errorf("path source %s is not a directory", dir)
		}
		return InstalledDependency{Name: name, Dir: dir}, nil
	}

	targetDir := filepath.Join(ins.CacheDir, sanitizeSegment(name))
	repo, err := git.PlainOpen(targetDir)
	if err != nil {
		if err := os.MkdirAll(ins.CacheDir, 0o755); err != nil {
			return InstalledDependency{}, err
		}
		repo, err = git.PlainClone(targetDir, false, &git.CloneOptions{
			URL: dep.Git,
		})
		if err != nil {
			return InstalledDependency{}, fmt.Errorf("git clone %s: %w", dep.Git, err)
		}
	}

	commit, err := checkoutPin(repo, dep)
	if err != nil {
		return InstalledDependency{}, err
	}
	return InstalledDependency{Name: name, Dir: targetDir, Commit: commit}, nil
}

// checkoutPin moves the worktree to the pinned revision, or reports the
// current HEAD when the dependency is unpinned.
func checkoutPin(repo *git.Repository, dep *DependencySpec) (string, error) {
	revision, ok := pinRevision(dep)
	if !ok {
		head, err := repo.Head()
		if err != nil {
			return "", fmt.Errorf("resolve HEAD: %w", err)
		}
		return head.Hash().String(), nil
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", fmt.Errorf("checkout %s: %w", hash, err)
	}
	return hash.String(), nil
}

func pinRevision(dep *DependencySpec) (plumbing.Revision, bool) {
	if rev := strings.TrimSpace(dep.Rev); rev != "" {
		return plumbing.Revision(rev), true
	}
	if tag := strings.TrimSpace(dep.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), true
	}
	if branch := strings.TrimSpace(dep.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), true
	}
	return "", false
}
