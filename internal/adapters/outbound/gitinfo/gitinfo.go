package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.GitInfo via go-git, reading repository state
// without shelling out. Evaluation never needs git; the adapter only stamps
// finished reports with the commit they describe.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// IsGitRepo reports whether projectPath is an initialized git repository.
func (a *Adapter) IsGitRepo(projectPath string) bool {
	_, err := git.PlainOpen(projectPath)
	return err == nil
}

// CommitHash returns the full hash of HEAD. An unborn HEAD (a repository
// with no commits yet) is an error.
func (a *Adapter) CommitHash(projectPath string) (string, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", projectPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
