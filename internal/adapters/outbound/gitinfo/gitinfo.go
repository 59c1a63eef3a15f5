package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.GitInfo using go-git. All lookups are
// best-effort: callers treat errors as "no metadata".
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) IsGitRepo(workspaceRoot string) bool {
	_, err := git.PlainOpen(workspaceRoot)
	return err == nil
}

func (a *Adapter) CommitHash(workspaceRoot string) (string, error) {
	repo, err := git.PlainOpen(workspaceRoot)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func (a *Adapter) Branch(workspaceRoot string) (string, error) {
	repo, err := git.PlainOpen(workspaceRoot)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached")
	}
	return head.Name().Short(), nil
}
