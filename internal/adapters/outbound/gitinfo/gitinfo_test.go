package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dodgate/dodgate/internal/adapters/outbound/gitinfo"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("go.mod")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	require.NoError(t, err)

	return dir
}

func TestIsGitRepo(t *testing.T) {
	adapter := gitinfo.New()

	assert.True(t, adapter.IsGitRepo(initRepoWithCommit(t)))
	assert.False(t, adapter.IsGitRepo(t.TempDir()))
}

func TestCommitHashAndBranch(t *testing.T) {
	dir := initRepoWithCommit(t)
	adapter := gitinfo.New()

	hash, err := adapter.CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	branch, err := adapter.Branch(dir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestNonRepoErrors(t *testing.T) {
	adapter := gitinfo.New()
	dir := t.TempDir()

	_, err := adapter.CommitHash(dir)
	assert.Error(t, err)

	_, err = adapter.Branch(dir)
	assert.Error(t, err)
}
