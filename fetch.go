package ffbuild

import (
	"context"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// UpstreamURL is the canonical FFmpeg source repository.
const UpstreamURL = "https://github.com/FFmpeg/FFmpeg"

// fetch performs the shallow, branch-pinned checkout of the release source
// tree. Any stale checkout for the same release is removed first so a
// previously interrupted fetch can never poison the build. Network failure
// is fatal; there is no retry.
func (p *Pipeline) fetch(ctx context.Context) error {
	dir := p.opts.SourceDir()
	if err := os.RemoveAll(dir); err != nil {
		return stageError(ErrAcquisition, err, nil)
	}

	branch := p.opts.ReleaseBranch()
	p.log.Infow("fetching FFmpeg", "branch", branch, "dir", dir)

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           UpstreamURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
	if err != nil {
		return stageError(ErrAcquisition, err, nil)
	}
	return nil
}
