// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"github.com/go-git/go-git/v5"
)

// RevisionLabel is the image label that records the source commit.
const RevisionLabel = "org.opencontainers.image.revision"

// GitRevision returns the HEAD commit hash of the work tree containing dir.
func GitRevision(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}
