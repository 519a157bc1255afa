package ospfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFollowLinkPlainTargetIgnoresIdentity(t *testing.T) {
	// Setup
	img := newTestImage(t, 64, 16)
	ino, err := img.Symlink(RootIno, "plain", "/var/log")
	require.NoError(t, err)

	// Act + Assert
	target, err := img.FollowLink(ino, true)
	require.NoError(t, err)
	require.Equal(t, "/var/log", target)

	target, err = img.FollowLink(ino, false)
	require.NoError(t, err)
	require.Equal(t, "/var/log", target)
}

func TestFollowLinkConditionalTargetPicksBranchByIdentity(t *testing.T) {
	img := newTestImage(t, 64, 16)
	ino, err := img.Symlink(RootIno, "cond", "root?/root-only:/everyone-else")
	require.NoError(t, err)

	superuser, err := img.FollowLink(ino, true)
	require.NoError(t, err)
	require.Equal(t, "/root-only", superuser)

	regular, err := img.FollowLink(ino, false)
	require.NoError(t, err)
	require.Equal(t, "/everyone-else", regular)
}

func TestFollowLinkDoesNotMutateStoredTarget(t *testing.T) {
	img := newTestImage(t, 64, 16)
	ino, err := img.Symlink(RootIno, "cond2", "root?/a:/b")
	require.NoError(t, err)

	_, err = img.FollowLink(ino, true)
	require.NoError(t, err)

	i := img.getInode(ino)
	require.Equal(t, "root?/a:/b", i.SymlinkTarget, "resolving a conditional link must not rewrite the stored target")
}

func TestFollowLinkNonSymlinkInodeFails(t *testing.T) {
	img := newTestImage(t, 64, 16)
	ino, err := img.Create(RootIno, "regular", 0644)
	require.NoError(t, err)

	_, err = img.FollowLink(ino, false)
	require.Error(t, err)
	require.True(t, IsCode(err, CodeIO))
}

func TestFollowLinkMissingColonFallsBackToRawTarget(t *testing.T) {
	img := newTestImage(t, 64, 16)
	ino, err := img.Symlink(RootIno, "malformed", "root?no-colon-here")
	require.NoError(t, err)

	target, err := img.FollowLink(ino, true)
	require.NoError(t, err)
	require.Equal(t, "root?no-colon-here", target)
}
