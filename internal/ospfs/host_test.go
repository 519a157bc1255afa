package ospfs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineTruncateRefusesDirectories(t *testing.T) {
	// Setup
	img := newTestImage(t, 64, 16)
	eng := NewEngine(img)

	_, err := eng.Create(RootIno, "child", 0644)
	require.NoError(t, err)

	// Act
	err = eng.Truncate(RootIno, 0)

	// Assert
	require.Error(t, err)
	require.True(t, IsCode(err, CodePerm))
}

func TestEngineTruncateResizesRegularFile(t *testing.T) {
	img := newTestImage(t, 64, 16)
	eng := NewEngine(img)

	ino, err := eng.Create(RootIno, "resizable", 0644)
	require.NoError(t, err)

	require.NoError(t, eng.Truncate(ino, 100))

	out := make([]byte, 100)
	n, err := eng.Read(ino, 0, 100, out, testCopyOut)
	require.NoError(t, err)
	require.EqualValues(t, 100, n)
	for _, b := range out {
		require.Zero(t, b, "truncate-extended bytes must read back as zero")
	}
}

func TestEngineFollowLinkForwardsIdentity(t *testing.T) {
	img := newTestImage(t, 64, 16)
	eng := NewEngine(img)

	ino, err := eng.Symlink(RootIno, "link", "root?/priv:/pub")
	require.NoError(t, err)

	target, err := eng.FollowLink(ino, Identity{IsSuperuser: false})
	require.NoError(t, err)
	require.Equal(t, "/pub", target)
}

func TestEngineImageExposesUnderlyingBytes(t *testing.T) {
	img := newTestImage(t, 64, 16)
	eng := NewEngine(img)

	require.Same(t, img, eng.Image())
}
