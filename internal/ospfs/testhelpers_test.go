package ospfs

import "testing"

// newTestImage formats a small image with room for a handful of files
// and inodes, small enough that AddBlock/RemoveBlock cascades into the
// indirect and indirect2 regions can be exercised without a huge buffer.
func newTestImage(t *testing.T, nblocks, ninodes int) *Image {
	t.Helper()
	img, err := NewImage(nblocks, ninodes)
	if err != nil {
		t.Fatalf("NewImage(%d, %d) failed: %v", nblocks, ninodes, err)
	}
	return img
}

func testCopyIn(dst, src []byte) (int, error)  { return copy(dst, src), nil }
func testCopyOut(dst, src []byte) (int, error) { return copy(dst, src), nil }
