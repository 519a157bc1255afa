package ospfs

// Pure functions translating a zero-based file-block index into the
// three-level direct/indirect/doubly-indirect address scheme (spec §4.2).

// isIndirect2 reports whether file-block index b lives behind indirect2.
func isIndirect2(b int) bool {
	return b >= NDirect+NIndirect
}

// isIndirect reports whether file-block index b lives behind indirect
// (singly, not doubly).
func isIndirect(b int) bool {
	return b >= NDirect && b < NDirect+NIndirect
}

// indirSlot returns the slot within the indirect2 table that holds the
// indirect block covering file-block index b. Only meaningful when
// isIndirect2(b); returns 0 for b < NDirect+NIndirect.
func indirSlot(b int) int {
	if !isIndirect2(b) {
		return 0
	}
	return (b - NDirect - NIndirect) / NIndirect
}

// directSlot returns the slot within whichever block currently addresses
// file-block index b: the inode's own Direct array, an indirect block,
// or one of the indirect blocks reachable through indirect2.
func directSlot(b int) int {
	switch {
	case b < NDirect:
		return b
	case isIndirect(b):
		return b - NDirect
	default:
		return (b - NDirect - NIndirect) % NIndirect
	}
}

// blockLevel classifies a file-block index for addressing purposes.
type blockLevel int

const (
	levelDirect blockLevel = iota
	levelIndirect
	levelIndirect2
)

func levelOf(b int) blockLevel {
	switch {
	case b < NDirect:
		return levelDirect
	case isIndirect(b):
		return levelIndirect
	default:
		return levelIndirect2
	}
}

// blockNumberForBlockIndex performs the natural 3-level lookup for the
// b'th block of inode i, returning 0 ("none") if any pointer along the
// path is unset. It never allocates.
func (img *Image) blockNumberForBlockIndex(i *Inode, b int) uint32 {
	switch levelOf(b) {
	case levelDirect:
		return i.Direct[b]
	case levelIndirect:
		if i.Indirect == 0 {
			return 0
		}
		return img.blockNumberAt(int(i.Indirect), directSlot(b))
	default:
		if i.Indirect2 == 0 {
			return 0
		}
		indBlk := img.blockNumberAt(int(i.Indirect2), indirSlot(b))
		if indBlk == 0 {
			return 0
		}
		return img.blockNumberAt(int(indBlk), directSlot(b))
	}
}

// BlocknoForOffset returns the data block number holding byte offset
// byteOffset of inode i, or 0 if byteOffset >= i.Size or i is a symlink
// (spec §4.2).
func (img *Image) BlocknoForOffset(i *Inode, byteOffset uint32) uint32 {
	if i.Ftype == FtSymlink || byteOffset >= i.Size {
		return 0
	}
	return img.blockNumberForBlockIndex(i, int(byteOffset/BlockSize))
}
