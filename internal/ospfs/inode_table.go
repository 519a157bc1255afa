package ospfs

// The inode table lives at a fixed block offset (spec §3): ninodes
// fixed-size records starting at block firstInob. Inode numbers are
// 1-based; inode 0 is never valid, mirroring the block-number sentinel.

// inodeOffset returns the byte offset of inode ino within the image buffer.
func (img *Image) inodeOffset(ino int) int {
	return img.firstInob()*BlockSize + (ino-1)*inodeSize
}

// getInode reads inode ino from the table.
func (img *Image) getInode(ino int) Inode {
	off := img.inodeOffset(ino)
	return unmarshalInode(img.buf[off : off+inodeSize])
}

// putInode writes inode ino back to the table.
func (img *Image) putInode(ino int, i *Inode) {
	off := img.inodeOffset(ino)
	copy(img.buf[off:off+inodeSize], i.marshal())
}

// findFreeInode linearly scans the table for the first inode with
// Nlink == 0, per spec §3 "Lifecycles". Returns 0 if none is free.
func (img *Image) findFreeInode() int {
	for ino := 1; ino <= img.ninodes(); ino++ {
		inode := img.getInode(ino)
		if inode.free() {
			return ino
		}
	}
	return 0
}
