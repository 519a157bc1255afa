package ospfs

// Directory layer: fixed-width entries stored inside a directory-typed
// file (spec §4.5). Entries never straddle a block boundary because
// BlockSize is an exact multiple of DirentrySize.

// getDirent decodes the entry at byte offset off within directory inode i.
func (img *Image) getDirent(i *Inode, off uint32) (ino uint32, name string) {
	blk := img.blockNumberForBlockIndex(i, int(off/BlockSize))
	entOff := off % BlockSize
	b := img.block(int(blk))[entOff : entOff+DirentrySize]

	ino = leUint32(b[0:4])
	nameBytes := b[4:]
	end := 0
	for end < len(nameBytes) && nameBytes[end] != 0 {
		end++
	}
	return ino, string(nameBytes[:end])
}

// putDirent overwrites the entry at byte offset off within directory
// inode i, zero-terminating name within the fixed name field.
func (img *Image) putDirent(i *Inode, off uint32, ino uint32, name string) {
	blk := img.blockNumberForBlockIndex(i, int(off/BlockSize))
	entOff := off % BlockSize
	b := img.block(int(blk))[entOff : entOff+DirentrySize]

	putLeUint32(b[0:4], ino)
	nameField := b[4:]
	for k := range nameField {
		nameField[k] = 0
	}
	copy(nameField, name)
}

// FindDirentry linearly scans dirIno for an entry named name, returning
// its inode number and byte offset. found is false if no entry matches.
func (img *Image) FindDirentry(dirIno int, name string) (ino uint32, offset uint32, found bool) {
	i := img.getInode(dirIno)
	for off := uint32(0); off < i.Size; off += DirentrySize {
		entIno, entName := img.getDirent(&i, off)
		if entIno != 0 && entName == name {
			return entIno, off, true
		}
	}
	return 0, 0, false
}

// CreateBlankDirentry returns the byte offset of a blank (ino == 0) slot
// in dirIno, growing the directory by one block if none exists (spec
// §4.5). Every entry in a freshly added block is zero by the
// zeroing rule of AddBlock, so the first entry of that block is blank.
func (img *Image) CreateBlankDirentry(dirIno int) (uint32, error) {
	i := img.getInode(dirIno)
	for off := uint32(0); off < i.Size; off += DirentrySize {
		entIno, _ := img.getDirent(&i, off)
		if entIno == 0 {
			return off, nil
		}
	}

	oldSize := i.Size
	if err := img.AddBlock(dirIno); err != nil {
		return 0, err
	}
	return oldSize, nil
}

// ReaddirResult is the terminal status of a Readdir call.
type ReaddirResult int

const (
	ReaddirDone ReaddirResult = iota
	ReaddirInterrupted
)

// Readdir walks dirIno starting at cookie pos, emitting synthetic "."
// and ".." entries at positions 0 and 1 and then real entries from the
// directory's contents (spec §4.5). emit returns false to signal
// backpressure, in which case Readdir stops and returns the position of
// the entry that was not yet consumed so a resumed call re-emits it.
func (img *Image) Readdir(dirIno, parentIno int, pos uint32, emit func(name string, ino uint32) bool) (nextPos uint32, result ReaddirResult, err error) {
	if pos == 0 {
		if !emit(".", uint32(dirIno)) {
			return 0, ReaddirInterrupted, nil
		}
		pos = 1
	}
	if pos == 1 {
		if !emit("..", uint32(parentIno)) {
			return 1, ReaddirInterrupted, nil
		}
		pos = 2
	}

	i := img.getInode(dirIno)
	off := pos - 2
	if off%DirentrySize != 0 {
		return pos, ReaddirDone, newErr("readdir", CodeIO, "pos not aligned to DIRENTRY_SIZE")
	}

	for off < i.Size {
		entIno, name := img.getDirent(&i, off)
		thisPos := off + 2
		off += DirentrySize
		if entIno == 0 {
			continue
		}
		if !emit(name, entIno) {
			return thisPos, ReaddirInterrupted, nil
		}
	}
	return off + 2, ReaddirDone, nil
}
