package ospfs

// File size engine: AddBlock, RemoveBlock and ChangeSize (spec §4.3).
//
// AddBlock computes which scaffolding it needs up front and only starts
// allocating once it knows the full shape of the operation; it records
// every block it allocates in a small fixed-size list so a failure
// midway is a bounded loop over that list, never a generalized undo log
// (spec §9). Because pointer writes only happen after every allocation
// in the call has already succeeded, a rollback never needs to reset a
// pointer that was already made visible on disk — there simply isn't
// one yet.

// AddBlock grows inode ino by one block (spec §4.3).
func (img *Image) AddBlock(ino int) error {
	i := img.getInode(ino)
	if i.Ftype != FtReg && i.Ftype != FtDir {
		return newErr("add_block", CodeIO, "inode is not a growable file type")
	}

	b := blocksNeeded(i.Size)
	if b >= MaxFileBlocks {
		return newErr("add_block", CodeIO, "file already at MaxFileBlocks")
	}

	var allocated []int
	rollback := func() {
		for _, blk := range allocated {
			img.free(blk)
		}
	}
	allocOne := func() (int, error) {
		blk := img.allocate()
		if blk == 0 {
			rollback()
			return 0, newErr("add_block", CodeNoSpace, "bitmap exhausted")
		}
		allocated = append(allocated, blk)
		img.zeroBlock(blk)
		return blk, nil
	}

	level := levelOf(b)

	ind2Blk := int(i.Indirect2)
	if level == levelIndirect2 && ind2Blk == 0 {
		nb, err := allocOne()
		if err != nil {
			return err
		}
		ind2Blk = nb
	}

	indBlk := int(i.Indirect)
	if level == levelIndirect2 {
		slot2 := indirSlot(b)
		indBlk = int(img.blockNumberAt(ind2Blk, slot2))
	}
	if (level == levelIndirect || level == levelIndirect2) && indBlk == 0 {
		nb, err := allocOne()
		if err != nil {
			return err
		}
		indBlk = nb
	}

	dataBlk, err := allocOne()
	if err != nil {
		return err
	}

	// Every allocation succeeded: commit pointer writes and the new size.
	switch level {
	case levelDirect:
		i.Direct[b] = uint32(dataBlk)
	case levelIndirect:
		i.Indirect = uint32(indBlk)
		img.setBlockNumber(indBlk, directSlot(b), uint32(dataBlk))
	case levelIndirect2:
		i.Indirect2 = uint32(ind2Blk)
		img.setBlockNumber(ind2Blk, indirSlot(b), uint32(indBlk))
		img.setBlockNumber(indBlk, directSlot(b), uint32(dataBlk))
	}
	i.Size = uint32(b+1) * BlockSize
	img.putInode(ino, &i)
	return nil
}

// RemoveBlock shrinks inode ino by one block, cascading the free of any
// indirect/indirect2 scaffolding left empty behind it (spec §4.3).
func (img *Image) RemoveBlock(ino int) error {
	i := img.getInode(ino)
	if i.Size == 0 {
		return newErr("remove_block", CodeIO, "file is already empty")
	}

	b := blocksNeeded(i.Size) - 1
	level := levelOf(b)

	switch level {
	case levelDirect:
		blk := i.Direct[b]
		if blk == 0 {
			return newErr("remove_block", CodeIO, "missing direct block")
		}
		img.free(int(blk))
		i.Direct[b] = 0

	case levelIndirect:
		if i.Indirect == 0 {
			return newErr("remove_block", CodeIO, "missing indirect block")
		}
		slot := directSlot(b)
		blk := img.blockNumberAt(int(i.Indirect), slot)
		if blk == 0 {
			return newErr("remove_block", CodeIO, "missing indirect data block")
		}
		img.free(int(blk))
		img.setBlockNumber(int(i.Indirect), slot, 0)

		if indirectBlockEmpty(img, int(i.Indirect)) {
			img.free(int(i.Indirect))
			i.Indirect = 0
		}

	case levelIndirect2:
		if i.Indirect2 == 0 {
			return newErr("remove_block", CodeIO, "missing indirect2 block")
		}
		slot2 := indirSlot(b)
		indBlk := img.blockNumberAt(int(i.Indirect2), slot2)
		if indBlk == 0 {
			return newErr("remove_block", CodeIO, "missing indirect block under indirect2")
		}
		slot := directSlot(b)
		blk := img.blockNumberAt(int(indBlk), slot)
		if blk == 0 {
			return newErr("remove_block", CodeIO, "missing indirect2 data block")
		}
		img.free(int(blk))
		img.setBlockNumber(int(indBlk), slot, 0)

		if indirectBlockEmpty(img, int(indBlk)) {
			img.free(int(indBlk))
			img.setBlockNumber(int(i.Indirect2), slot2, 0)

			if indirectBlockEmpty(img, int(i.Indirect2)) {
				img.free(int(i.Indirect2))
				i.Indirect2 = 0
			}
		}
	}

	i.Size = uint32(b) * BlockSize
	img.putInode(ino, &i)
	return nil
}

// indirectBlockEmpty reports whether every slot of pointer block n is 0.
func indirectBlockEmpty(img *Image, n int) bool {
	for _, p := range img.blockNumbers(n) {
		if p != 0 {
			return false
		}
	}
	return true
}

// ChangeSize grows or shrinks inode ino one block at a time until its
// block count matches newSize, then sets Size to newSize exactly (spec
// §4.3). On NO_SPACE during growth it unwinds back to the pre-call size
// before propagating the error.
func (img *Image) ChangeSize(ino int, newSize uint32) error {
	oldSize := img.getInode(ino).Size
	oldBlocks := blocksNeeded(oldSize)
	targetBlocks := blocksNeeded(newSize)

	for blocksNeeded(img.getInode(ino).Size) < targetBlocks {
		if err := img.AddBlock(ino); err != nil {
			for blocksNeeded(img.getInode(ino).Size) > oldBlocks {
				if rerr := img.RemoveBlock(ino); rerr != nil {
					break
				}
			}
			restored := img.getInode(ino)
			restored.Size = oldSize
			img.putInode(ino, &restored)
			return err
		}
	}

	for blocksNeeded(img.getInode(ino).Size) > targetBlocks {
		if err := img.RemoveBlock(ino); err != nil {
			return err
		}
	}

	i := img.getInode(ino)
	i.Size = newSize
	img.putInode(ino, &i)
	return nil
}
