package ospfs

// Block-wise byte transfer through the addressing layer (spec §4.4).

// Read copies up to count bytes of inode ino starting at pos into dst via
// the host-supplied copyOut callback, clamping count so pos+count never
// exceeds the file's size.
func (img *Image) Read(ino int, pos uint32, count uint32, dst []byte, copyOut CopyOut) (uint32, error) {
	i := img.getInode(ino)
	if pos >= i.Size {
		return 0, nil
	}
	if pos+count > i.Size {
		count = i.Size - pos
	}

	var amount uint32
	for amount < count {
		blk := img.BlocknoForOffset(&i, pos)
		if blk == 0 {
			if amount == 0 {
				return 0, newErr("read", CodeIO, "blockno_for_offset returned 0 within file bounds")
			}
			return amount, nil
		}

		within := pos % BlockSize
		tail := uint32(BlockSize) - within
		n := count - amount
		if n > tail {
			n = tail
		}

		src := img.block(int(blk))[within : within+n]
		written, err := copyOut(dst[amount:amount+n], src)
		amount += uint32(written)
		if err != nil {
			if amount == 0 {
				return 0, newErr("read", CodeFault, "copy_out failed")
			}
			return amount, nil
		}

		pos += n
	}
	return amount, nil
}

// Write copies count bytes from src into inode ino starting at pos via
// the host-supplied copyIn callback, extending the file with ChangeSize
// when the write would grow it. If append is set, pos is reset to the
// file's current size before the transfer begins (spec §4.4).
func (img *Image) Write(ino int, pos uint32, count uint32, src []byte, copyIn CopyIn, appendMode bool) (uint32, error) {
	i := img.getInode(ino)
	if appendMode {
		pos = i.Size
	}

	if pos+count > i.Size {
		if err := img.ChangeSize(ino, pos+count); err != nil {
			return 0, err
		}
		i = img.getInode(ino)
	}

	var amount uint32
	for amount < count {
		blk := img.BlocknoForOffset(&i, pos)
		if blk == 0 {
			return amount, newErr("write", CodeIO, "blockno_for_offset returned 0 within file bounds")
		}

		within := pos % BlockSize
		tail := uint32(BlockSize) - within
		n := count - amount
		if n > tail {
			n = tail
		}

		dst := img.block(int(blk))[within : within+n]
		written, err := copyIn(dst, src[amount:amount+n])
		amount += uint32(written)
		if err != nil {
			if amount == 0 {
				return 0, newErr("write", CodeFault, "copy_in failed")
			}
			return amount, nil
		}

		pos += n
	}
	return amount, nil
}
