package ospfs

import "encoding/binary"

// Superblock describes the fixed layout of a formatted image (spec §3,
// §6 "Image format").
type Superblock struct {
	Magic     uint32
	NInodes   uint32
	FirstInob uint32
}

// Image is the entire durable state of an OSPFS instance: a contiguous
// byte array logically partitioned into fixed-size blocks (spec §4.1
// "Block device view"). It is volatile by construction (spec §1
// non-goals): nothing here ever touches a file, socket, or clock.
type Image struct {
	buf        []byte
	nblocks    int
	sb         Superblock
	bitmapSpan int // blocks occupied by the free-block bitmap
	inodeSpan  int // blocks occupied by the inode table
}

// NewImage allocates a zeroed image of nblocks blocks and formats it with
// ninodes inode slots. It is the "opaque byte producer" collaborator of
// spec §1 reduced to its simplest form: a freshly formatted, empty image.
// Loading an image built by some other producer is Load.
func NewImage(nblocks int, ninodes int) (*Image, error) {
	img := &Image{
		buf:     make([]byte, nblocks*BlockSize),
		nblocks: nblocks,
	}
	if err := img.format(ninodes); err != nil {
		return nil, err
	}
	return img, nil
}

// Load wraps a pre-built byte array (spec §6 "Image format (byte-exact)")
// as an Image, reading its superblock to recover the layout. The buffer
// is used in place, not copied.
func Load(buf []byte) (*Image, error) {
	if len(buf)%BlockSize != 0 {
		return nil, newErr("load", CodeIO, "image length is not block-aligned")
	}
	img := &Image{buf: buf, nblocks: len(buf) / BlockSize}
	sbBlock := img.block(1)
	img.sb = Superblock{
		Magic:     binary.LittleEndian.Uint32(sbBlock[0:4]),
		NInodes:   binary.LittleEndian.Uint32(sbBlock[4:8]),
		FirstInob: binary.LittleEndian.Uint32(sbBlock[8:12]),
	}
	if img.sb.Magic != superblockMagic {
		return nil, newErr("load", CodeIO, "bad superblock magic")
	}
	img.bitmapSpan = int(img.sb.FirstInob) - bitmapStartBlock
	img.inodeSpan = blocksNeeded(img.sb.NInodes * inodeSize)
	if img.bitmapSpan < 0 || img.dataStart() > img.nblocks {
		return nil, newErr("load", CodeIO, "superblock geometry exceeds image size")
	}
	return img, nil
}

// format lays out block 0 (reserved), the superblock, the free-block
// bitmap and the inode table, then marks every data block free.
func (img *Image) format(ninodes int) error {
	// Bits needed = nblocks; blocks needed = ceil(nblocks / (8*BlockSize)).
	bitsPerBlock := 8 * BlockSize
	bmSpan := (img.nblocks + bitsPerBlock - 1) / bitsPerBlock
	inodeSpan := blocksNeeded(uint32(ninodes) * inodeSize)
	firstInob := bitmapStartBlock + bmSpan

	if firstInob+inodeSpan >= img.nblocks {
		return newErr("format", CodeIO, "image too small for requested inode count")
	}

	img.sb = Superblock{Magic: superblockMagic, NInodes: uint32(ninodes), FirstInob: uint32(firstInob)}
	img.bitmapSpan = bmSpan
	img.inodeSpan = inodeSpan

	sbBlock := img.block(1)
	binary.LittleEndian.PutUint32(sbBlock[0:4], img.sb.Magic)
	binary.LittleEndian.PutUint32(sbBlock[4:8], img.sb.NInodes)
	binary.LittleEndian.PutUint32(sbBlock[8:12], img.sb.FirstInob)

	// Every block is free until claimed. Blocks below dataStart()
	// (boot, superblock, bitmap, inode table) are permanently reserved
	// by never being allocatable, per spec §3's "never freed" invariant.
	for b := 0; b < img.nblocks; b++ {
		img.bitmapSet(b)
	}
	reserved := img.dataStart()
	for b := 0; b < reserved; b++ {
		img.bitmapClear(b)
	}

	// Zero every inode slot and mark the root as an empty directory. The
	// inode records no parent; Readdir takes the ".." inode from its caller.
	for i := 1; i <= ninodes; i++ {
		blank := Inode{}
		img.putInode(i, &blank)
	}
	root := Inode{Ftype: FtDir, Nlink: 1, Mode: 0755, Size: 0}
	img.putInode(RootIno, &root)
	return nil
}

// NBlocks returns the image's total block count.
func (img *Image) NBlocks() int { return img.nblocks }

// SuperblockInfo returns a copy of the image's superblock.
func (img *Image) SuperblockInfo() Superblock { return img.sb }

// Bytes exposes the raw backing buffer, e.g. for a snapshot store to
// persist. Callers must not resize it.
func (img *Image) Bytes() []byte { return img.buf }

// block returns the byte span for block n. Block 0 is the reserved boot
// block; it is a valid span (so format can still address it) but is
// never a legal data or pointer target (spec §9 "pointer sentinel 0").
func (img *Image) block(n int) []byte {
	return img.buf[n*BlockSize : (n+1)*BlockSize]
}

// dataStart returns the first block index available for data.
func (img *Image) dataStart() int {
	return bitmapStartBlock + img.bitmapSpan + img.inodeSpan
}

func (img *Image) firstInob() int { return int(img.sb.FirstInob) }

func (img *Image) ninodes() int { return int(img.sb.NInodes) }

func leUint32(b []byte) uint32       { return binary.LittleEndian.Uint32(b[:4]) }
func putLeUint32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b[:4], v) }
