package ospfs

import "testing"

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name string
		b    int
		want blockLevel
	}{
		{"first direct block", 0, levelDirect},
		{"last direct block", NDirect - 1, levelDirect},
		{"first indirect block", NDirect, levelIndirect},
		{"last indirect block", NDirect + NIndirect - 1, levelIndirect},
		{"first indirect2 block", NDirect + NIndirect, levelIndirect2},
		{"last addressable block", MaxFileBlocks - 1, levelIndirect2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levelOf(tt.b); got != tt.want {
				t.Errorf("levelOf(%d) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestDirectSlot(t *testing.T) {
	tests := []struct {
		name string
		b    int
		want int
	}{
		{"direct region echoes b", 3, 3},
		{"first indirect slot", NDirect, 0},
		{"last indirect slot", NDirect + NIndirect - 1, NIndirect - 1},
		{"first slot of first indirect2 chain", NDirect + NIndirect, 0},
		{"first slot of second indirect2 chain", NDirect + NIndirect + NIndirect, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directSlot(tt.b); got != tt.want {
				t.Errorf("directSlot(%d) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}

func TestIndirSlot(t *testing.T) {
	tests := []struct {
		name string
		b    int
		want int
	}{
		{"below indirect2 region", NDirect, 0},
		{"first indirect2 chain", NDirect + NIndirect, 0},
		{"second indirect2 chain", NDirect + NIndirect + NIndirect, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indirSlot(tt.b); got != tt.want {
				t.Errorf("indirSlot(%d) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}

func TestBlocknoForOffsetUnsetPointerIsZero(t *testing.T) {
	// Setup: an inode claiming a size that reaches into the indirect
	// region, but with no indirect block actually allocated.
	img := &Image{buf: make([]byte, 8*BlockSize), nblocks: 8}
	i := Inode{Ftype: FtReg, Size: (NDirect + 1) * BlockSize}

	// Act
	got := img.BlocknoForOffset(&i, uint32(NDirect)*BlockSize)

	// Assert
	if got != 0 {
		t.Errorf("BlocknoForOffset with unset indirect pointer = %d, want 0", got)
	}
}

func TestBlocknoForOffsetSymlinkAlwaysZero(t *testing.T) {
	i := Inode{Ftype: FtSymlink, Size: 5, SymlinkTarget: "/etc"}
	img := &Image{buf: make([]byte, 4*BlockSize), nblocks: 4}

	if got := img.BlocknoForOffset(&i, 0); got != 0 {
		t.Errorf("BlocknoForOffset on symlink = %d, want 0", got)
	}
}

func TestBlocknoForOffsetPastEndOfFileIsZero(t *testing.T) {
	i := Inode{Ftype: FtReg, Size: 10}
	img := &Image{buf: make([]byte, 4*BlockSize), nblocks: 4}

	if got := img.BlocknoForOffset(&i, 10); got != 0 {
		t.Errorf("BlocknoForOffset at EOF = %d, want 0", got)
	}
}
