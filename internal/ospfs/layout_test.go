package ospfs

import "testing"

func TestBlocksNeeded(t *testing.T) {
	tests := []struct {
		name string
		size uint32
		want int
	}{
		{"zero", 0, 0},
		{"one byte", 1, 1},
		{"exactly one block", BlockSize, 1},
		{"one byte over a block", BlockSize + 1, 2},
		{"exactly two blocks", 2 * BlockSize, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blocksNeeded(tt.size); got != tt.want {
				t.Errorf("blocksNeeded(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestFileTypeString(t *testing.T) {
	tests := []struct {
		ft   FileType
		want string
	}{
		{FtFree, "FREE"},
		{FtReg, "REG"},
		{FtDir, "DIR"},
		{FtSymlink, "SYMLINK"},
		{FileType(99), "FREE"},
	}

	for _, tt := range tests {
		if got := tt.ft.String(); got != tt.want {
			t.Errorf("FileType(%d).String() = %q, want %q", tt.ft, got, tt.want)
		}
	}
}
