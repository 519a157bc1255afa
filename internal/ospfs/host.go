package ospfs

// Host adapter surface (spec §4.9, §6). The engine never touches a real
// user-memory boundary, a kernel VFS callback, or a clock; a host
// supplies byte-copy callbacks and an identity, and calls into Engine.
//
// Concurrency: Engine takes no lock of its own (spec §5 — "single-
// threaded cooperative within the engine"). A host serving concurrent
// callers must serialize calls into a given Engine itself, e.g. with a
// sync.Mutex around each call.

// CopyOut copies src (in-image bytes) into dst (host/user memory),
// returning the number of bytes copied and a non-nil error on fault.
type CopyOut func(dst []byte, src []byte) (int, error)

// CopyIn copies src (host/user memory) into dst (in-image bytes),
// returning the number of bytes copied and a non-nil error on fault.
type CopyIn func(dst []byte, src []byte) (int, error)

// Identity carries the caller-identity context the engine needs: the
// single "is this the superuser" predicate used by conditional symlinks
// (spec §1 non-goals — nothing richer than this is modeled).
type Identity struct {
	IsSuperuser bool
}

// Engine is the thin façade a host filesystem runtime calls into. It
// does no policy of its own beyond what a single forwarding call
// requires — e.g. Truncate is exactly the "attribute-change glue that
// merely forwards to change_size" described in spec §1, plus the one
// policy check (§4.3) that the engine's ChangeSize itself does not make.
type Engine struct {
	img *Image
}

// NewEngine wraps an already-formatted or loaded Image as an Engine.
func NewEngine(img *Image) *Engine {
	return &Engine{img: img}
}

// Image exposes the underlying image, e.g. for a snapshot store.
func (e *Engine) Image() *Image { return e.img }

// Lookup resolves name within directory inode dirIno.
func (e *Engine) Lookup(dirIno int, name string) (int, bool) {
	return e.img.Lookup(dirIno, name)
}

// Readdir enumerates directory inode dirIno starting at pos.
func (e *Engine) Readdir(dirIno, parentIno int, pos uint32, emit func(name string, ino uint32) bool) (uint32, ReaddirResult, error) {
	return e.img.Readdir(dirIno, parentIno, pos, emit)
}

// Read transfers up to count bytes of inode ino starting at pos into dst.
func (e *Engine) Read(ino int, pos, count uint32, dst []byte, copyOut CopyOut) (uint32, error) {
	return e.img.Read(ino, pos, count, dst, copyOut)
}

// Write transfers count bytes from src into inode ino starting at pos.
func (e *Engine) Write(ino int, pos, count uint32, src []byte, copyIn CopyIn, appendMode bool) (uint32, error) {
	return e.img.Write(ino, pos, count, src, copyIn, appendMode)
}

// Create makes a new regular file named name inside dirIno.
func (e *Engine) Create(dirIno int, name string, mode uint32) (int, error) {
	return e.img.Create(dirIno, name, mode)
}

// Link adds a hard link to srcIno named dstName inside dirIno.
func (e *Engine) Link(srcIno, dirIno int, dstName string) error {
	return e.img.Link(srcIno, dirIno, dstName)
}

// Unlink removes name from dirIno, releasing the target's storage once
// its link count reaches 0.
func (e *Engine) Unlink(dirIno int, name string) error {
	return e.img.Unlink(dirIno, name)
}

// Symlink creates a symbolic link named name inside dirIno pointing at
// target.
func (e *Engine) Symlink(dirIno int, name, target string) (int, error) {
	return e.img.Symlink(dirIno, name, target)
}

// Truncate wraps ChangeSize (spec §6): a directory can never be
// truncated by this entry point (spec §4.3's "refused by the caller").
func (e *Engine) Truncate(ino int, newSize uint32) error {
	i := e.img.getInode(ino)
	if i.Ftype == FtDir {
		return newErr("truncate", CodePerm, "cannot resize a directory")
	}
	return e.img.ChangeSize(ino, newSize)
}

// FollowLink resolves a symlink inode's target for the given identity.
func (e *Engine) FollowLink(ino int, id Identity) (string, error) {
	return e.img.FollowLink(ino, id.IsSuperuser)
}
