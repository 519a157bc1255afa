package ospfs

import "github.com/go-playground/validator/v10"

// nameValidate is the singleton validator instance used to check name
// and symlink-target lengths before any mutation happens, mirroring the
// teacher's single package-level validator.New() (pkg/config/validation.go).
var nameValidate = validator.New()

// nameArg and targetArg exist purely to carry validate struct tags; the
// engine also enforces MaxNameLen/MaxSymlinkLen itself beforehand so the
// invariant holds even if the tag ever drifts from the constant.
type nameArg struct {
	Name string `validate:"max=27"`
}

type targetArg struct {
	Target string `validate:"max=117"`
}

func checkNameLen(op, name string) error {
	if len(name) > MaxNameLen {
		return newErr(op, CodeNameTooLong, "name exceeds MaxNameLen")
	}
	if err := nameValidate.Struct(nameArg{Name: name}); err != nil {
		return newErr(op, CodeNameTooLong, "name exceeds MaxNameLen")
	}
	return nil
}

func checkTargetLen(op, target string) error {
	if len(target) > MaxSymlinkLen {
		return newErr(op, CodeNameTooLong, "target exceeds MaxSymlinkLen")
	}
	if err := nameValidate.Struct(targetArg{Target: target}); err != nil {
		return newErr(op, CodeNameTooLong, "target exceeds MaxSymlinkLen")
	}
	return nil
}

// Create allocates a directory entry and a free inode, populating the
// inode before the entry becomes visible so readers never observe a
// dangling reference (spec §4.6).
func (img *Image) Create(dirIno int, name string, mode uint32) (int, error) {
	if err := checkNameLen("create", name); err != nil {
		return 0, err
	}
	if _, _, found := img.FindDirentry(dirIno, name); found {
		return 0, newErr("create", CodeExists, name)
	}

	off, err := img.CreateBlankDirentry(dirIno)
	if err != nil {
		return 0, err
	}

	ino := img.findFreeInode()
	if ino == 0 {
		return 0, newErr("create", CodeNoSpace, "no free inode")
	}

	newInode := Inode{Ftype: FtReg, Size: 0, Nlink: 1, Mode: mode}
	img.putInode(ino, &newInode)

	d := img.getInode(dirIno)
	img.putDirent(&d, off, uint32(ino), name)

	return ino, nil
}

// Link adds a new directory entry pointing at an existing inode and
// bumps its link count (spec §4.6). Hard-linking directories is the
// caller's responsibility to forbid; the engine does not check.
func (img *Image) Link(srcIno int, dirIno int, dstName string) error {
	if err := checkNameLen("link", dstName); err != nil {
		return err
	}
	if _, _, found := img.FindDirentry(dirIno, dstName); found {
		return newErr("link", CodeExists, dstName)
	}

	off, err := img.CreateBlankDirentry(dirIno)
	if err != nil {
		return err
	}

	d := img.getInode(dirIno)
	img.putDirent(&d, off, uint32(srcIno), dstName)

	src := img.getInode(srcIno)
	src.Nlink++
	img.putInode(srcIno, &src)
	return nil
}

// Unlink removes a directory entry and drops the target inode's link
// count, freeing its storage once the count reaches 0 (spec §4.6).
func (img *Image) Unlink(dirIno int, name string) error {
	ino, off, found := img.FindDirentry(dirIno, name)
	if !found {
		return newErr("unlink", CodeNotFound, name)
	}

	d := img.getInode(dirIno)
	img.putDirent(&d, off, 0, "")

	oi := img.getInode(int(ino))
	if oi.Nlink > 0 {
		oi.Nlink--
	}
	img.putInode(int(ino), &oi)

	if oi.Nlink == 0 && oi.Ftype != FtSymlink {
		if err := img.ChangeSize(int(ino), 0); err != nil {
			return err
		}
	}
	return nil
}

// Symlink creates a symbolic link inode holding target and links it into
// dirIno under name (spec §4.6).
func (img *Image) Symlink(dirIno int, name string, target string) (int, error) {
	if err := checkNameLen("symlink", name); err != nil {
		return 0, err
	}
	if err := checkTargetLen("symlink", target); err != nil {
		return 0, err
	}
	if _, _, found := img.FindDirentry(dirIno, name); found {
		return 0, newErr("symlink", CodeExists, name)
	}

	off, err := img.CreateBlankDirentry(dirIno)
	if err != nil {
		return 0, err
	}

	ino := img.findFreeInode()
	if ino == 0 {
		return 0, newErr("symlink", CodeNoSpace, "no free inode")
	}

	newInode := Inode{Ftype: FtSymlink, Size: uint32(len(target)), Nlink: 1, SymlinkTarget: target}
	img.putInode(ino, &newInode)

	d := img.getInode(dirIno)
	img.putDirent(&d, off, uint32(ino), name)

	return ino, nil
}

// Lookup returns the inode number bound to name within dirIno, if any.
func (img *Image) Lookup(dirIno int, name string) (int, bool) {
	ino, _, found := img.FindDirentry(dirIno, name)
	return int(ino), found
}
