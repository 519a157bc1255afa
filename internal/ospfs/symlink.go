package ospfs

import "strings"

// conditionalPrefix is the literal prefix identifying a conditional
// symlink target, checked with a proper prefix comparison per spec §9
// (the source's ambiguous check is explicitly rejected).
const conditionalPrefix = "root?"

// FollowLink returns the resolved target string for a symlink inode.
//
// A conditional symlink has the form "root?PRIMARY:FALLBACK" (spec
// §4.7): superuser callers get PRIMARY, everyone else gets FALLBACK.
// The split is recomputed on a local copy of the stored target every
// call; the on-disk SymlinkTarget is never mutated (spec §9 open
// question — the source implementation's mutate-on-resolve behavior is
// forbidden here).
func (img *Image) FollowLink(ino int, isSuperuser bool) (string, error) {
	i := img.getInode(ino)
	if i.Ftype != FtSymlink {
		return "", newErr("follow_link", CodeIO, "inode is not a symlink")
	}

	target := i.SymlinkTarget
	if !strings.HasPrefix(target, conditionalPrefix) {
		return target, nil
	}

	rest := target[len(conditionalPrefix):]
	primary, fallback, ok := strings.Cut(rest, ":")
	if !ok {
		return target, nil
	}
	if isSuperuser {
		return primary, nil
	}
	return fallback, nil
}
