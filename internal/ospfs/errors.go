package ospfs

// Code is the category of an engine error, per the taxonomy in spec §7.
type Code int

const (
	// CodeIO indicates a corruption or invariant violation. The image
	// may be partially inconsistent after this is returned; recovery is
	// best-effort only.
	CodeIO Code = iota

	// CodeNoSpace indicates the bitmap or inode table has no free entry.
	CodeNoSpace

	// CodeExists indicates a name conflict in a directory.
	CodeExists

	// CodeNotFound indicates a missing directory entry.
	CodeNotFound

	// CodeNameTooLong indicates an oversized name or symlink target.
	CodeNameTooLong

	// CodeFault indicates a host copy_in/copy_out callback failed.
	CodeFault

	// CodePerm indicates a policy violation (e.g. truncating a directory).
	CodePerm
)

func (c Code) String() string {
	switch c {
	case CodeIO:
		return "IO"
	case CodeNoSpace:
		return "NO_SPACE"
	case CodeExists:
		return "EXISTS"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeNameTooLong:
		return "NAME_TOO_LONG"
	case CodeFault:
		return "FAULT"
	case CodePerm:
		return "PERM"
	default:
		return "UNKNOWN"
	}
}

// Error is a domain error from an engine operation. Op names the failing
// operation (e.g. "add_block", "create"); Detail is a human-readable
// description used for logging and debugging.
type Error struct {
	Code   Code
	Op     string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Op + ": " + e.Code.String() + ": " + e.Detail
	}
	return e.Op + ": " + e.Code.String()
}

func newErr(op string, code Code, detail string) *Error {
	return &Error{Code: code, Op: op, Detail: detail}
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
