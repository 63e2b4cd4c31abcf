package renamer

// ChangeKind classifies a reported change.
type ChangeKind string

const (
	ChangeDir       ChangeKind = "dir"
	ChangeFile      ChangeKind = "file"
	ChangePlaylist  ChangeKind = "playlist"
	ChangeEntry     ChangeKind = "entry"
	ChangeGenerated ChangeKind = "generated"
	ChangeRetag     ChangeKind = "retag"
)

// Change is one transform the walker performed or, in dry-run mode, would
// perform.
type Change struct {
	Kind ChangeKind
	From string
	To   string
	// Detail carries context such as the playlist an entry belongs to.
	Detail  string
	Applied bool
}
