package models

// Actor identifies the user on whose behalf an operation runs. It is always
// passed explicitly.
type Actor struct {
	UserID int64
}

// IsAnonymous reports a request without a user
func (a Actor) IsAnonymous() bool {
	return a.UserID <= 0
}

// LinkResult is returned by document/syllabus linking. AlreadyLinked is a
// normal outcome: the pair existed and nothing was written.
type LinkResult struct {
	SyllabusID    int64        `json:"syllabusId"`
	DocumentID    int64        `json:"documentId"`
	DocumentType  DocumentType `json:"documentType"`
	AlreadyLinked bool         `json:"alreadyLinked"`
}

// UnlinkResult reports whether a junction row was removed.
type UnlinkResult struct {
	SyllabusID int64 `json:"syllabusId"`
	DocumentID int64 `json:"documentId"`
	Removed    bool  `json:"removed"`
}

// DeleteResult reports a delete. FilePath is set when a local file belonged to
// the deleted row and should be removed after commit.
type DeleteResult struct {
	Deleted  bool    `json:"deleted"`
	FilePath *string `json:"-"`
}
