package models

import "time"

// Document is a readable resource, normally an external URL. The filename,
// filepath and filesize columns are kept for documents uploaded before links.
type Document struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description,omitempty"`
	Filename       *string      `json:"filename,omitempty"`
	Filepath       *string      `json:"filepath,omitempty"`
	Filesize       *int64       `json:"filesize,omitempty"`
	URL            *string      `json:"url,omitempty"`
	DocumentType   DocumentType `json:"documentType"`
	TagID          *int64       `json:"tagId,omitempty"`
	PublishingYear *int         `json:"publishingYear,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`

	// Read-side enrichment
	Tag          *Tag  `json:"tag,omitempty"`
	SyllabiCount int64 `json:"syllabiCount"`
}

// DocumentFromRecord decodes a store record. The type is copied as stored;
// it is not coerced on read.
func DocumentFromRecord(r Record) *Document {
	return &Document{
		ID:             r.Int64("id"),
		Title:          r.String("title"),
		Description:    r.StringPtr("description"),
		Filename:       r.StringPtr("filename"),
		Filepath:       r.StringPtr("filepath"),
		Filesize:       r.Int64Ptr("filesize"),
		URL:            r.StringPtr("url"),
		DocumentType:   DocumentType(r.String("documentType")),
		TagID:          r.Int64Ptr("tagId"),
		PublishingYear: r.IntPtr("publishingYear"),
		CreatedAt:      r.Time("createdAt"),
		UpdatedAt:      r.Time("updatedAt"),
	}
}

// Fields returns the writable columns keyed by field name
func (d *Document) Fields() Record {
	return Record{
		"title":          d.Title,
		"description":    d.Description,
		"url":            d.URL,
		"documentType":   string(d.DocumentType),
		"tagId":          d.TagID,
		"publishingYear": d.PublishingYear,
	}
}

// SyllabusDocument is a row of the syllabus/document junction. DocumentType is
// the snapshot taken at link time.
type SyllabusDocument struct {
	SyllabusID   int64        `json:"syllabusId"`
	DocumentID   int64        `json:"documentId"`
	DocumentType DocumentType `json:"documentType"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// SyllabusDocumentFromRecord decodes a junction record
func SyllabusDocumentFromRecord(r Record) *SyllabusDocument {
	return &SyllabusDocument{
		SyllabusID:   r.Int64("syllabusId"),
		DocumentID:   r.Int64("documentId"),
		DocumentType: DocumentType(r.String("documentType")),
		CreatedAt:    r.Time("createdAt"),
	}
}

// DocumentUser is a user's read status for one document.
type DocumentUser struct {
	DocumentID int64      `json:"documentId"`
	UserID     int64      `json:"userId"`
	ReadStatus ReadStatus `json:"readStatus"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// DocumentUserFromRecord decodes a read-status record
func DocumentUserFromRecord(r Record) *DocumentUser {
	return &DocumentUser{
		DocumentID: r.Int64("documentId"),
		UserID:     r.Int64("userId"),
		ReadStatus: ReadStatus(r.String("readStatus")),
		CreatedAt:  r.Time("createdAt"),
		UpdatedAt:  r.Time("updatedAt"),
	}
}

// DocumentWithStatus pairs a document with the caller's read status.
type DocumentWithStatus struct {
	Document
	ReadStatus ReadStatus `json:"readStatus"`
}
