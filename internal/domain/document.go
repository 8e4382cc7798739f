package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentOwner is the typed form of the (related_type, related_id)
// polymorphic key used by the supporting_documents table.
type DocumentOwner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// BeneficiaryOwner returns the owner key pointing at a PWD record.
func BeneficiaryOwner(id uuid.UUID) DocumentOwner {
	return DocumentOwner{Kind: OwnerKindPWD, ID: id}
}

// AssistanceOwner returns the owner key pointing at an assistance request.
func AssistanceOwner(id uuid.UUID) DocumentOwner {
	return DocumentOwner{Kind: OwnerKindAssistance, ID: id}
}

// SupportingDocument is an uploaded file attached to a beneficiary or an
// assistance request. StoredName is the opaque path assigned by the file
// store, never the client filename.
type SupportingDocument struct {
	ID         uuid.UUID `db:"id"`
	OwnerKind  OwnerKind `db:"related_type"`
	OwnerID    uuid.UUID `db:"related_id"`
	StoredName string    `db:"stored_name"`
	DocType    *string   `db:"doc_type"`
	MimeType   *string   `db:"mime_type"`
	SizeBytes  int64     `db:"size_bytes"`
	UploadedBy uuid.UUID `db:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at"`
}

// Owner returns the document's typed owner key.
func (d SupportingDocument) Owner() DocumentOwner {
	return DocumentOwner{Kind: d.OwnerKind, ID: d.OwnerID}
}

// DocumentUpdateParams enumerates the updatable document fields. Nil means
// leave unchanged. The stored name and owner key are immutable.
type DocumentUpdateParams struct {
	DocType  *string
	MimeType *string
}

// IsEmpty reports whether no field is present.
func (p DocumentUpdateParams) IsEmpty() bool {
	return p.DocType == nil && p.MimeType == nil
}
