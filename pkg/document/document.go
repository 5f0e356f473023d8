package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// Kind identifies the document family.
type Kind string

const (
	KindTemplate Kind = "template"
	KindBulletin Kind = "bulletin"
	KindCard     Kind = "card"
)

// Kinds lists every document kind.
var Kinds = []Kind{KindTemplate, KindBulletin, KindCard}

// ParseKind validates s as a document kind. The plural form used in URLs
// ("templates") is accepted too.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == string(k) || s == string(k)+"s" {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "invalid document kind: %q (must be one of: template, bulletin, card)", s)
}

// Status is the publication state of a master record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Master is the long-lived record of a document. Its content lives in
// versions; CurrentVersion is the number of the latest one (0 before the
// first publish).
type Master struct {
	ID             string    `json:"id" yaml:"id" bson:"_id"`
	Kind           Kind      `json:"kind" yaml:"kind" bson:"kind" validate:"required,oneof=template bulletin card"`
	Name           string    `json:"name" yaml:"name" bson:"name" validate:"required,max=256"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty" bson:"description,omitempty" validate:"max=4096"`
	Status         Status    `json:"status" yaml:"status" bson:"status" validate:"required,oneof=draft published archived"`
	CurrentVersion int       `json:"current_version" yaml:"current_version" bson:"current_version" validate:"gte=0"`
	TemplateID     string    `json:"template_id,omitempty" yaml:"template_id,omitempty" bson:"template_id,omitempty"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"updated_at" bson:"updated_at"`
}

// NewMaster creates a master record in draft status with a fresh ID.
func NewMaster(kind Kind, name, description string) Master {
	now := time.Now().UTC()
	return Master{
		ID:          uuid.NewString(),
		Kind:        kind,
		Name:        name,
		Description: description,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Version is an immutable snapshot of a document's content.
type Version struct {
	ID        string    `json:"id" yaml:"id"`
	MasterID  string    `json:"master_id" yaml:"master_id"`
	Number    int       `json:"number" yaml:"number"`
	Comment   string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Content   Content   `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewVersion creates a version of masterID holding a deep copy of content.
// The number is assigned by the repository when the version is stored.
func NewVersion(masterID, comment string, content Content) Version {
	return Version{
		ID:        uuid.NewString(),
		MasterID:  masterID,
		Comment:   comment,
		Content:   content.Clone(),
		CreatedAt: time.Now().UTC(),
	}
}

// Document bundles a master with the content of one of its versions. It is
// the unit of import and export.
type Document struct {
	Master  Master  `json:"master" yaml:"master"`
	Content Content `json:"content" yaml:"content"`
}
