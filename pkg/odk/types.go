package odk

import (
	"encoding/json"
	"time"
)

// Project represents a project on a Central server.
type Project struct {
	ID          int        `json:"id"                    yaml:"id"`
	Name        string     `json:"name"                  yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Archived    bool       `json:"archived"              yaml:"archived"`
	KeyID       *int       `json:"keyId,omitempty"       yaml:"keyId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"             yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"   yaml:"updatedAt,omitempty"`
}

// User represents a Central account.
type User struct {
	ID          int       `json:"id"          yaml:"id"`
	Type        string    `json:"type"        yaml:"type"`
	Email       string    `json:"email"       yaml:"email"`
	DisplayName string    `json:"displayName" yaml:"displayName"`
	CreatedAt   time.Time `json:"createdAt"   yaml:"createdAt"`
}

// Form represents an XForm within a project.
type Form struct {
	ProjectID   int        `json:"projectId"             yaml:"projectId"`
	XMLFormID   string     `json:"xmlFormId"             yaml:"xmlFormId"`
	Name        string     `json:"name"                  yaml:"name"`
	Version     string     `json:"version"               yaml:"version"`
	State       string     `json:"state"                 yaml:"state"`
	Hash        string     `json:"hash"                  yaml:"hash"`
	EnketoID    string     `json:"enketoId,omitempty"    yaml:"enketoId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"             yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"   yaml:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`

	// Populated only when the extended metadata representation is requested.
	Submissions    int            `json:"submissions,omitempty"    yaml:"submissions,omitempty"`
	LastSubmission *time.Time     `json:"lastSubmission,omitempty" yaml:"lastSubmission,omitempty"`
	CreatedBy      map[string]any `json:"createdBy,omitempty"      yaml:"createdBy,omitempty"`
}

// FormListOptions narrows a FormsClient.List call.
type FormListOptions struct {
	// ExtendedMetadata requests the extended representation via the
	// X-Extended-Metadata header.
	ExtendedMetadata bool
}

// SubmissionList is the OData envelope returned by the .svc/Submissions
// endpoint. Submission rows are form-shaped and therefore left untyped.
type SubmissionList struct {
	Context string           `json:"@odata.context" yaml:"odata_context"`
	Count   int              `json:"@odata.count"   yaml:"odata_count"`
	Value   []map[string]any `json:"value"          yaml:"value"`
}

// Dataset represents an entity list within a project.
type Dataset struct {
	Name             string     `json:"name"                 yaml:"name"`
	ProjectID        int        `json:"projectId"            yaml:"projectId"`
	ApprovalRequired bool       `json:"approvalRequired"     yaml:"approvalRequired"`
	CreatedAt        time.Time  `json:"createdAt"            yaml:"createdAt"`
	LastEntity       *time.Time `json:"lastEntity,omitempty" yaml:"lastEntity,omitempty"`

	// Populated only in extended representations.
	Entities int `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// EntityVersion is the versioned payload of an entity.
type EntityVersion struct {
	Label                 string            `json:"label"                           yaml:"label"`
	Current               bool              `json:"current"                         yaml:"current"`
	Version               int               `json:"version"                         yaml:"version"`
	BaseVersion           *int              `json:"baseVersion"                     yaml:"baseVersion"`
	Data                  map[string]string `json:"data,omitempty"                  yaml:"data,omitempty"`
	ConflictingProperties []string          `json:"conflictingProperties,omitempty" yaml:"conflictingProperties,omitempty"`
	UserAgent             string            `json:"userAgent,omitempty"             yaml:"userAgent,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"                       yaml:"createdAt"`
	CreatorID             int               `json:"creatorId"                       yaml:"creatorId"`
}

// Entity represents one record of a dataset. The version counter inside
// CurrentVersion drives optimistic-concurrency updates.
type Entity struct {
	UUID           string        `json:"uuid"                yaml:"uuid"`
	CreatorID      int           `json:"creatorId"           yaml:"creatorId"`
	Conflict       *string       `json:"conflict,omitempty"  yaml:"conflict,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"           yaml:"createdAt"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	DeletedAt      *time.Time    `json:"deletedAt,omitempty" yaml:"deletedAt,omitempty"`
	CurrentVersion EntityVersion `json:"currentVersion"      yaml:"currentVersion"`
}

// EntityCreateRequest is the body of an entity creation POST.
type EntityCreateRequest struct {
	UUID  string            `json:"uuid"  yaml:"uuid"`
	Label string            `json:"label" yaml:"label"`
	Data  map[string]string `json:"data"  yaml:"data"`
}

// EntityUpdateRequest describes a partial entity update. Only the fields that
// are set end up in the PATCH body.
type EntityUpdateRequest struct {
	// Label replaces the entity label when non-empty.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Data merges into the entity data when non-nil.
	Data map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
	// NewVersion, when set, is the version the update is expected to
	// produce (current version + 1). The PATCH is then submitted against
	// baseVersion = NewVersion-1 so a concurrent writer surfaces as a
	// conflict. When nil, the update is forced.
	NewVersion *int `json:"-" yaml:"-"`
}

// EntitySystem is the __system block of a flattened entity row.
type EntitySystem struct {
	CreatedAt   time.Time  `json:"createdAt"           yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	CreatorID   string     `json:"creatorId"           yaml:"creatorId"`
	CreatorName string     `json:"creatorName"         yaml:"creatorName"`
	Updates     int        `json:"updates"             yaml:"updates"`
	Version     int        `json:"version"             yaml:"version"`
	Conflict    *string    `json:"conflict"            yaml:"conflict"`
}

// EntityRow is one row of the flattened .svc/Entities view. User-defined
// dataset properties land in Fields.
type EntityRow struct {
	ID     string            `json:"__id"     yaml:"id"`
	Label  string            `json:"label"    yaml:"label"`
	System EntitySystem      `json:"__system" yaml:"system"`
	Fields map[string]string `json:"-"        yaml:"fields,omitempty"`
}

// UnmarshalJSON splits the well-known row keys from the user-defined dataset
// properties, which land in Fields. Non-string property values are kept in
// their JSON form.
func (r *EntityRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	if id, ok := raw["__id"]; ok {
		if err := json.Unmarshal(id, &r.ID); err != nil {
			return err
		}
	}

	if label, ok := raw["label"]; ok {
		if err := json.Unmarshal(label, &r.Label); err != nil {
			return err
		}
	}

	if system, ok := raw["__system"]; ok {
		if err := json.Unmarshal(system, &r.System); err != nil {
			return err
		}
	}

	for key, value := range raw {
		switch key {
		case "__id", "label", "__system":
			continue
		}

		if r.Fields == nil {
			r.Fields = make(map[string]string)
		}

		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			s = string(value)
		}

		r.Fields[key] = s
	}

	return nil
}

// EntityRowEnvelope is the OData envelope around EntityRow values.
type EntityRowEnvelope struct {
	Context string      `json:"@odata.context" yaml:"odata_context"`
	Count   int         `json:"@odata.count"   yaml:"odata_count"`
	Value   []EntityRow `json:"value"          yaml:"value"`
}
