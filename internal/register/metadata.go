package register

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MetadataItem is a single-table pk/sk item as stored by
// internal/storage's metadata store: User, Project, and Dataset all
// serialise to and parse from this shape (spec.md §8, grounded on the
// teacher's APIKey row shape in internal/storage/types.go).
type MetadataItem map[string]any

// User holds the metadata DynamoDB-style row for a Pharos user account.
// Unlike Record, User rejects any field outside this closed set.
type User struct {
	ResearcherID string   `json:"researcherID"`
	Organization string   `json:"organization"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	ProjectIDs   []string `json:"projectIDs,omitempty"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	DownloadIDs  []string `json:"downloadIDs,omitempty"`
}

// ParseUser decodes raw into a User, rejecting any field outside the
// closed schema.
func ParseUser(raw []byte) (*User, error) {
	var u User
	if err := decodeStrict(raw, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// ToTableItem returns u as a MetadataItem with researcherID promoted to
// the partition key and a fixed "_meta" sort key.
func (u *User) ToTableItem() (MetadataItem, error) {
	item, err := toItem(u)
	if err != nil {
		return nil, err
	}

	item["pk"] = item["researcherID"]
	delete(item, "researcherID")
	item["sk"] = "_meta"

	return item, nil
}

// UserFromTableItem parses a MetadataItem back into a User.
func UserFromTableItem(item MetadataItem) (*User, error) {
	working := cloneItem(item)
	working["researcherID"] = working["pk"]
	delete(working, "pk")
	delete(working, "sk")

	var u User
	if err := fromItem(working, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// ProjectAuthorRole is the role an author holds on a project.
type ProjectAuthorRole string

// RoleAdmin is the only recognised project author role.
const RoleAdmin ProjectAuthorRole = "Admin"

// Author associates a researcher with a role on a project.
type Author struct {
	ResearcherID string `json:"researcherID"`
	Role         string `json:"role"`
}

// ProjectPublishStatus is the state of a project in the publishing
// process.
type ProjectPublishStatus string

const (
	PublishStatusUnpublished ProjectPublishStatus = "Unpublished"
	PublishStatusPublishing  ProjectPublishStatus = "Publishing"
	PublishStatusPublished   ProjectPublishStatus = "Published"
)

// Project is the metadata row describing a collection of datasets.
type Project struct {
	ProjectID           string                `json:"projectID"`
	Name                string                `json:"name"`
	DatasetIDs          []string              `json:"datasetIDs"`
	DeletedDatasetIDs   []string              `json:"deletedDatasetIDs,omitempty"`
	LastUpdated         string                `json:"lastUpdated,omitempty"`
	Description         string                `json:"description,omitempty"`
	ProjectType         string                `json:"projectType,omitempty"`
	SurveillanceStatus  string                `json:"surveillanceStatus,omitempty"`
	Citation            string                `json:"citation,omitempty"`
	RelatedMaterials    []string              `json:"relatedMaterials,omitempty"`
	ProjectPublications []string              `json:"projectPublications,omitempty"`
	OthersCiting        []string              `json:"othersCiting,omitempty"`
	Authors             []Author              `json:"authors,omitempty"`
	PublishStatus       ProjectPublishStatus  `json:"publishStatus,omitempty"`
}

// ParseProject decodes raw into a Project, rejecting any field outside
// the closed schema.
func ParseProject(raw []byte) (*Project, error) {
	var p Project
	if err := decodeStrict(raw, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// ToTableItem returns p as a MetadataItem with projectID promoted to the
// partition key and a fixed "_meta" sort key.
func (p *Project) ToTableItem() (MetadataItem, error) {
	item, err := toItem(p)
	if err != nil {
		return nil, err
	}

	item["pk"] = item["projectID"]
	delete(item, "projectID")
	item["sk"] = "_meta"

	return item, nil
}

// ProjectFromTableItem parses a MetadataItem back into a Project.
func ProjectFromTableItem(item MetadataItem) (*Project, error) {
	working := cloneItem(item)
	working["projectID"] = working["pk"]
	delete(working, "pk")
	delete(working, "sk")

	var p Project
	if err := fromItem(working, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Version names a specific timestamp within a register that a user may
// want to refer back to.
type Version struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// RegisterPage tracks metadata for one page of paginated register
// storage.
type RegisterPage struct {
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Dataset is the metadata row describing one register's publishing
// state, keyed by (projectID, datasetID).
type Dataset struct {
	ProjectID     string                  `json:"projectID"`
	DatasetID     string                  `json:"datasetID"`
	Name          string                  `json:"name"`
	LastUpdated   string                  `json:"lastUpdated,omitempty"`
	EarliestDate  string                  `json:"earliestDate,omitempty"`
	LatestDate    string                  `json:"latestDate,omitempty"`
	ReleaseStatus DatasetReleaseStatus    `json:"releaseStatus,omitempty"`
	ReleaseReport *ReleaseReport          `json:"releaseReport,omitempty"`
	RegisterPages map[string]RegisterPage `json:"registerPages,omitempty"`
	Age           string                  `json:"age,omitempty"`
	Mass          string                  `json:"mass,omitempty"`
	Length        string                  `json:"length,omitempty"`
}

// ParseDataset decodes raw into a Dataset, rejecting any field outside
// the closed schema.
func ParseDataset(raw []byte) (*Dataset, error) {
	var d Dataset
	if err := decodeStrict(raw, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// ToTableItem returns d as a MetadataItem with projectID and datasetID
// promoted to the partition and sort keys respectively.
func (d *Dataset) ToTableItem() (MetadataItem, error) {
	item, err := toItem(d)
	if err != nil {
		return nil, err
	}

	item["pk"] = item["projectID"]
	delete(item, "projectID")
	item["sk"] = item["datasetID"]
	delete(item, "datasetID")

	return item, nil
}

// DatasetFromTableItem parses a MetadataItem back into a Dataset.
func DatasetFromTableItem(item MetadataItem) (*Dataset, error) {
	working := cloneItem(item)
	working["projectID"] = working["pk"]
	working["datasetID"] = working["sk"]
	delete(working, "pk")
	delete(working, "sk")

	var d Dataset
	if err := fromItem(working, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// decodeStrict unmarshals raw into v, returning ErrUnknownField wrapped
// with the offending field name if raw contains a field v does not
// declare. Any other decode error is returned unwrapped.
func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field ") {
			return fmt.Errorf("%w: %s", ErrUnknownField, err.Error())
		}

		return err
	}

	return nil
}

// toItem round-trips v through JSON to produce a MetadataItem keyed by
// its json tags, mirroring a pydantic `.dict(by_alias=True)` call.
func toItem(v any) (MetadataItem, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	item := MetadataItem{}
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}

	return item, nil
}

// fromItem round-trips a MetadataItem through JSON into v, rejecting any
// field v does not declare.
func fromItem(item MetadataItem, v any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return decodeStrict(raw, v)
}

// cloneItem returns a shallow copy of item so callers can mutate pk/sk
// without affecting the caller's original map.
func cloneItem(item MetadataItem) MetadataItem {
	clone := make(MetadataItem, len(item))
	for k, v := range item {
		clone[k] = v
	}

	return clone
}
