package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUser_RejectsUnknownField(t *testing.T) {
	raw := []byte(`{"researcherID":"r1","organization":"org","email":"a@b.com","name":"A","extraField":"nope"}`)

	_, err := ParseUser(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestUser_TableItemRoundTrip(t *testing.T) {
	u := &User{
		ResearcherID: "r1",
		Organization: "org",
		Email:        "a@b.com",
		Name:         "A Name",
		ProjectIDs:   []string{"p1", "p2"},
	}

	item, err := u.ToTableItem()
	require.NoError(t, err)
	assert.Equal(t, "r1", item["pk"])
	assert.Equal(t, "_meta", item["sk"])
	assert.NotContains(t, item, "researcherID")

	back, err := UserFromTableItem(item)
	require.NoError(t, err)
	assert.Equal(t, u.ResearcherID, back.ResearcherID)
	assert.Equal(t, u.Organization, back.Organization)
	assert.Equal(t, u.Email, back.Email)
	assert.ElementsMatch(t, u.ProjectIDs, back.ProjectIDs)
}

func TestProject_TableItemRoundTrip(t *testing.T) {
	p := &Project{
		ProjectID:     "p1",
		Name:          "Project One",
		DatasetIDs:    []string{"d1"},
		PublishStatus: PublishStatusPublished,
	}

	item, err := p.ToTableItem()
	require.NoError(t, err)
	assert.Equal(t, "p1", item["pk"])
	assert.Equal(t, "_meta", item["sk"])

	back, err := ProjectFromTableItem(item)
	require.NoError(t, err)
	assert.Equal(t, p.ProjectID, back.ProjectID)
	assert.Equal(t, p.Name, back.Name)
	assert.Equal(t, p.PublishStatus, back.PublishStatus)
}

func TestDataset_TableItemRoundTrip(t *testing.T) {
	d := &Dataset{
		ProjectID:     "p1",
		DatasetID:     "d1",
		Name:          "Dataset One",
		ReleaseStatus: ReleaseStatusReleasing,
	}

	item, err := d.ToTableItem()
	require.NoError(t, err)
	assert.Equal(t, "p1", item["pk"])
	assert.Equal(t, "d1", item["sk"])
	assert.NotContains(t, item, "projectID")
	assert.NotContains(t, item, "datasetID")

	back, err := DatasetFromTableItem(item)
	require.NoError(t, err)
	assert.Equal(t, d.ProjectID, back.ProjectID)
	assert.Equal(t, d.DatasetID, back.DatasetID)
	assert.Equal(t, d.ReleaseStatus, back.ReleaseStatus)
}

func TestParseProject_RejectsUnknownField(t *testing.T) {
	raw := []byte(`{"projectID":"p1","name":"x","datasetIDs":[],"bogus":true}`)

	_, err := ParseProject(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownField)
}
