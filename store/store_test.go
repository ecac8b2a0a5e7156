package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "encuestas.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSessionRoundTrip(t *testing.T) {
	st := tempStore(t)

	// empty store yields an anonymous session
	session, err := st.LoadSession()
	require.NoError(t, err)
	assert.False(t, session.Authenticated())

	want := client.Session{Token: "tok-1", RefreshToken: "ref-1"}
	require.NoError(t, st.SaveSession(want, "http://localhost:8000/api/survey_api"))

	session, err = st.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, want, session)

	// saving again replaces, never duplicates
	want.Token = "tok-2"
	require.NoError(t, st.SaveSession(want, "http://localhost:8000/api/survey_api"))
	session, err = st.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", session.Token)

	require.NoError(t, st.ClearSession())
	session, err = st.LoadSession()
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestDraftRoundTrip(t *testing.T) {
	st := tempStore(t)

	survey := model.Survey{
		Title: "Draft survey",
		Questions: []model.Question{
			{ID: "temp_123abc", Type: model.TypeTextInput, Text: "Name?", Required: true},
		},
	}
	require.NoError(t, st.SaveDraft("churn", survey))

	loaded, err := st.LoadDraft("churn")
	require.NoError(t, err)
	assert.Equal(t, survey.Title, loaded.Title)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, "temp_123abc", loaded.Questions[0].ID)

	drafts, err := st.ListDrafts()
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "churn", drafts[0].Name)
	assert.Equal(t, "Draft survey", drafts[0].Title)

	// same name overwrites
	survey.Title = "Draft survey v2"
	require.NoError(t, st.SaveDraft("churn", survey))
	drafts, err = st.ListDrafts()
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Draft survey v2", drafts[0].Title)

	require.NoError(t, st.DeleteDraft("churn"))
	_, err = st.LoadDraft("churn")
	require.Error(t, err)
}
