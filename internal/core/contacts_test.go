package core

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-client-go/internal/models"
)

const contactsPageOne = `{
	"contacts": [
		{"id":"c1","name":"Sam Rivera","company":"Acme","favorite":false},
		{"id":"c2","name":"Lee Chen","company":"Globex","favorite":true}
	],
	"currentPage": 1,
	"numOfPages": 1,
	"totalContacts": 2
}`

func TestDataStore_LoadContacts_ReplacesListAndPagination(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contacts", r.URL.Path)
		w.Write([]byte(contactsPageOne))
	})

	require.NoError(t, store.LoadContacts(context.Background(), nil, 0, 0))

	contacts := store.Contacts()
	require.Len(t, contacts, 2)
	assert.Equal(t, "Sam Rivera", contacts[0].Name)
	assert.Equal(t, 2, store.ContactsPagination().TotalItems)
}

func TestDataStore_ToggleContactFavorite(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			require.Equal(t, "/contacts/c1/favorite", r.URL.Path)
			w.Write([]byte(`{"contact":{"id":"c1","name":"Sam Rivera","company":"Acme","favorite":true}}`))
			return
		}
		w.Write([]byte(contactsPageOne))
	})

	require.NoError(t, store.LoadContacts(context.Background(), nil, 0, 0))

	contact, err := store.ToggleContactFavorite(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, contact.Favorite)
	assert.True(t, store.Contacts()[0].Favorite)
}

func TestDataStore_AddInteraction_ReplacesContact(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.Equal(t, "/contacts/c2/interactions", r.URL.Path)
			w.Write([]byte(`{"contact":{"id":"c2","name":"Lee Chen","favorite":true,
				"interactionHistory":[{"id":"x1","date":"2026-08-20T09:00:00Z","interactionType":"call"}]}}`))
			return
		}
		w.Write([]byte(contactsPageOne))
	})

	require.NoError(t, store.LoadContacts(context.Background(), nil, 0, 0))

	contact, err := store.AddInteraction(context.Background(), "c2", models.InteractionRequest{
		Date:            mustTime(t, "2026-08-20T09:00:00Z"),
		InteractionType: "call",
	})
	require.NoError(t, err)
	require.Len(t, contact.InteractionHistory, 1)
	assert.Len(t, store.Contacts()[1].InteractionHistory, 1)
}

func TestDataStore_UpdateContact_FailureLeavesListUnchanged(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"invalid email address"}`))
			return
		}
		w.Write([]byte(contactsPageOne))
	})

	require.NoError(t, store.LoadContacts(context.Background(), nil, 0, 0))

	email := "sam@acme.example"
	_, err := store.UpdateContact(context.Background(), "c1", models.UpdateContactRequest{Email: &email})
	require.Error(t, err)

	assert.Empty(t, store.Contacts()[0].Email)
	assert.Equal(t, "invalid email address", store.ErrFor(ResourceContacts))
}

func TestDataStore_DeleteContact_RemovesFromList(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{"message":"contact removed"}`))
			return
		}
		w.Write([]byte(contactsPageOne))
	})

	require.NoError(t, store.LoadContacts(context.Background(), nil, 0, 0))
	require.True(t, store.DeleteContact(context.Background(), "c1"))

	contacts := store.Contacts()
	require.Len(t, contacts, 1)
	assert.Equal(t, "c2", contacts[0].ID)
}
