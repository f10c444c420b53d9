package core

import (
	"context"
	"net/url"

	"jobtrack-client-go/internal/models"
)

// LoadContacts fetches one page of contacts and replaces the in-memory list
// and pagination state wholesale.
func (s *DataStore) LoadContacts(ctx context.Context, filters map[string]string, page, limit int) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceContacts)

	env, err := s.api.Get(ctx, "/contacts"+listQuery(filters, page, limit))
	if err != nil {
		s.finish(ResourceContacts, err)
		return err
	}

	var contacts []models.Contact
	if err := env.Decode("contacts", &contacts); err != nil {
		s.finish(ResourceContacts, err)
		return err
	}

	s.mu.Lock()
	s.contacts = contacts
	s.contactsPage = models.Pagination{
		CurrentPage: env.Int("currentPage"),
		TotalPages:  env.Int("numOfPages"),
		TotalItems:  env.Int("totalContacts"),
	}
	s.mu.Unlock()

	s.finish(ResourceContacts, nil)
	return nil
}

// GetContactByID fetches a single contact. Returns nil on any failure.
func (s *DataStore) GetContactByID(ctx context.Context, id string) *models.Contact {
	if s.gated() {
		return nil
	}
	s.begin(ResourceContacts)

	env, err := s.api.Get(ctx, "/contacts/"+url.PathEscape(id))
	if err != nil {
		s.finish(ResourceContacts, err)
		return nil
	}

	var contact models.Contact
	if err := env.Decode("contact", &contact); err != nil {
		s.finish(ResourceContacts, err)
		return nil
	}

	s.finish(ResourceContacts, nil)
	return &contact
}

// CreateContact creates a contact and prepends the server's copy to the
// loaded list.
func (s *DataStore) CreateContact(ctx context.Context, req models.CreateContactRequest) (*models.Contact, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}
	s.begin(ResourceContacts)

	env, err := s.api.Post(ctx, "/contacts", req)
	if err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}

	var contact models.Contact
	if err := env.Decode("contact", &contact); err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}

	s.mu.Lock()
	if len(s.contacts) > 0 {
		s.contacts = append([]models.Contact{contact}, s.contacts...)
	}
	s.mu.Unlock()

	s.finish(ResourceContacts, nil)
	return &contact, nil
}

// UpdateContact patches a contact and swaps the server's copy into the
// loaded list.
func (s *DataStore) UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}
	return s.contactCall(ctx, "PATCH", "/contacts/"+url.PathEscape(id), req)
}

// ToggleContactFavorite flips the favorite flag server-side.
func (s *DataStore) ToggleContactFavorite(ctx context.Context, id string) (*models.Contact, error) {
	if s.gated() {
		return nil, nil
	}
	return s.contactCall(ctx, "PATCH", "/contacts/"+url.PathEscape(id)+"/favorite", nil)
}

// AddInteraction logs a touch point on a contact's interaction history. The
// server returns the whole contact, which replaces the local copy.
func (s *DataStore) AddInteraction(ctx context.Context, contactID string, req models.InteractionRequest) (*models.Contact, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}
	return s.contactCall(ctx, "POST", "/contacts/"+url.PathEscape(contactID)+"/interactions", req)
}

// contactCall runs one contact write and swaps the returned contact into the
// loaded list.
func (s *DataStore) contactCall(ctx context.Context, method, path string, body any) (*models.Contact, error) {
	s.begin(ResourceContacts)

	env, err := s.api.Do(ctx, method, path, body)
	if err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}

	var contact models.Contact
	if err := env.Decode("contact", &contact); err != nil {
		s.finish(ResourceContacts, err)
		return nil, err
	}

	s.mu.Lock()
	for i, c := range s.contacts {
		if c.ID == contact.ID {
			s.contacts[i] = contact
			break
		}
	}
	s.mu.Unlock()

	s.finish(ResourceContacts, nil)
	return &contact, nil
}

// DeleteContact deletes a contact. Returns false on failure.
func (s *DataStore) DeleteContact(ctx context.Context, id string) bool {
	if s.gated() {
		return false
	}
	s.begin(ResourceContacts)

	if _, err := s.api.Delete(ctx, "/contacts/"+url.PathEscape(id)); err != nil {
		s.finish(ResourceContacts, err)
		return false
	}

	s.mu.Lock()
	for i, c := range s.contacts {
		if c.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.finish(ResourceContacts, nil)
	return true
}

// Contacts returns a copy of the in-memory contact list.
func (s *DataStore) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// ContactsPagination returns the paging state of the last successful contact
// load.
func (s *DataStore) ContactsPagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contactsPage
}
