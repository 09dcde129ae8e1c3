package rest

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/contacts"
)

type ContactsRepository struct {
	api *apiclient.Client
}

func NewContactsRepository(api *apiclient.Client) *ContactsRepository {
	return &ContactsRepository{api: api}
}

type revealRequest struct {
	JobseekerID string `json:"jobseeker_id"`
}

// revealResponse accepts the contact either at the top level or under "contact".
type revealResponse struct {
	contacts.Contact
	Nested *contacts.Contact `json:"contact,omitempty"`
}

type accessResponse struct {
	AccessList []contacts.Access `json:"access_list"`
}

func (r *ContactsRepository) Reveal(ctx context.Context, jobseekerID string) (contacts.Contact, error) {
	var out revealResponse
	if err := r.api.Post(ctx, "contacts/reveal", revealRequest{JobseekerID: jobseekerID}, &out); err != nil {
		return contacts.Contact{}, err
	}
	c := out.Contact
	if out.Nested != nil {
		c = *out.Nested
	}
	if c.JobseekerID == "" {
		c.JobseekerID = jobseekerID
	}
	return c, nil
}

func (r *ContactsRepository) MyAccess(ctx context.Context) ([]contacts.Access, error) {
	var out accessResponse
	if err := r.api.Get(ctx, "contacts/my-access", nil, &out); err != nil {
		return nil, err
	}
	return out.AccessList, nil
}
