package sheetsadapter

import (
	"context"
	"strings"

	"musubime/contexts/identity-access/auth-service/ports"
	"musubime/internal/platform/rowstore"
	"musubime/internal/shared/sheetschema"
)

// CredentialStore reads influencer passwords from the campaigns sheet. The
// first row with a password wins when an influencer owns several rows.
type CredentialStore struct {
	Store *rowstore.Store
}

func (c CredentialStore) FindCredential(ctx context.Context, login string) (ports.Credential, bool, error) {
	rows, err := c.Store.FetchColumns(ctx, rowstore.Query{
		Sheet: sheetschema.CampaignsSheet,
		Columns: []string{
			sheetschema.InfluencerID,
			sheetschema.InfluencerName,
			sheetschema.ContactEmail,
			sheetschema.Password,
		},
	})
	if err != nil {
		return ports.Credential{}, false, err
	}
	login = strings.TrimSpace(login)
	for _, row := range rows {
		id := strings.TrimSpace(row.Get(sheetschema.InfluencerID))
		email := strings.TrimSpace(row.Get(sheetschema.ContactEmail))
		if id == "" || (id != login && !strings.EqualFold(email, login)) {
			continue
		}
		password := strings.TrimSpace(row.Get(sheetschema.Password))
		if password == "" {
			continue
		}
		return ports.Credential{
			ID:       id,
			Name:     strings.TrimSpace(row.Get(sheetschema.InfluencerName)),
			Email:    email,
			Password: password,
		}, true, nil
	}
	return ports.Credential{}, false, nil
}
