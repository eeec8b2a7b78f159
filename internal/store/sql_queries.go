// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	"github.com/MKhiriev/passly/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (id, username, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, username, password_hash, created_at, updated_at;`

	findUserByUsername = `SELECT id, username, password_hash, created_at, updated_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT id, username, password_hash, created_at, updated_at
    FROM users
    WHERE id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`

	createVaultItem = `INSERT INTO vault_items (id, user_id, account_name, url, login, password_encrypted, password_nonce)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING created_at, updated_at;`

	deleteVaultItem = `DELETE FROM vault_items WHERE id = $1 AND user_id = $2;`

	revokeToken = `INSERT INTO revoked_tokens (jti, user_id, expires_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (jti) DO NOTHING;`

	isTokenRevoked = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1);`

	purgeExpiredTokens = `DELETE FROM revoked_tokens WHERE expires_at < $1;`
)

var vaultItemColumns = []string{
	"id", "user_id", "account_name", "url", "login",
	"password_encrypted", "password_nonce", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// likeEscaper makes user text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListItemsQuery selects the owner's items, optionally filtered by a
// case-insensitive substring of the account name.
func buildListItemsQuery(q models.VaultQuery) (string, []any, error) {
	b := psql.Select(vaultItemColumns...).
		From("vault_items").
		Where(sq.Eq{"user_id": q.UserID})

	if text := strings.TrimSpace(q.Text); text != "" {
		b = b.Where(sq.ILike{"account_name": "%" + likeEscaper.Replace(text) + "%"})
	}

	return b.OrderBy("LOWER(account_name) ASC", "id ASC").ToSql()
}

func buildGetItemQuery(userID, itemID string) (string, []any, error) {
	return psql.Select(vaultItemColumns...).
		From("vault_items").
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		ToSql()
}

// buildUpdateItemQuery sets only the fields present in patch and always
// bumps updated_at.
func buildUpdateItemQuery(userID, itemID string, patch ItemPatch, now time.Time) (string, []any, error) {
	b := psql.Update("vault_items").Set("updated_at", now)

	if patch.AccountName != nil {
		b = b.Set("account_name", *patch.AccountName)
	}
	if patch.URL != nil {
		b = b.Set("url", nullable(*patch.URL))
	}
	if patch.Login != nil {
		b = b.Set("login", nullable(*patch.Login))
	}
	if patch.PasswordEncrypted != nil && patch.PasswordNonce != nil {
		b = b.Set("password_encrypted", *patch.PasswordEncrypted).
			Set("password_nonce", *patch.PasswordNonce)
	}

	return b.Where(sq.Eq{"id": itemID, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(vaultItemColumns, ", ")).
		ToSql()
}

// nullable stores an empty optional column as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
