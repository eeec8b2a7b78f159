// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/passly/internal/adapter"
	"github.com/MKhiriev/passly/internal/logger"
	"github.com/MKhiriev/passly/internal/validators"
	"github.com/MKhiriev/passly/models"
)

// itemEditor implements ItemEditor. gen identifies the current editing
// context; responses that return under an older gen are discarded.
type itemEditor struct {
	adapter    adapter.ServerAdapter
	session    SessionManager
	directory  VaultDirectory
	disclosure SecretDisclosure
	validator  validators.Validator
	logger     *logger.Logger

	mu          sync.Mutex
	gen         uint64
	open        bool
	mode        models.EditorMode
	itemID      string
	accountName string
	draft       models.ItemDraft
}

// NewItemEditor returns an ItemEditor that closes itself whenever the
// session leaves Authenticated.
func NewItemEditor(serverAdapter adapter.ServerAdapter, session SessionManager, directory VaultDirectory, disclosure SecretDisclosure, logger *logger.Logger) ItemEditor {
	e := &itemEditor{
		adapter:    serverAdapter,
		session:    session,
		directory:  directory,
		disclosure: disclosure,
		validator:  validators.NewVaultItemValidator(),
		logger:     logger,
	}

	session.Subscribe(func(state models.SessionState) {
		if state != models.SessionAuthenticated {
			e.Cancel()
		}
	})

	return e
}

func (e *itemEditor) OpenForCreate() models.ItemDraft {
	e.mu.Lock()
	e.gen++
	e.open = true
	e.mode = models.EditorCreate
	e.itemID = ""
	e.accountName = ""
	e.draft = models.ItemDraft{Password: models.Unchanged()}
	draft := e.draft
	e.mu.Unlock()

	e.disclosure.Release()
	return draft
}

// OpenForEdit prefills the draft from summary. The password starts out
// Unchanged and nothing is fetched.
func (e *itemEditor) OpenForEdit(summary models.VaultItemSummary) models.ItemDraft {
	e.mu.Lock()
	e.gen++
	e.open = true
	e.mode = models.EditorEdit
	e.itemID = summary.ID
	e.accountName = summary.AccountName
	e.draft = models.DraftFromSummary(summary)
	draft := e.draft
	e.mu.Unlock()

	e.disclosure.Bind(summary.ID)
	return draft
}

func (e *itemEditor) Submit(ctx context.Context, draft models.ItemDraft) (models.VaultItemSummary, error) {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return models.VaultItemSummary{}, ErrEditorClosed
	}
	e.draft = draft
	gen, mode, itemID := e.gen, e.mode, e.itemID
	e.mu.Unlock()

	var err error
	if mode == models.EditorCreate {
		err = e.validator.Validate(ctx, draft)
	} else {
		// blank password means Unchanged on edit
		err = e.validator.Validate(ctx, draft, validators.FieldAccountName, validators.FieldURL, validators.FieldLogin)
	}
	if err != nil {
		return models.VaultItemSummary{}, mapValidationError(err)
	}

	if err = e.session.Authorize(ctx); err != nil {
		return models.VaultItemSummary{}, err
	}

	var saved models.VaultItemSummary
	if mode == models.EditorCreate {
		saved, err = e.adapter.CreateItem(ctx, draft.ToCreateRequest())
	} else {
		saved, err = e.adapter.UpdateItem(ctx, itemID, draft.ToUpdateRequest())
	}

	if err = e.settle(ctx, gen, "save", err); err != nil {
		return models.VaultItemSummary{}, err
	}

	e.logger.Debug().Str("item_id", saved.ID).Msg("item saved")
	return saved, nil
}

func (e *itemEditor) Remove(ctx context.Context, confirmed bool) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	if e.mode != models.EditorEdit {
		e.mu.Unlock()
		return ErrNothingToDelete
	}
	gen, itemID, accountName := e.gen, e.itemID, e.accountName
	e.mu.Unlock()

	if !confirmed {
		return &ConfirmationRequiredError{ItemID: itemID, AccountName: accountName}
	}

	if err := e.session.Authorize(ctx); err != nil {
		return err
	}

	err := e.adapter.DeleteItem(ctx, itemID)
	if err = e.settle(ctx, gen, "delete", err); err != nil {
		return err
	}

	e.logger.Debug().Str("item_id", itemID).Msg("item deleted")
	return nil
}

// settle applies the outcome of a write issued under gen. A failure keeps
// the editor open; a success closes it and refreshes the directory.
func (e *itemEditor) settle(ctx context.Context, gen uint64, op string, err error) error {
	e.mu.Lock()
	stale := gen != e.gen || !e.open
	if err == nil && !stale {
		e.closeLocked()
	}
	e.mu.Unlock()

	if stale {
		if err == nil {
			e.refresh(ctx)
		}
		return ErrStaleResponse
	}

	if err != nil {
		mapped := mapAdapterError(op, err)
		if errors.Is(mapped, ErrAuthorizationLost) {
			e.session.Invalidate(ctx)
		}
		return mapped
	}

	e.disclosure.Release()
	e.refresh(ctx)
	return nil
}

func (e *itemEditor) refresh(ctx context.Context) {
	if _, err := e.directory.Refresh(ctx); err != nil && !errors.Is(err, ErrStaleResponse) {
		e.logger.Warn().Err(err).Msg("refreshing directory after write failed")
	}
}

func (e *itemEditor) Cancel() {
	e.mu.Lock()
	e.closeLocked()
	e.mu.Unlock()

	e.disclosure.Release()
}

func (e *itemEditor) closeLocked() {
	e.gen++
	e.open = false
	e.mode = 0
	e.itemID = ""
	e.accountName = ""
	e.draft = models.ItemDraft{}
}

func (e *itemEditor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *itemEditor) Mode() models.EditorMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *itemEditor) ItemID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itemID
}

func (e *itemEditor) Draft() models.ItemDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}
