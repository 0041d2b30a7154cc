// Package kvrepos implements the portal repositories over a kvstore.KV.
// Every collection is a JSON array stored under a single key.
package kvrepos

import (
	"context"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/core/material"
	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

type userRepository struct {
	store *kvstore.Appender
}

func NewUserRepository(store *kvstore.Appender) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) QueryAllCredentials(ctx context.Context) ([]user.Credential, error) {
	return kvstore.Load[user.Credential](ctx, repo.store, kvstore.UsersKey)
}

func (repo *userRepository) AppendCredential(ctx context.Context, cred user.Credential) error {
	_, err := kvstore.Append(ctx, repo.store, kvstore.UsersKey, cred)
	return err
}

type timetableRepository struct {
	store *kvstore.Appender
}

func NewTimetableRepository(store *kvstore.Appender) timetable.Repository {
	return &timetableRepository{store: store}
}

func (repo *timetableRepository) QueryEntries(ctx context.Context, yearGroup string) ([]timetable.Entry, error) {
	return kvstore.Load[timetable.Entry](ctx, repo.store, kvstore.TimetableKey(yearGroup))
}

func (repo *timetableRepository) AppendEntries(ctx context.Context, yearGroup string, entries ...timetable.Entry) error {
	_, err := kvstore.Append(ctx, repo.store, kvstore.TimetableKey(yearGroup), entries...)
	return err
}

type materialRepository struct {
	store *kvstore.Appender
}

func NewMaterialRepository(store *kvstore.Appender) material.Repository {
	return &materialRepository{store: store}
}

func (repo *materialRepository) QueryFiles(ctx context.Context, yearGroup string) ([]material.FileRecord, error) {
	return kvstore.Load[material.FileRecord](ctx, repo.store, kvstore.FilesKey(yearGroup))
}

func (repo *materialRepository) AppendFiles(ctx context.Context, yearGroup string, files ...material.FileRecord) error {
	_, err := kvstore.Append(ctx, repo.store, kvstore.FilesKey(yearGroup), files...)
	return err
}
