package admin

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	created   []string
	createErr error
	deleted   []int64
	deleteErr error
	purged    int64
	listed    []models.PageParams
	page      models.Page[models.User]
}

func (f *fakeUsers) CreateUser(_ context.Context, username, _ string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, username)
	return &models.User{ID: int64(len(f.created)), UserName: username, IsActive: true}, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUsers) DeleteAll(context.Context) (int64, error) { return f.purged, nil }

func (f *fakeUsers) ListUsers(_ context.Context, p models.PageParams) (models.Page[models.User], error) {
	f.listed = append(f.listed, p)
	return f.page, nil
}

func stubPassword(t *testing.T, pw string) *[]byte {
	t.Helper()
	var handed []byte
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		handed = []byte(pw)
		return handed, nil
	}
	t.Cleanup(func() { readPassword = orig })
	return &handed
}

func newTestApp() (*App, *fakeUsers, *bytes.Buffer) {
	f := &fakeUsers{}
	var out bytes.Buffer
	return NewApp(f, &out), f, &out
}

func TestCreateUser(t *testing.T) {
	a, f, out := newTestApp()
	handed := stubPassword(t, "password1")

	err := a.Execute(context.Background(), []string{"create-user", "-username", "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, f.created)
	assert.Contains(t, out.String(), `created user "alice" with id 1`)
	assert.Equal(t, make([]byte, len("password1")), *handed, "password buffer must be wiped")
}

func TestCreateUser_Validation(t *testing.T) {
	a, f, _ := newTestApp()
	stubPassword(t, "short")

	err := a.Execute(context.Background(), []string{"create-user", "-username=al"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, err.Error(), "username must be at least 3 characters")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
	assert.Empty(t, f.created)
}

func TestCreateUser_Conflict(t *testing.T) {
	a, f, _ := newTestApp()
	f.createErr = common.ErrorConflict
	stubPassword(t, "password1")

	err := a.Execute(context.Background(), []string{"create-user", "-username", "alice"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestCreateUser_PasswordReadError(t *testing.T) {
	a, f, _ := newTestApp()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	t.Cleanup(func() { readPassword = orig })

	err := a.Execute(context.Background(), []string{"create-user", "-username", "alice"})
	require.Error(t, err)
	assert.Empty(t, f.created)
}

func TestDeleteUser(t *testing.T) {
	a, f, out := newTestApp()

	require.NoError(t, a.Execute(context.Background(), []string{"delete-user", "-id", "7"}))
	assert.Equal(t, []int64{7}, f.deleted)
	assert.Contains(t, out.String(), "deleted user 7")

	assert.ErrorIs(t, a.Execute(context.Background(), []string{"delete-user"}), ErrUsage)
	assert.ErrorIs(t, a.Execute(context.Background(), []string{"delete-user", "-id", "x"}), ErrUsage)

	f.deleteErr = common.ErrorNotFound
	assert.ErrorIs(t, a.Execute(context.Background(), []string{"delete-user", "-id", "8"}), common.ErrorNotFound)
}

func TestPurge(t *testing.T) {
	a, f, out := newTestApp()
	f.purged = 3

	require.NoError(t, a.Execute(context.Background(), []string{"purge"}))
	assert.Contains(t, out.String(), "deleted 3 users")
}

func TestList(t *testing.T) {
	a, f, out := newTestApp()
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	f.page = models.NewPage([]models.User{
		{ID: 1, UserName: "alice", IsActive: true, CreatedAt: created},
		{ID: 2, UserName: "bobby", IsActive: false, CreatedAt: created},
	}, models.PageParams{Page: 2, Limit: 2}, 5)

	require.NoError(t, a.Execute(context.Background(), []string{"list", "-page", "2", "-limit", "2"}))
	assert.Equal(t, []models.PageParams{{Page: 2, Limit: 2}}, f.listed)

	s := out.String()
	assert.Contains(t, s, "USERNAME")
	assert.Contains(t, s, "alice")
	assert.Contains(t, s, "2026-03-04 05:06:07")
	assert.Contains(t, s, "page 2 of 3, 5 users total")
}

func TestList_Defaults(t *testing.T) {
	a, f, _ := newTestApp()

	require.NoError(t, a.Execute(context.Background(), []string{"list"}))
	assert.Equal(t, []models.PageParams{{Page: 1, Limit: 25}}, f.listed)
}

func TestExecute_UnknownAndHelp(t *testing.T) {
	a, _, out := newTestApp()

	assert.ErrorIs(t, a.Execute(context.Background(), []string{"frobnicate"}), ErrUsage)
	assert.ErrorIs(t, a.Execute(context.Background(), nil), ErrUsage)
	assert.NoError(t, a.Execute(context.Background(), []string{"help"}))
	assert.Contains(t, out.String(), "create-user -username NAME")
}
