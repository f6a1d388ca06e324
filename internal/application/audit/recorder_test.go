package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

type fakeAuditRepo struct {
	entries []*entity.AuditLog
	err     error
}

func (f *fakeAuditRepo) Append(_ context.Context, e *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func TestRecord_WritesSnapshotsAndActor(t *testing.T) {
	repo := &fakeAuditRepo{}
	r := NewRecorder(repo, nil)

	ctx := WithActor(context.Background(), "user-1")
	r.Modified(ctx, "company-1", "items", "item-1",
		map[string]string{"name": "Chair"},
		map[string]string{"name": "Desk"})

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, "company-1", e.CompanyID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, "items", e.TableName)
	assert.Equal(t, entity.AuditModified, e.Action)
	assert.Equal(t, "item-1", e.KeyValue)
	assert.False(t, e.CreatedAt.IsZero())

	var before, after map[string]string
	require.NoError(t, json.Unmarshal(e.OldValues, &before))
	require.NoError(t, json.Unmarshal(e.NewValues, &after))
	assert.Equal(t, "Chair", before["name"])
	assert.Equal(t, "Desk", after["name"])
}

func TestRecord_CreatedHasNoBefore(t *testing.T) {
	repo := &fakeAuditRepo{}
	NewRecorder(repo, nil).Created(context.Background(), "c", "roles", "r", map[string]int{"a": 1})

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].OldValues)
	assert.Empty(t, repo.entries[0].UserID)
}

func TestRecord_FailureIsSwallowed(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("disk full")}
	assert.NotPanics(t, func() {
		NewRecorder(repo, nil).Deleted(context.Background(), "c", "users", "u", nil)
	})
}

func TestRecord_NilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Created(context.Background(), "c", "t", "k", nil)
	})
}
