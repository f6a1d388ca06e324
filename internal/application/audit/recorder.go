// Package audit records committed mutations in the append-only audit log.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

type actorKey struct{}

// WithActor attaches the acting user id to ctx.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the acting user id, "" when unknown.
func ActorFrom(ctx context.Context) string {
	s, _ := ctx.Value(actorKey{}).(string)
	return s
}

// Entry one change to record. Before/After are marshalled to JSON.
type Entry struct {
	CompanyID string
	Table     string
	Action    string
	Key       string
	Before    interface{}
	After     interface{}
}

// Recorder post-commit observer. It is called after a mutation succeeded;
// a failure to write the audit row is logged and never reported to the caller.
// A nil *Recorder records nothing.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder builds a recorder over repo.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{repo: repo, log: log, now: time.Now}
}

// Record appends e to the audit log.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &entity.AuditLog{
		CompanyID: e.CompanyID,
		UserID:    ActorFrom(ctx),
		TableName: e.Table,
		Action:    e.Action,
		KeyValue:  e.Key,
		OldValues: r.marshal(e.Before),
		NewValues: r.marshal(e.After),
		CreatedAt: r.now().UTC(),
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("table", e.Table).
			Str("action", e.Action).
			Str("key", e.Key).
			Msg("audit append failed")
	}
}

// Created, Modified and Deleted are shorthands for Record.
func (r *Recorder) Created(ctx context.Context, companyID, table, key string, after interface{}) {
	r.Record(ctx, Entry{CompanyID: companyID, Table: table, Action: entity.AuditCreated, Key: key, After: after})
}

func (r *Recorder) Modified(ctx context.Context, companyID, table, key string, before, after interface{}) {
	r.Record(ctx, Entry{CompanyID: companyID, Table: table, Action: entity.AuditModified, Key: key, Before: before, After: after})
}

func (r *Recorder) Deleted(ctx context.Context, companyID, table, key string, before interface{}) {
	r.Record(ctx, Entry{CompanyID: companyID, Table: table, Action: entity.AuditDeleted, Key: key, Before: before})
}

func (r *Recorder) marshal(v interface{}) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.log.Warn().Err(err).Msg("audit snapshot not serializable")
		return nil
	}
	return b
}
