package services

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

const auditSchema = `CREATE TABLE IF NOT EXISTS audit_logs (
	id timeuuid,
	user_id text,
	user_email text,
	action text,
	resource text,
	resource_id text,
	new_value text,
	ip_address text,
	success boolean,
	timestamp timestamp,
	PRIMARY KEY ((user_id), id)
) WITH CLUSTERING ORDER BY (id DESC)`

// ScyllaAuditor écrit les actions des employés dans audit_logs, en arrière-plan
type ScyllaAuditor struct {
	session *gocql.Session
	log     logrus.FieldLogger
}

func NewScyllaAuditor(session *gocql.Session, log logrus.FieldLogger) (*ScyllaAuditor, error) {
	if err := session.Query(auditSchema).Exec(); err != nil {
		return nil, errors.Wrap(err, "création table audit_logs")
	}
	return &ScyllaAuditor{session: session, log: log}, nil
}

func (a *ScyllaAuditor) Record(ctx context.Context, entry models.AuditLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	go func() {
		err := a.session.Query(
			`INSERT INTO audit_logs (id, user_id, user_email, action, resource, resource_id, new_value, ip_address, success, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			gocql.TimeUUID(), entry.UserID, entry.UserEmail, entry.Action, entry.Resource,
			entry.ResourceID, entry.NewValue, entry.IPAddress, entry.Success, entry.Timestamp,
		).WithContext(context.WithoutCancel(ctx)).Exec()
		if err != nil {
			a.log.WithError(err).WithField("action", entry.Action).Error("❌ Erreur enregistrement log audit")
		}
	}()
}

// LogAuditor sans Scylla, l'audit part dans les logs
type LogAuditor struct {
	Log logrus.FieldLogger
}

func (a LogAuditor) Record(_ context.Context, entry models.AuditLog) {
	a.Log.WithFields(logrus.Fields{
		"user_id":     entry.UserID,
		"action":      entry.Action,
		"resource":    entry.Resource,
		"resource_id": entry.ResourceID,
		"success":     entry.Success,
		"ip":          entry.IPAddress,
	}).Info("📝 Audit")
}

type NopAuditor struct{}

func (NopAuditor) Record(context.Context, models.AuditLog) {}
