package conciergeRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ConciergeGolang/internal/entity"
	contextPkg "ConciergeGolang/pkg/context"
)

type ConversationTurnDB struct {
	ID         sql.NullString `db:"id"`
	SessionID  sql.NullString `db:"session_id"`
	Message    sql.NullString `db:"message"`
	Intent     sql.NullString `db:"intent"`
	Reply      sql.NullString `db:"reply"`
	LiveLookup sql.NullBool   `db:"live_lookup"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *conversationRepository) Insert(ctx context.Context, turn entity.ConversationTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":          turn.ID,
		"session_id":  turn.SessionID,
		"message":     turn.Message,
		"intent":      turn.Intent,
		"reply":       turn.Reply,
		"live_lookup": turn.LiveLookup,
		"created_at":  turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryInsertConversationTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Insert conversation turn named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when inserting conversation turn")
		return err
	}

	return nil
}

func (r *conversationRepository) GetBySessionID(ctx context.Context, sessionID string, limit int) ([]entity.ConversationTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if limit <= 0 {
		limit = 50
	}

	argsKV := map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
	}

	query, args, err := sqlx.Named(queryGetConversationBySessionID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBySessionID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []ConversationTurnDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBySessionID execution err")
		return nil, err
	}

	turns := make([]entity.ConversationTurn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, r.makeConversationTurn(row))
	}

	return turns, nil
}

func (r *conversationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"cutoff_time": cutoff,
	}

	query, args, err := sqlx.Named(queryDeleteConversationsOlderThan, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteOlderThan named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteOlderThan execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err == nil {
		r.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"rows_affected": rowsAffected,
		}).Info("Cleaned up old conversation turns")
	}

	return err
}

func (r *conversationRepository) makeConversationTurn(row ConversationTurnDB) entity.ConversationTurn {
	return entity.ConversationTurn{
		ID:         row.ID.String,
		SessionID:  row.SessionID.String,
		Message:    row.Message.String,
		Intent:     row.Intent.String,
		Reply:      row.Reply.String,
		LiveLookup: row.LiveLookup.Bool,
		CreatedAt:  row.CreatedAt,
	}
}
