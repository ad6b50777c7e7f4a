package conciergeRepository

const (
	queryInsertConversationTurn = `
		INSERT INTO conversation_turns (
			id, session_id, message, intent, reply,
			live_lookup, created_at
		) VALUES (
			:id, :session_id, :message, :intent, :reply,
			:live_lookup, :created_at
		)
	`

	queryGetConversationBySessionID = `
		SELECT
			id, session_id, message, intent, reply,
			live_lookup, created_at
		FROM conversation_turns
		WHERE session_id = :session_id
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryDeleteConversationsOlderThan = `
		DELETE FROM conversation_turns
		WHERE created_at < :cutoff_time
	`
)
