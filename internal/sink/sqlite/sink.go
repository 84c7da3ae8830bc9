// Package sqlite is a concrete engine.Sink backed by SQLite: each saved
// message and the final analysis are written through a batched,
// transactional writer into a conversations/messages schema.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Napageneral/cae/internal/db"
	"github.com/Napageneral/cae/internal/model"
)

// messageWriterConfig batches message inserts more aggressively than the
// teacher's warehouse default since a conversation's messages land in one
// short burst rather than trickling in from a sync job.
func messageWriterConfig() db.WriterConfig {
	return db.WriterConfig{BatchSize: 25, FlushInterval: 200 * time.Millisecond}
}

// Sink persists one conversation's worth of AnalyzeConversation output.
// It is not safe for concurrent use by multiple conversations; create one
// Sink per AnalyzeConversation call.
type Sink struct {
	db             *sql.DB
	writer         *db.Writer
	conversationID string
	selfName       string

	mu  sync.Mutex
	seq int
}

// New opens (creating if necessary) the SQLite database at path, runs
// pending migrations, inserts the conversation row if it is not already
// there, and returns a Sink for one conversation. An empty conversationID
// generates a fresh one.
func New(path, conversationID, selfName string) (*Sink, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if conversationID == "" {
		conversationID = uuid.New().String()
	}
	// Create the conversation row up front: message rows reference it, so
	// it must exist before the first message batch is flushed.
	if _, err := sqlDB.Exec(
		`INSERT INTO conversations (id, self_name, created_ts) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		conversationID, selfName, time.Now().Unix(),
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &Sink{
		db:             sqlDB,
		writer:         db.NewWriter(sqlDB, messageWriterConfig()),
		conversationID: conversationID,
		selfName:       selfName,
	}, nil
}

// ConversationID reports the id rows are being written under.
func (s *Sink) ConversationID() string {
	return s.conversationID
}

// Save implements engine.Sink.
func (s *Sink) Save(pm model.PersistedMessage) error {
	s.mu.Lock()
	seq := s.seq
	s.seq++
	s.mu.Unlock()

	var ts interface{}
	if pm.Message.Timestamp != nil {
		ts = pm.Message.Timestamp.UTC().Format(time.RFC3339)
	}
	isMedia := 0
	if pm.Message.IsMedia {
		isMedia = 1
	}
	return s.writer.Write(
		`INSERT INTO messages (
			id, conversation_id, seq, sender, text, timestamp, platform,
			is_media, sentiment_label, sentiment_confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), s.conversationID, seq,
		pm.Message.Sender, pm.Message.Text, ts, string(pm.Message.Platform),
		isMedia, string(pm.Sentiment.Label), pm.Sentiment.Confidence,
	)
}

// SaveAnalysis implements engine.Sink. It flushes and closes the batched
// writer so every pending message row is written, then fills the
// conversation row (created by New) with the final analysis.
func (s *Sink) SaveAnalysis(analysis model.ChatAnalysis) error {
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("flush message batch: %w", err)
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	var periodStart, periodEnd interface{}
	if analysis.Period != nil {
		periodStart = analysis.Period.Start.UTC().Format(time.RFC3339)
		periodEnd = analysis.Period.End.UTC().Format(time.RFC3339)
	}

	_, err = s.db.Exec(
		`INSERT INTO conversations (
			id, self_name, format_detected, total_messages, period_start,
			period_end, overall_health, analysis_json, created_ts
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			self_name=excluded.self_name,
			format_detected=excluded.format_detected,
			total_messages=excluded.total_messages,
			period_start=excluded.period_start,
			period_end=excluded.period_end,
			overall_health=excluded.overall_health,
			analysis_json=excluded.analysis_json`,
		s.conversationID, s.selfName, analysis.FormatDetected, analysis.TotalMessages,
		periodStart, periodEnd, string(analysis.RedFlags.OverallHealth), string(analysisJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

// Close releases the underlying database handle. Safe to call after
// SaveAnalysis has already closed the writer.
func (s *Sink) Close() error {
	return s.db.Close()
}
