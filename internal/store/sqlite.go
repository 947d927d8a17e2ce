package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Tharunnsai/AuntMay/internal/quizgen"
	"github.com/Tharunnsai/AuntMay/internal/synthesis"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLite is a Store persisted to a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// Open creates a SQLite store at dsn, applying recommended pragmas and
// creating the tables if needed.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Quizzes() QuizRepo      { return &sqlQuizRepo{db: s.db} }
func (s *SQLite) Research() ResearchRepo { return &sqlResearchRepo{db: s.db} }
func (s *SQLite) Attempts() AttemptRepo  { return &sqlAttemptRepo{db: s.db} }

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

// applyPragmas configures SQLite for single-process use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			created_at TEXT NOT NULL,
			questions TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS research (
			quiz_id TEXT PRIMARY KEY REFERENCES quizzes(id) ON DELETE CASCADE,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id TEXT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
			topic TEXT NOT NULL,
			taken_at TEXT NOT NULL,
			score INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:30], err)
		}
	}
	return nil
}

type sqlQuizRepo struct {
	db *sql.DB
}

func (r *sqlQuizRepo) Put(ctx context.Context, bundle *QuizBundle) error {
	questions, err := json.Marshal(bundle.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, topic, difficulty, created_at, questions)
		 VALUES (?, ?, ?, ?, ?)`,
		bundle.ID.String(), bundle.Topic, bundle.Difficulty,
		bundle.CreatedAt.UTC().Format(time.RFC3339Nano), string(questions))
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *sqlQuizRepo) Get(ctx context.Context, id uuid.UUID) (*QuizBundle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT topic, difficulty, created_at, questions FROM quizzes WHERE id = ?`,
		id.String())
	return scanQuiz(row, id)
}

func (r *sqlQuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlQuizRepo) List(ctx context.Context) ([]*QuizBundle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, topic, difficulty, created_at, questions
		 FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []*QuizBundle
	for rows.Next() {
		var (
			idStr, topic, difficulty, createdAt, questions string
		)
		if err := rows.Scan(&idStr, &topic, &difficulty, &createdAt, &questions); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		bundle, err := buildQuiz(idStr, topic, difficulty, createdAt, questions)
		if err != nil {
			return nil, err
		}
		out = append(out, bundle)
	}
	return out, rows.Err()
}

func scanQuiz(row *sql.Row, id uuid.UUID) (*QuizBundle, error) {
	var topic, difficulty, createdAt, questions string
	err := row.Scan(&topic, &difficulty, &createdAt, &questions)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	return buildQuiz(id.String(), topic, difficulty, createdAt, questions)
}

func buildQuiz(idStr, topic, difficulty, createdAt, questions string) (*QuizBundle, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse quiz id: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	var qs []quizgen.Question
	if err := json.Unmarshal([]byte(questions), &qs); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return &QuizBundle{
		ID:         id,
		Topic:      topic,
		Difficulty: difficulty,
		CreatedAt:  ts,
		Questions:  qs,
	}, nil
}

type sqlResearchRepo struct {
	db *sql.DB
}

func (r *sqlResearchRepo) Put(ctx context.Context, quizID uuid.UUID, tr *synthesis.TopicResearch) error {
	data, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("marshal research: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO research (quiz_id, data) VALUES (?, ?)`,
		quizID.String(), string(data))
	if err != nil {
		return fmt.Errorf("insert research: %w", err)
	}
	return nil
}

func (r *sqlResearchRepo) Get(ctx context.Context, quizID uuid.UUID) (*synthesis.TopicResearch, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM research WHERE quiz_id = ?`, quizID.String()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get research: %w", err)
	}
	var tr synthesis.TopicResearch
	if err := json.Unmarshal([]byte(data), &tr); err != nil {
		return nil, fmt.Errorf("unmarshal research: %w", err)
	}
	return &tr, nil
}

type sqlAttemptRepo struct {
	db *sql.DB
}

func (r *sqlAttemptRepo) Record(ctx context.Context, attempt Attempt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (quiz_id, topic, taken_at, score) VALUES (?, ?, ?, ?)`,
		attempt.QuizID.String(), attempt.Topic,
		attempt.TakenAt.UTC().Format(time.RFC3339Nano), attempt.Score)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (r *sqlAttemptRepo) List(ctx context.Context) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT quiz_id, topic, taken_at, score FROM attempts ORDER BY taken_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			idStr, topic, takenAt string
			score                 int
		)
		if err := rows.Scan(&idStr, &topic, &takenAt, &score); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse attempt quiz id: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, takenAt)
		if err != nil {
			return nil, fmt.Errorf("parse taken_at: %w", err)
		}
		out = append(out, Attempt{QuizID: id, Topic: topic, TakenAt: ts, Score: score})
	}
	return out, rows.Err()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. AUNTMAY_DB environment variable
// 2. $XDG_DATA_HOME/auntmay/auntmay.db
// 3. ~/.local/share/auntmay/auntmay.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("AUNTMAY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "auntmay", "auntmay.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

var _ Store = (*SQLite)(nil)
