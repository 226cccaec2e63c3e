//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"conferencehall/internal/database"
	"conferencehall/internal/domain"
)

// setupTestDB starts a PostgreSQL container and applies the migrations.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("conferencehall"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return db
}

type seed struct {
	eventID  string
	accepted []string
	rejected []string
	pending  string
	draft    string
}

func seedEvent(t *testing.T, db *sql.DB) seed {
	t.Helper()
	ctx := context.Background()
	exec := func(query string, args ...any) {
		_, err := db.ExecContext(ctx, query, args...)
		require.NoError(t, err)
	}

	teamID, eventID, userID, formatID := uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()
	exec(`INSERT INTO teams (id, name, slug) VALUES ($1, 'GDG Nantes', 'gdg')`, teamID)
	exec(`INSERT INTO users (id, name, email) VALUES ($1, 'Ada', 'ada@example.com')`, userID)
	exec(`INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, 'OWNER')`, teamID, userID)
	exec(`INSERT INTO events (id, team_id, name, slug, type) VALUES ($1, $2, 'DevFest Nantes', 'devfest', 'CONFERENCE')`, eventID, teamID)
	exec(`INSERT INTO event_formats (id, event_id, name) VALUES ($1, $2, 'Talk')`, formatID, eventID)

	s := seed{eventID: eventID}
	add := func(title string, status domain.DeliberationStatus, draft bool) string {
		id := uuid.NewString()
		exec(`INSERT INTO proposals (id, event_id, title, is_draft, deliberation_status) VALUES ($1, $2, $3, $4, $5)`,
			id, eventID, title, draft, string(status))
		exec(`INSERT INTO proposals_speakers (proposal_id, user_id) VALUES ($1, $2)`, id, userID)
		exec(`INSERT INTO proposals_formats (proposal_id, format_id) VALUES ($1, $2)`, id, formatID)
		return id
	}
	s.accepted = []string{add("Go", domain.DeliberationAccepted, false), add("Rust", domain.DeliberationAccepted, false)}
	s.rejected = []string{add("Cobol", domain.DeliberationRejected, false)}
	s.pending = add("Zig", domain.DeliberationPending, false)
	s.draft = add("Draft", domain.DeliberationAccepted, true)
	return s
}

func TestIntegration_ResultsWorkflow(t *testing.T) {
	db := setupTestDB(t)
	s := seedEvent(t, db)
	ctx := context.Background()

	event, err := NewEventRepository(db).GetBySlugs(ctx, "gdg", "devfest")
	require.NoError(t, err)
	assert.Equal(t, s.eventID, event.ID)

	repo := NewProposalRepository(db)

	stats := func() *domain.ResultsStatistics {
		counts, err := repo.CountByStatus(ctx, s.eventID)
		require.NoError(t, err)
		return domain.NewResultsStatistics(counts)
	}
	before := stats()
	assert.Equal(t, domain.DeliberationStatistics{Total: 4, Pending: 1, Accepted: 2, Rejected: 1}, before.Deliberation)

	published, err := repo.Publish(ctx, s.eventID, s.accepted[0])
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationPending, published.ConfirmationStatus)
	assert.Equal(t, []string{"Talk"}, published.Formats)
	require.Len(t, published.Speakers, 1)
	assert.Equal(t, "ada@example.com", published.Speakers[0].Email)

	_, err = repo.Publish(ctx, s.eventID, s.accepted[0])
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)
	_, err = repo.Publish(ctx, s.eventID, s.pending)
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)
	_, err = repo.Publish(ctx, s.eventID, s.draft)
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)
	_, err = repo.Publish(ctx, s.eventID, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrProposalNotFound)

	rest, err := repo.PublishByDeliberation(ctx, s.eventID, domain.DeliberationAccepted)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, s.accepted[1], rest[0].ID)

	after := stats()
	assert.Equal(t, domain.PublicationStatistics{Published: 2}, after.Accepted)
	assert.Equal(t, domain.PublicationStatistics{NotPublished: 1}, after.Rejected)
	assert.Equal(t, 2, after.Confirmations.Pending)

	n, err := repo.ResetPublication(ctx, s.eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, before, stats())
}

func TestIntegration_ConcurrentPublishAllClaimsOnce(t *testing.T) {
	db := setupTestDB(t)
	s := seedEvent(t, db)
	repo := NewProposalRepository(db)

	var (
		mu    sync.Mutex
		total int
		wg    sync.WaitGroup
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			published, err := repo.PublishByDeliberation(context.Background(), s.eventID, domain.DeliberationRejected)
			assert.NoError(t, err)
			mu.Lock()
			total += len(published)
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, len(s.rejected), total)
}

func TestIntegration_EmailOutbox(t *testing.T) {
	db := setupTestDB(t)
	s := seedEvent(t, db)
	ctx := context.Background()
	outbox := NewEmailOutboxRepository(db)

	for _, id := range s.accepted {
		require.NoError(t, outbox.Enqueue(ctx, &domain.EmailMessage{
			ID:         uuid.NewString(),
			ProposalID: id,
			Template:   domain.TemplateProposalAccepted,
			From:       "DevFest Nantes <no-reply@conference-hall.io>",
			To:         []string{"ada@example.com", "bob@example.com"},
			Subject:    "accepted",
		}))
	}

	first, err := outbox.ClaimBatch(ctx, 1, time.Minute)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, []string{"ada@example.com", "bob@example.com"}, first[0].To)
	assert.Equal(t, 1, first[0].Attempts)

	second, err := outbox.ClaimBatch(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	empty, err := outbox.ClaimBatch(ctx, 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, outbox.MarkSent(ctx, first[0].ID))
	require.NoError(t, outbox.MarkFailed(ctx, second[0].ID, "throttled", true))

	retried, err := outbox.ClaimBatch(ctx, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, retried, 1)
	assert.Equal(t, second[0].ID, retried[0].ID)
	assert.Equal(t, 2, retried[0].Attempts)
}
