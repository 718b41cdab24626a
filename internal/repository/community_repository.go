package repository

import (
	"context"
	"database/sql"
	"errors"

	"diary-rooms/internal/database"
	"diary-rooms/internal/domain/community"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAlreadyMember = errors.New("already a member")
	ErrNotMember     = errors.New("not a member")
)

type CommunityRepository interface {
	ListDefault(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
	ListJoined(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (community.Community, error)
	Create(ctx context.Context, c community.Community) (community.Community, error)
	JoinedCommunityIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Join(ctx context.Context, communityID, userID uuid.UUID) error
	Leave(ctx context.Context, communityID, userID uuid.UUID) error
	Switch(ctx context.Context, joinID, leaveID, userID uuid.UUID) error
}

type PostgresCommunityRepository struct {
	db database.DB
}

func NewPostgresCommunityRepository(db database.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

const communityColumns = `
	c.id, c.name, COALESCE(c.description, ''), COALESCE(c.category, ''), c.tags,
	c.member_count, c.active_members, c.today_posts, c.weekly_growth,
	c.is_private, c.owner_id, (m.user_id IS NOT NULL), c.created_at, c.updated_at`

func (r *PostgresCommunityRepository) ListDefault(ctx context.Context, userID uuid.UUID) ([]community.Community, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+communityColumns+`
		 FROM communities c
		 LEFT JOIN community_members m ON m.community_id = c.id AND m.user_id = $1
		 WHERE c.is_private = false
		 ORDER BY c.created_at ASC, c.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCommunities(rows, userID)
}

func (r *PostgresCommunityRepository) ListJoined(ctx context.Context, userID uuid.UUID) ([]community.Community, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+communityColumns+`
		 FROM communities c
		 JOIN community_members m ON m.community_id = c.id AND m.user_id = $1
		 ORDER BY m.joined_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCommunities(rows, userID)
}

func (r *PostgresCommunityRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (community.Community, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+communityColumns+`
		 FROM communities c
		 LEFT JOIN community_members m ON m.community_id = c.id AND m.user_id = $2
		 WHERE c.id = $1`,
		id, userID,
	)

	c, err := scanCommunity(row, userID)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return community.Community{}, community.ErrNotFound
		}
		return community.Community{}, err
	}
	return c, nil
}

func (r *PostgresCommunityRepository) Create(ctx context.Context, c community.Community) (community.Community, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return community.Community{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO communities
			(id, name, description, category, tags, member_count, active_members, today_posts, weekly_growth, is_private, owner_id)
		 VALUES ($1, $2, $3, $4, $5, 1, 1, 0, 0, $6, $7)`,
		c.ID, c.Name, c.Description, c.Category, tags, c.IsPrivate, c.OwnerID,
	)
	if err != nil {
		return community.Community{}, err
	}

	// The owner is a member from the start.
	_, err = tx.Exec(ctx,
		`INSERT INTO community_members (community_id, user_id) VALUES ($1, $2)`,
		c.ID, c.OwnerID,
	)
	if err != nil {
		return community.Community{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return community.Community{}, err
	}

	return r.GetByID(ctx, c.ID, c.OwnerID)
}

func (r *PostgresCommunityRepository) JoinedCommunityIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT community_id FROM community_members WHERE user_id = $1 ORDER BY joined_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCommunityRepository) Join(ctx context.Context, communityID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := joinInTx(ctx, tx, communityID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresCommunityRepository) Leave(ctx context.Context, communityID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := leaveInTx(ctx, tx, communityID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Switch joins joinID and leaves leaveID in one transaction, so a failed
// half never leaves the membership state inconsistent.
func (r *PostgresCommunityRepository) Switch(ctx context.Context, joinID, leaveID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := joinInTx(ctx, tx, joinID, userID); err != nil {
		return err
	}
	if err := leaveInTx(ctx, tx, leaveID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func joinInTx(ctx context.Context, tx database.Tx, communityID, userID uuid.UUID) error {
	n, err := tx.Exec(ctx,
		`INSERT INTO community_members (community_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (community_id, user_id) DO NOTHING`,
		communityID, userID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyMember
	}

	n, err = tx.Exec(ctx,
		`UPDATE communities SET member_count = member_count + 1, updated_at = now() WHERE id = $1`,
		communityID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return community.ErrNotFound
	}
	return nil
}

func leaveInTx(ctx context.Context, tx database.Tx, communityID, userID uuid.UUID) error {
	n, err := tx.Exec(ctx,
		`DELETE FROM community_members WHERE community_id = $1 AND user_id = $2`,
		communityID, userID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotMember
	}

	_, err = tx.Exec(ctx,
		`UPDATE communities SET member_count = GREATEST(member_count - 1, 0), updated_at = now() WHERE id = $1`,
		communityID,
	)
	return err
}

func scanCommunities(rows database.Rows, userID uuid.UUID) ([]community.Community, error) {
	out := make([]community.Community, 0)
	for rows.Next() {
		c, err := scanCommunity(rows, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCommunity(row scanner, userID uuid.UUID) (community.Community, error) {
	var c community.Community
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Category, &c.Tags,
		&c.MemberCount, &c.ActiveMembers, &c.TodayPosts, &c.WeeklyGrowth,
		&c.IsPrivate, &c.OwnerID, &c.IsJoined, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return community.Community{}, err
	}
	c.IsOwner = c.OwnerID == userID
	return c, nil
}
