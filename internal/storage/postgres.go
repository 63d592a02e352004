package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/guardian-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

// PostgresStore is a ConfigStore backed by a single long-lived database
// handle. Same-guild writes linearize on the row; different guilds do
// not contend.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(config DatabaseConfig, logger *zap.Logger) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	store := &PostgresStore{db: db, logger: logger}

	if err := store.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	logger.Info("Database schema initialized", zap.String("dbname", config.DBName))

	return store, nil
}

// initializeSchema applies the embedded migrations. Every statement is
// IF NOT EXISTS, so running it against an already-initialized database
// is a no-op.
func (s *PostgresStore) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetConfig(ctx context.Context, guildID int64) (models.GuildPolicy, error) {
	policy := models.GuildPolicy{GuildID: guildID}

	var roleID, channelID sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT mod_role_id, mod_channel_id FROM guild_config WHERE guild_id = $1`,
		guildID,
	).Scan(&roleID, &channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return policy, nil
	}
	if err != nil {
		return policy, fmt.Errorf("error querying guild config: %w", err)
	}

	if roleID.Valid {
		policy.ModRoleID = &roleID.Int64
	}
	if channelID.Valid {
		policy.ModChannelID = &channelID.Int64
	}
	return policy, nil
}

func (s *PostgresStore) SetConfig(ctx context.Context, guildID int64, modRoleID, modChannelID *int64) error {
	// COALESCE keeps the stored value for any field supplied as nil, so
	// concurrent partial writes for the same guild never erase each
	// other's fields.
	query := `
		INSERT INTO guild_config (guild_id, mod_role_id, mod_channel_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id) DO UPDATE SET
			mod_role_id = COALESCE($2, guild_config.mod_role_id),
			mod_channel_id = COALESCE($3, guild_config.mod_channel_id)`

	if _, err := s.db.ExecContext(ctx, query, guildID, modRoleID, modChannelID); err != nil {
		return fmt.Errorf("error upserting guild config: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
