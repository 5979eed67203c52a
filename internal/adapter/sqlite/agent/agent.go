package agent

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alanyang/agent-console/internal/adapter/sqlite"
	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

var _ portagent.Repository = (*Repository)(nil)

const columns = `id, name, description, type, active, created_at, interactions, is_personal,
	model, channels, channel_configs, avatar, purpose, prompt, industry, custom_industry,
	bot_function, custom_function, voice, voice_provider, avm_score, csat_score, performance_score`

const placeholders = `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`

type Repository struct {
	db *sql.DB
}

func New(db *sqlite.DB) *Repository {
	return &Repository{db: db.SQL()}
}

func (r *Repository) List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error) {
	query := `SELECT ` + columns + ` FROM agents`
	var args []any
	switch filter {
	case domainagent.FilterMine:
		query += ` WHERE is_personal = ?`
		args = append(args, true)
	case domainagent.FilterTeam:
		query += ` WHERE is_personal = ?`
		args = append(args, false)
	}
	query += ` ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	agents := []domainagent.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent row: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (domainagent.Agent, error) {
	return getAgent(ctx, r.db, id)
}

func (r *Repository) Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error) {
	args, err := values(a)
	if err != nil {
		return domainagent.Agent{}, err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO agents (`+columns+`) VALUES (`+placeholders+`)`, args...); err != nil {
		return domainagent.Agent{}, fmt.Errorf("inserting agent: %w", err)
	}
	return getAgent(ctx, r.db, a.ID)
}

func (r *Repository) Update(ctx context.Context, id string, patch domainagent.Patch) (domainagent.Agent, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stored, err := getAgent(ctx, tx, id)
	if err != nil {
		return domainagent.Agent{}, err
	}

	args, err := values(patch.Apply(stored))
	if err != nil {
		return domainagent.Agent{}, err
	}
	// The id is first in args; move it to the WHERE clause.
	args = append(args[1:], id)

	_, err = tx.ExecContext(ctx, `
		UPDATE agents SET
			name = ?, description = ?, type = ?, active = ?, created_at = ?,
			interactions = ?, is_personal = ?, model = ?, channels = ?,
			channel_configs = ?, avatar = ?, purpose = ?, prompt = ?,
			industry = ?, custom_industry = ?, bot_function = ?,
			custom_function = ?, voice = ?, voice_provider = ?,
			avm_score = ?, csat_score = ?, performance_score = ?
		WHERE id = ?`, args...)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("updating agent: %w", err)
	}

	updated, err := getAgent(ctx, tx, id)
	if err != nil {
		return domainagent.Agent{}, err
	}
	if err := tx.Commit(); err != nil {
		return domainagent.Agent{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	if n == 0 {
		return domainagent.NotFound(id)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getAgent(ctx context.Context, q querier, id string) (domainagent.Agent, error) {
	a, err := scanAgent(q.QueryRowContext(ctx, `SELECT `+columns+` FROM agents WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domainagent.Agent{}, domainagent.NotFound(id)
		}
		return domainagent.Agent{}, fmt.Errorf("querying agent: %w", err)
	}
	return a, nil
}

func values(a domainagent.Agent) ([]any, error) {
	var channels, configs sql.NullString
	if a.Channels != nil {
		b, err := json.Marshal(a.Channels)
		if err != nil {
			return nil, fmt.Errorf("marshaling channels: %w", err)
		}
		channels = sql.NullString{String: string(b), Valid: true}
	}
	if a.ChannelConfigs != nil {
		b, err := json.Marshal(a.ChannelConfigs)
		if err != nil {
			return nil, fmt.Errorf("marshaling channel configs: %w", err)
		}
		configs = sql.NullString{String: string(b), Valid: true}
	}

	return []any{
		a.ID, a.Name, a.Description, a.Type, a.Status == domainagent.StatusActive, a.CreatedAt,
		a.Interactions, a.IsPersonal, a.Model, channels, configs, a.Avatar, a.Purpose,
		a.Prompt, a.Industry, a.CustomIndustry, a.BotFunction, a.CustomFunction, a.Voice,
		a.VoiceProvider, a.AvmScore, a.CsatScore, a.PerformanceScore,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAgent(row scanner) (domainagent.Agent, error) {
	var (
		a                 domainagent.Agent
		active            bool
		channels, configs sql.NullString
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Type, &active, &a.CreatedAt, &a.Interactions,
		&a.IsPersonal, &a.Model, &channels, &configs, &a.Avatar, &a.Purpose, &a.Prompt,
		&a.Industry, &a.CustomIndustry, &a.BotFunction, &a.CustomFunction, &a.Voice,
		&a.VoiceProvider, &a.AvmScore, &a.CsatScore, &a.PerformanceScore,
	); err != nil {
		return domainagent.Agent{}, err
	}

	a.Status = domainagent.StatusInactive
	if active {
		a.Status = domainagent.StatusActive
	}
	if channels.Valid {
		if err := json.Unmarshal([]byte(channels.String), &a.Channels); err != nil {
			return domainagent.Agent{}, fmt.Errorf("unmarshaling channels: %w", err)
		}
	}
	if configs.Valid {
		if err := json.Unmarshal([]byte(configs.String), &a.ChannelConfigs); err != nil {
			return domainagent.Agent{}, fmt.Errorf("unmarshaling channel configs: %w", err)
		}
	}
	return a, nil
}
