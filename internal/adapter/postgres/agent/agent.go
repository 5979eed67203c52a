package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

var _ portagent.Repository = (*Repository)(nil)

const columns = `id, name, description, type, active, created_at, interactions, is_personal,
	model, channels, channel_configs, avatar, purpose, prompt, industry, custom_industry,
	bot_function, custom_function, voice, voice_provider, avm_score, csat_score, performance_score`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error) {
	query := `SELECT ` + columns + ` FROM agents`

	args := []interface{}{}
	switch filter {
	case domainagent.FilterMine:
		query += " WHERE is_personal = $1"
		args = append(args, true)
	case domainagent.FilterTeam:
		query += " WHERE is_personal = $1"
		args = append(args, false)
	}
	query += " ORDER BY seq"

	rows, err := r.pool.Query(ctx, query, args...)
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
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM agents WHERE id = $1`, id)
	a, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainagent.Agent{}, domainagent.NotFound(id)
		}
		return domainagent.Agent{}, fmt.Errorf("querying agent: %w", err)
	}
	return a, nil
}

func (r *Repository) Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error) {
	args, err := values(a)
	if err != nil {
		return domainagent.Agent{}, err
	}

	query := `
		INSERT INTO agents (` + columns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
		RETURNING ` + columns

	created, err := scanAgent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("inserting agent: %w", err)
	}
	return created, nil
}

// Update reads, merges and writes inside one transaction so concurrent patches
// to different fields do not lose each other.
func (r *Repository) Update(ctx context.Context, id string, patch domainagent.Patch) (domainagent.Agent, error) {
	var updated domainagent.Agent
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		stored, err := scanAgent(tx.QueryRow(ctx, `SELECT `+columns+` FROM agents WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainagent.NotFound(id)
			}
			return fmt.Errorf("locking agent: %w", err)
		}

		args, err := values(patch.Apply(stored))
		if err != nil {
			return err
		}

		query := `
			UPDATE agents SET
				name = $2, description = $3, type = $4, active = $5, created_at = $6,
				interactions = $7, is_personal = $8, model = $9, channels = $10,
				channel_configs = $11, avatar = $12, purpose = $13, prompt = $14,
				industry = $15, custom_industry = $16, bot_function = $17,
				custom_function = $18, voice = $19, voice_provider = $20,
				avm_score = $21, csat_score = $22, performance_score = $23
			WHERE id = $1
			RETURNING ` + columns

		updated, err = scanAgent(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return fmt.Errorf("updating agent: %w", err)
		}
		return nil
	})
	if err != nil {
		return domainagent.Agent{}, err
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainagent.NotFound(id)
	}
	return nil
}

// values returns the positional arguments matching columns.
func values(a domainagent.Agent) ([]interface{}, error) {
	createdAt, err := time.Parse(domainagent.DateLayout, a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", a.CreatedAt, err)
	}

	var configJSON []byte
	if a.ChannelConfigs != nil {
		configJSON, err = json.Marshal(a.ChannelConfigs)
		if err != nil {
			return nil, fmt.Errorf("marshaling channel configs: %w", err)
		}
	}

	return []interface{}{
		a.ID, a.Name, a.Description, a.Type, a.Status == domainagent.StatusActive, createdAt,
		a.Interactions, a.IsPersonal, a.Model, a.Channels, configJSON, a.Avatar, a.Purpose,
		a.Prompt, a.Industry, a.CustomIndustry, a.BotFunction, a.CustomFunction, a.Voice,
		a.VoiceProvider, a.AvmScore, a.CsatScore, a.PerformanceScore,
	}, nil
}

func scanAgent(row pgx.Row) (domainagent.Agent, error) {
	var (
		a         domainagent.Agent
		active    bool
		createdAt time.Time
		cfgBytes  []byte
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Type, &active, &createdAt, &a.Interactions,
		&a.IsPersonal, &a.Model, &a.Channels, &cfgBytes, &a.Avatar, &a.Purpose, &a.Prompt,
		&a.Industry, &a.CustomIndustry, &a.BotFunction, &a.CustomFunction, &a.Voice,
		&a.VoiceProvider, &a.AvmScore, &a.CsatScore, &a.PerformanceScore,
	); err != nil {
		return domainagent.Agent{}, err
	}

	a.Status = domainagent.StatusInactive
	if active {
		a.Status = domainagent.StatusActive
	}
	a.CreatedAt = createdAt.Format(domainagent.DateLayout)

	if len(cfgBytes) > 0 {
		if err := json.Unmarshal(cfgBytes, &a.ChannelConfigs); err != nil {
			return domainagent.Agent{}, fmt.Errorf("unmarshaling channel configs: %w", err)
		}
	}
	return a, nil
}
