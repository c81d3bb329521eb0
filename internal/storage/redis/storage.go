package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchpoint-gg/matchpoint/internal/dependencies/clock"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	clock  clock.Clock
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		clock:  clk,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		clock:  clk,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var record model.PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) SavePlayer(ctx context.Context, id model.PlayerID, record *model.PlayerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// Pipeline keeps the record and the enumeration index consistent
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(id), data, 0)
	pipe.SAdd(ctx, allPlayersKey, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) (map[model.PlayerID]*model.PlayerRecord, error) {
	ids, err := s.client.SMembers(ctx, allPlayersKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[model.PlayerID]*model.PlayerRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, val := range values {
		if val == nil {
			continue
		}
		var record model.PlayerRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue
		}
		out[model.PlayerID(ids[i])] = &record
	}

	return out, nil
}

// Match operations

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var record model.MatchRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) GetMatchStats(ctx context.Context, matchID model.MatchID) (map[model.PlayerID]*model.MatchStat, error) {
	playerIDs, err := s.client.SMembers(ctx, statIndexKey(matchID)).Result()
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, model.ErrStatNotFound
	}

	keys := make([]string, len(playerIDs))
	for i, pid := range playerIDs {
		keys[i] = statKey(matchID, model.PlayerID(pid))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[model.PlayerID]*model.MatchStat, len(playerIDs))
	for i, val := range values {
		if val == nil {
			continue
		}
		var stat model.MatchStat
		if err := json.Unmarshal([]byte(val.(string)), &stat); err != nil {
			continue
		}
		out[model.PlayerID(playerIDs[i])] = &stat
	}

	return out, nil
}

func (s *Storage) GetPlayerStat(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.MatchStat, error) {
	data, err := s.client.Get(ctx, statKey(matchID, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatNotFound
		}
		return nil, err
	}

	var stat model.MatchStat
	if err := json.Unmarshal(data, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *Storage) MatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.MatchID, error) {
	ids, err := s.client.LRange(ctx, playerMatchesKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]model.MatchID, len(ids))
	for i, id := range ids {
		out[i] = model.MatchID(id)
	}
	return out, nil
}

// CommitMatch applies all settlement writes inside one MULTI/EXEC, so
// either every key lands or none do.
func (s *Storage) CommitMatch(ctx context.Context, commit *model.MatchCommit) error {
	matchData, err := json.Marshal(&model.MatchRecord{Date: s.clock.Now()})
	if err != nil {
		return err
	}

	type playerWrite struct {
		key  string
		data []byte
		id   model.PlayerID
	}
	playerWrites := make([]playerWrite, 0, len(commit.Players))
	for _, pu := range commit.Players {
		data, err := json.Marshal(&pu.Record)
		if err != nil {
			return err
		}
		playerWrites = append(playerWrites, playerWrite{
			key:  playerKey(pu.PlayerID),
			data: data,
			id:   pu.PlayerID,
		})
	}

	type statWrite struct {
		key  string
		data []byte
		id   model.PlayerID
	}
	statWrites := make([]statWrite, 0, len(commit.Stats))
	for _, su := range commit.Stats {
		data, err := json.Marshal(&su.Stat)
		if err != nil {
			return err
		}
		statWrites = append(statWrites, statWrite{
			key:  statKey(commit.MatchID, su.PlayerID),
			data: data,
			id:   su.PlayerID,
		})
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKey(commit.MatchID), matchData, 0)
		for _, pw := range playerWrites {
			pipe.Set(ctx, pw.key, pw.data, 0)
			pipe.SAdd(ctx, allPlayersKey, string(pw.id))
		}
		for _, sw := range statWrites {
			pipe.Set(ctx, sw.key, sw.data, 0)
			pipe.SAdd(ctx, statIndexKey(commit.MatchID), string(sw.id))
			pipe.RPush(ctx, playerMatchesKey(sw.id), string(commit.MatchID))
		}
		return nil
	})
	return err
}
