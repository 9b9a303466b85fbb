package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/arcade-leaderboard/internal/config"
	"github.com/palemoky/arcade-leaderboard/internal/leaderboard"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// updatedAtSuffix 最近一次渲染时间的 key 后缀
	updatedAtSuffix = ":updated_at"
	// stagingSuffix 渲染过程中写入的临时列表，提交时整体替换正式列表
	stagingSuffix = ":staging"
)

// commitScript 原子替换正式列表：暂存列表为空（没有任何行）时删除正式列表
var commitScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	redis.call("RENAME", KEYS[1], KEYS[2])
else
	redis.call("DEL", KEYS[2])
end
redis.call("SET", KEYS[3], ARGV[1])
return 1
`)

// NewClient 创建 Redis 客户端并测试连接
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}

// RedisSurface 把渲染结果镜像到 Redis 列表
type RedisSurface struct {
	client *redis.Client
	key    string
}

// NewRedisSurface 创建 Redis 输出面
func NewRedisSurface(client *redis.Client, key string) *RedisSurface {
	return &RedisSurface{client: client, key: key}
}

// Key 返回列表 key
func (rs *RedisSurface) Key() string {
	return rs.key
}

// Clear 清空暂存列表，正式列表在 Commit 前保持不变
func (rs *RedisSurface) Clear(ctx context.Context) error {
	return rs.client.Del(ctx, rs.key+stagingSuffix).Err()
}

// AppendRow 追加一行（JSON）到暂存列表
func (rs *RedisSurface) AppendRow(ctx context.Context, row leaderboard.RankedRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return rs.client.RPush(ctx, rs.key+stagingSuffix, data).Err()
}

// Commit 用暂存列表原子替换正式列表并记录更新时间
func (rs *RedisSurface) Commit(ctx context.Context) error {
	keys := []string{rs.key + stagingSuffix, rs.key, rs.key + updatedAtSuffix}
	if err := commitScript.Run(ctx, rs.client, keys, time.Now().Unix()).Err(); err != nil {
		return fmt.Errorf("commit %s: %w", rs.key, err)
	}
	return nil
}

// Rows 读取全部行
func (rs *RedisSurface) Rows(ctx context.Context) ([]leaderboard.RankedRow, error) {
	items, err := rs.client.LRange(ctx, rs.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]leaderboard.RankedRow, 0, len(items))
	for _, item := range items {
		var row leaderboard.RankedRow
		if err := json.Unmarshal([]byte(item), &row); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdatedAt 最近一次写入时间，没有数据时返回零值
func (rs *RedisSurface) UpdatedAt(ctx context.Context) (time.Time, error) {
	ts, err := rs.client.Get(ctx, rs.key+updatedAtSuffix).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0), nil
}
