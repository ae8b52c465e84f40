package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 月度账单缓存的键前缀与过期时间
const (
	statementKeyPrefix  = "statement:"
	statementExpiration = 5 * time.Minute
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	CacheStatement(year, month int, statement interface{}) error
	GetStatement(year, month int, dest interface{}) (bool, error)
	InvalidateStatement(year, month int) error
	InvalidateAllStatements() error
}

// RedisService handles Redis operations
// Client 为 nil 时所有操作退化为未命中，应用在无Redis环境下照常工作
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// statementKey 生成 (年, 月) 账单的缓存键
func statementKey(year, month int) string {
	return fmt.Sprintf("%s%04d-%02d", statementKeyPrefix, year, month)
}

// 1. CacheStatement 缓存某个月份的账单数据
func (s *RedisService) CacheStatement(year, month int, statement interface{}) error {
	if s.Client == nil {
		return nil
	}

	jsonValue, err := json.Marshal(statement)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, statementKey(year, month), jsonValue, statementExpiration).Err()
}

// 2. GetStatement 读取某个月份的账单缓存，未命中返回 false
func (s *RedisService) GetStatement(year, month int, dest interface{}) (bool, error) {
	if s.Client == nil {
		return false, nil
	}

	val, err := s.Client.Get(s.Ctx, statementKey(year, month)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// 3. InvalidateStatement 失效指定月份的账单缓存
func (s *RedisService) InvalidateStatement(year, month int) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Del(s.Ctx, statementKey(year, month)).Err()
}

// 4. InvalidateAllStatements 失效全部账单缓存（住户增删改后调用）
func (s *RedisService) InvalidateAllStatements() error {
	if s.Client == nil {
		return nil
	}

	keys, err := s.Client.Keys(s.Ctx, statementKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}
