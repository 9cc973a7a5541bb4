package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cartCodeField  = "code"
	cartItemPrefix = "item:"
	defaultCartTTL = 72 * time.Hour
)

// CartItem 购物车中的一行, 只存商品与数量, 价格在读取时从商品表计算
type CartItem struct {
	ProductID int64
	Quantity  int
}

// CartData 购物车原始数据
type CartData struct {
	Items []CartItem
	Code  string
}

// CartStorage 购物车存储: 每个会话一个 hash, 每次写入刷新过期时间
type CartStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCartStorage(redis *redis.Client, ttl time.Duration) *CartStorage {
	if ttl <= 0 {
		ttl = defaultCartTTL
	}
	return &CartStorage{redis: redis, ttl: ttl}
}

func (c *CartStorage) Load(ctx context.Context, session string) (*CartData, error) {
	fields, err := c.redis.HGetAll(ctx, c.key(session)).Result()
	if err != nil {
		return nil, err
	}
	data := &CartData{Items: make([]CartItem, 0, len(fields))}
	for field, val := range fields {
		if field == cartCodeField {
			data.Code = val
			continue
		}
		if !strings.HasPrefix(field, cartItemPrefix) {
			continue
		}
		pid, err := strconv.ParseInt(strings.TrimPrefix(field, cartItemPrefix), 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(val)
		if err != nil || qty <= 0 {
			continue
		}
		data.Items = append(data.Items, CartItem{ProductID: pid, Quantity: qty})
	}
	sort.Slice(data.Items, func(i, j int) bool { return data.Items[i].ProductID < data.Items[j].ProductID })
	return data, nil
}

// IncrItem 累加数量, 返回累加后的数量
func (c *CartStorage) IncrItem(ctx context.Context, session string, productID int64, delta int) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, c.key(session), c.itemField(productID), int64(delta))
		pipe.Expire(ctx, c.key(session), c.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *CartStorage) SetItem(ctx context.Context, session string, productID int64, qty int) error {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.key(session), c.itemField(productID), qty)
		pipe.Expire(ctx, c.key(session), c.ttl)
		return nil
	})
	return err
}

func (c *CartStorage) RemoveItem(ctx context.Context, session string, productID int64) error {
	return c.redis.HDel(ctx, c.key(session), c.itemField(productID)).Err()
}

func (c *CartStorage) SetCode(ctx context.Context, session, code string) error {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.key(session), cartCodeField, code)
		pipe.Expire(ctx, c.key(session), c.ttl)
		return nil
	})
	return err
}

func (c *CartStorage) RemoveCode(ctx context.Context, session string) error {
	return c.redis.HDel(ctx, c.key(session), cartCodeField).Err()
}

// Clear 清空整个购物车, 包括优惠码
func (c *CartStorage) Clear(ctx context.Context, session string) error {
	return c.redis.Del(ctx, c.key(session)).Err()
}

func (c *CartStorage) key(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

func (c *CartStorage) itemField(productID int64) string {
	return cartItemPrefix + strconv.FormatInt(productID, 10)
}
