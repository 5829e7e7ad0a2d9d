package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisQueue 通知队列的Redis实现
//
// 提醒调度器把到期提醒写入该队列，通知worker（邮件/站内信）从队列消费。
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// NotificationMessage 队列中的通知消息
type NotificationMessage struct {
	MessageID    string                 `json:"message_id"`
	Kind         string                 `json:"kind"` // reminder_due等
	BusinessID   uint                   `json:"business_id"`
	BusinessName string                 `json:"business_name"`
	UserID       uint                   `json:"user_id"` // 接收人ID
	Title        string                 `json:"title"`
	Payload      map[string]interface{} `json:"payload"`
	Created      int64                  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "fiesta:notify"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// Enqueue 将通知消息加入队列
func (q *RedisQueue) Enqueue(message *NotificationMessage) error {
	ctx := context.Background()

	if message.Created == 0 {
		message.Created = time.Now().Unix()
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化通知消息失败: %v", err)
	}

	// 左侧入队
	if err := q.client.LPush(ctx, q.getQueueKey(), data).Err(); err != nil {
		return fmt.Errorf("通知入队失败: %v", err)
	}

	// 记录消息状态（用于排查），24小时过期
	messageKey := q.getMessageKey(message.MessageID)
	info := map[string]interface{}{
		"message_id":  message.MessageID,
		"kind":        message.Kind,
		"business_id": message.BusinessID,
		"user_id":     message.UserID,
		"status":      "queued",
		"queued_at":   time.Now().Unix(),
	}
	if err := q.client.HSet(ctx, messageKey, info).Err(); err != nil {
		return fmt.Errorf("记录通知状态失败: %v", err)
	}
	q.client.Expire(ctx, messageKey, 24*time.Hour)

	return nil
}

// Dequeue 阻塞式出队，timeout为0时无限阻塞
func (q *RedisQueue) Dequeue(timeout time.Duration) (*NotificationMessage, error) {
	ctx := context.Background()

	result, err := q.client.BRPop(ctx, timeout, q.getQueueKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("通知出队失败: %v", err)
	}

	// BRPop返回 [key, value]
	var message NotificationMessage
	if err := json.Unmarshal([]byte(result[1]), &message); err != nil {
		return nil, fmt.Errorf("解析通知消息失败: %v", err)
	}

	return &message, nil
}

// MarkDelivered 标记消息已投递
func (q *RedisQueue) MarkDelivered(messageID string) error {
	ctx := context.Background()
	return q.client.HSet(ctx, q.getMessageKey(messageID), map[string]interface{}{
		"status":       "delivered",
		"delivered_at": time.Now().Unix(),
	}).Err()
}

// GetMessageStatus 获取消息状态
func (q *RedisQueue) GetMessageStatus(messageID string) (map[string]string, error) {
	ctx := context.Background()

	result, err := q.client.HGetAll(ctx, q.getMessageKey(messageID)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取通知状态失败: %v", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("通知不存在")
	}

	return result, nil
}

// Length 获取当前队列长度
func (q *RedisQueue) Length() (int64, error) {
	ctx := context.Background()
	return q.client.LLen(ctx, q.getQueueKey()).Result()
}

// 辅助方法

func (q *RedisQueue) getQueueKey() string {
	return fmt.Sprintf("%s:pending", q.prefix)
}

func (q *RedisQueue) getMessageKey(messageID string) string {
	return fmt.Sprintf("%s:message:%s", q.prefix, messageID)
}

// GetClient 获取Redis客户端（用于高级操作）
func (q *RedisQueue) GetClient() *redis.Client {
	return q.client
}
