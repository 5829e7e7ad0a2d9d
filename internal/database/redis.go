package database

import (
	"sync"

	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/config"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/queue"
)

var (
	notifyQueueInstance *queue.RedisQueue
	notifyQueueOnce     sync.Once
)

// GetNotifyQueue 获取通知队列的单例实例
func GetNotifyQueue() *queue.RedisQueue {
	notifyQueueOnce.Do(func() {
		cfg := config.GetConfig()
		notifyQueueInstance = queue.NewRedisQueue(&queue.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return notifyQueueInstance
}

// CloseNotifyQueue 关闭Redis连接
func CloseNotifyQueue() error {
	if notifyQueueInstance != nil {
		return notifyQueueInstance.Close()
	}
	return nil
}
