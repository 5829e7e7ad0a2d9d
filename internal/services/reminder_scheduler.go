package services

import (
	"sync"
	"time"

	"github.com/FiestaEvents/fiesta-backend-sub002/internal/models"
	"github.com/FiestaEvents/fiesta-backend-sub002/internal/notifier"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/config"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/logger"
	"github.com/FiestaEvents/fiesta-backend-sub002/pkg/queue"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ReminderScheduler 提醒调度器
//
// 周期扫描到期的提醒，写入Redis通知队列并通过Notifier推送。
type ReminderScheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
	queue     *queue.RedisQueue
	notify    notifier.Notifier
	batchSize int
	scanSpec  string
	mu        sync.Mutex
	running   bool
}

var (
	reminderScheduler     *ReminderScheduler
	reminderSchedulerOnce sync.Once
)

// NewReminderScheduler 创建提醒调度器
func NewReminderScheduler(cfg config.ReminderConfig, q *queue.RedisQueue, n notifier.Notifier) *ReminderScheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &ReminderScheduler{
		cron:      cron.New(),
		reminders: NewReminderService(),
		queue:     q,
		notify:    n,
		batchSize: cfg.BatchSize,
		scanSpec:  cfg.ScanSpec,
	}
}

// SetReminderScheduler 设置全局调度器实例（main中初始化后调用）
func SetReminderScheduler(s *ReminderScheduler) {
	reminderSchedulerOnce.Do(func() {
		reminderScheduler = s
	})
}

// GetReminderScheduler 获取全局调度器实例
func GetReminderScheduler() *ReminderScheduler {
	return reminderScheduler
}

// Start 启动周期扫描
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc(s.scanSpec, s.ScanOnce); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Infof("提醒调度器已启动: spec=%s, batch=%d", s.scanSpec, s.batchSize)
	return nil
}

// Stop 停止调度器，等待进行中的扫描结束
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	logger.GetLogger().Info("提醒调度器已停止")
}

// ScanOnce 执行一轮到期扫描（也供测试和手动触发使用）
func (s *ReminderScheduler) ScanOnce() {
	log := logger.GetLogger()
	now := time.Now()

	due, err := s.reminders.GetDue(now, s.batchSize)
	if err != nil {
		log.Errorf("提醒扫描失败: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Infof("扫描到%d条到期提醒", len(due))

	for _, reminder := range due {
		if err := s.dispatch(reminder, now); err != nil {
			log.Errorf("提醒投递失败: id=%d, err=%v", reminder.ID, err)
			continue
		}
		if err := s.reminders.MarkNotified(reminder.ID, now); err != nil {
			log.Errorf("提醒状态回写失败: id=%d, err=%v", reminder.ID, err)
		}
	}
}

// dispatch 把单条提醒写入通知队列并推送
func (s *ReminderScheduler) dispatch(reminder *models.Reminder, now time.Time) error {
	payload := map[string]interface{}{
		"reminder_id": reminder.ID,
		"remind_at":   reminder.RemindAt.Format(time.RFC3339),
		"description": reminder.Description,
	}

	if s.queue != nil {
		msg := &queue.NotificationMessage{
			MessageID:  uuid.NewString(),
			Kind:       "reminder_due",
			BusinessID: reminder.BusinessID,
			UserID:     reminder.UserID,
			Title:      reminder.Title,
			Payload:    payload,
			Created:    now.Unix(),
		}
		if err := s.queue.Enqueue(msg); err != nil {
			return err
		}
	}

	// WebSocket在线推送尽力而为，队列里已有持久副本
	if err := s.notify.Notify(reminder.UserID, "reminder_due", map[string]interface{}{
		"title":   reminder.Title,
		"payload": payload,
	}); err != nil {
		logger.GetLogger().Warnf("提醒在线推送失败: reminder=%d, user=%d, err=%v",
			reminder.ID, reminder.UserID, err)
	}

	return nil
}
