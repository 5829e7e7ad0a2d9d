package notifier

// Notifier 站内通知能力
//
// 作为依赖注入给提醒调度器和生命周期操作，核心代码不持有任何
// 进程级广播单例。投递失败由实现方记录，调用方按尽力而为处理。
type Notifier interface {
	// Notify 向指定用户推送一条通知
	Notify(userID uint, kind string, payload interface{}) error
}

// NoopNotifier 空实现（测试及未启用WebSocket时使用）
type NoopNotifier struct{}

func (NoopNotifier) Notify(userID uint, kind string, payload interface{}) error {
	return nil
}
