package background

import (
	"context"
	"errors"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/RichardKnop/machinery/v1/tasks"
	log "github.com/sirupsen/logrus"
)

const (
	TaskExpireHelpRequests  = "expire_help_requests"
	TaskSettleCompletedHelp = "settle_completed_helps"
)

// Housekeeper is the maintenance side of the help coordinator
type Housekeeper interface {
	ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error)
	SettleCompleted(ctx context.Context, limit int64) (int, error)
}

// BackgroundManager is a struct for the housekeeping background manager
type BackgroundManager struct {
	housekeeper Housekeeper

	settleLimit int64

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(housekeeper Housekeeper, taskServer *machinery.Server, settleLimit int64) *BackgroundManager {
	return &BackgroundManager{
		housekeeper: housekeeper,
		settleLimit: settleLimit,
		taskServer:  taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// RegisterHousekeepingTasks registers every task Schedule sends
func (m *BackgroundManager) RegisterHousekeepingTasks() error {
	if err := m.RegisterTask(TaskExpireHelpRequests, m.ExpireHelpRequests); err != nil {
		return err
	}
	return m.RegisterTask(TaskSettleCompletedHelp, m.SettleCompletedHelps)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("mutual-aid-worker", 5)
	return m.worker.Launch()
}

// Schedule sends the housekeeping tasks every interval until ctx is done
func (m *BackgroundManager) Schedule(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.sendHousekeepingTasks()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *BackgroundManager) sendHousekeepingTasks() {
	for _, name := range []string{TaskExpireHelpRequests, TaskSettleCompletedHelp} {
		if _, err := m.taskServer.SendTask(&tasks.Signature{Name: name}); err != nil {
			log.WithField("prefix", backgroundLogPrefix).Errorf("send task %s with error: %s", name, err)
		}
	}
}

// ExpireHelpRequests is a background job to expire the pending requests nobody answered
func (m *BackgroundManager) ExpireHelpRequests() error {
	count, err := m.housekeeper.ExpireHelpRequests(context.Background(), time.Now())
	if err != nil {
		return err
	}

	if count > 0 {
		log.WithField("prefix", backgroundLogPrefix).Infof("%d help requests expired", count)
	}
	return nil
}

// SettleCompletedHelps is a background job to finish the side effects of completed
// requests that did not finish in the request path
func (m *BackgroundManager) SettleCompletedHelps() error {
	count, err := m.housekeeper.SettleCompleted(context.Background(), m.settleLimit)
	if err != nil {
		return err
	}

	if count > 0 {
		log.WithField("prefix", backgroundLogPrefix).Infof("%d completed help requests settled", count)
	}
	return nil
}
