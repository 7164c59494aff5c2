package subscriber

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/arianshop/backend/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T, sender NewsletterSender) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "subscribers.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Subscriber{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{App: config.AppConfig{FrontendURL: "https://shop.example.com"}}
	return NewService(db, cfg, sender, log)
}

func TestSubscribeLifecycle(t *testing.T) {
	s := newTestService(t, nil)

	outcome, err := s.Subscribe(" Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSubscribed, outcome)

	outcome, err = s.Subscribe("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySubscribed, outcome)

	require.NoError(t, s.Unsubscribe("ada@example.com"))

	outcome, err = s.Subscribe("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, OutcomeReactivated, outcome)

	var count int64
	require.NoError(t, s.db.Model(&Subscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "resubscribing reactivates the existing record")
}

func TestSubscribeRequiresEmail(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Subscribe("   ")
	require.Error(t, err)
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	s := newTestService(t, nil)

	err := s.Unsubscribe("nobody@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNotifyNoActiveSubscribers(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Notify(context.Background(), &NotifyRequest{Subject: "Sale", Message: "hi"})
	assert.ErrorIs(t, err, ErrNoActiveSubscribers)
}

func TestNotifySkipsUnsubscribed(t *testing.T) {
	s := newTestService(t, &recordingSender{})

	_, err := s.Subscribe("gone@example.com")
	require.NoError(t, err)
	require.NoError(t, s.Unsubscribe("gone@example.com"))

	_, err = s.Notify(context.Background(), &NotifyRequest{Subject: "Sale", Message: "hi"})
	assert.ErrorIs(t, err, ErrNoActiveSubscribers, "inactive subscribers do not count as recipients")
}

func TestNotifyStampsLastEmailSent(t *testing.T) {
	sender := &recordingSender{}
	s := newTestService(t, sender)

	_, err := s.Subscribe("a@example.com")
	require.NoError(t, err)
	_, err = s.Subscribe("b@example.com")
	require.NoError(t, err)

	summary, err := s.Notify(context.Background(), &NotifyRequest{Subject: "Sale", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Emails sent to 2 subscribers (0 failed)", summary.Message)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, sender.sent)

	var subs []Subscriber
	require.NoError(t, s.db.Find(&subs).Error)
	require.Len(t, subs, 2)
	for _, sub := range subs {
		assert.NotNil(t, sub.LastEmailSent, "successful sends stamp the subscriber")
	}
}
