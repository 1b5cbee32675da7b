package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/Altair788/no-more-procrastination/internal/domain/habit"
	"github.com/Altair788/no-more-procrastination/internal/domain/notification"
	"github.com/Altair788/no-more-procrastination/internal/domain/user"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes over the domain interfaces ---

type fakeHabitRepo struct {
	habits  []*habit.Habit
	listErr error
}

func (r *fakeHabitRepo) ListDue(ctx context.Context, timeOfDay string) ([]*habit.Habit, error) {
	return r.habits, r.listErr
}

func (r *fakeHabitRepo) ListByOwnerTelegramID(ctx context.Context, tgID int64) ([]*habit.Habit, error) {
	return nil, nil
}

type fakeDeliveryLog struct {
	alreadySent map[int64]bool
	recorded    []int64
	wasSentErr  error
}

func newFakeDeliveryLog() *fakeDeliveryLog {
	return &fakeDeliveryLog{alreadySent: make(map[int64]bool)}
}

func (l *fakeDeliveryLog) WasSent(ctx context.Context, habitID int64, day time.Time) (bool, error) {
	if l.wasSentErr != nil {
		return false, l.wasSentErr
	}
	return l.alreadySent[habitID], nil
}

func (l *fakeDeliveryLog) RecordSent(ctx context.Context, habitID int64, day time.Time, channel notification.ChannelKind) error {
	l.alreadySent[habitID] = true
	l.recorded = append(l.recorded, habitID)
	return nil
}

type enqueuedDelivery struct {
	chatID int64
	text   string
}

type fakeEnqueuer struct {
	deliveries []enqueuedDelivery
}

func (e *fakeEnqueuer) EnqueueDelivery(chatID int64, text string) {
	e.deliveries = append(e.deliveries, enqueuedDelivery{chatID: chatID, text: text})
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeEmailSender struct {
	sent    []sentEmail
	failFor map[string]error
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{failFor: make(map[string]error)}
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := s.failFor[to]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

type fakeProgressPublisher struct {
	dispatch []notification.DispatchProgress
	delivery []string
}

func (p *fakeProgressPublisher) PublishDispatchProgress(ctx context.Context, taskID string, progress notification.DispatchProgress) error {
	p.dispatch = append(p.dispatch, progress)
	return nil
}

func (p *fakeProgressPublisher) PublishDeliveryStatus(ctx context.Context, taskID string, status string) error {
	p.delivery = append(p.delivery, status)
	return nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "test")
}

type dispatchFixture struct {
	svc      *DispatchServiceImpl
	repo     *fakeHabitRepo
	log      *fakeDeliveryLog
	enqueuer *fakeEnqueuer
	email    *fakeEmailSender
	progress *fakeProgressPublisher
}

func newDispatchFixture(habits ...*habit.Habit) *dispatchFixture {
	f := &dispatchFixture{
		repo:     &fakeHabitRepo{habits: habits},
		log:      newFakeDeliveryLog(),
		enqueuer: &fakeEnqueuer{},
		email:    newFakeEmailSender(),
		progress: &fakeProgressPublisher{},
	}
	f.svc = NewDispatchService(f.repo, f.log, f.enqueuer, f.email, f.progress, testLogger())
	f.svc.clock = func() time.Time {
		return time.Date(2025, 6, 1, 7, 5, 0, 0, time.UTC)
	}
	return f
}

func botOwner(chatID int64) *user.User {
	return &user.User{ID: 1, Email: "bot@b.com", TgID: sql.NullInt64{Int64: chatID, Valid: true}}
}

func emailOwner(address string) *user.User {
	return &user.User{ID: 2, Email: address}
}

// --- Tests ---

func TestDispatchRun_NoDueHabits(t *testing.T) {
	f := newDispatchFixture()

	summary, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Summary{Status: StatusCompleted, TotalHabits: 0}, summary)
	assert.Empty(t, f.enqueuer.deliveries)
	assert.Empty(t, f.email.sent)
}

func TestDispatchRun_ListDueFails(t *testing.T) {
	f := newDispatchFixture()
	f.repo.listErr = fmt.Errorf("connection refused")

	_, err := f.svc.Run(context.Background())

	require.Error(t, err)
}

func TestDispatchRun_BotDelivery(t *testing.T) {
	h := &habit.Habit{
		ID:       10,
		Owner:    botOwner(123),
		Action:   "Бег по утрам",
		Location: "Парк",
		Time:     "07:00",
		Reward:   "шоколадка",
	}
	f := newDispatchFixture(h)

	summary, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalHabits)
	require.Len(t, f.enqueuer.deliveries, 1)
	assert.Equal(t, int64(123), f.enqueuer.deliveries[0].chatID)
	assert.Contains(t, f.enqueuer.deliveries[0].text, "шоколадка")
	assert.Contains(t, f.enqueuer.deliveries[0].text, "Бег по утрам")
	assert.Contains(t, f.enqueuer.deliveries[0].text, "07:00")
	assert.Empty(t, f.email.sent)
	assert.Equal(t, []int64{10}, f.log.recorded)
}

func TestDispatchRun_EmailFallback(t *testing.T) {
	h := &habit.Habit{
		ID:     11,
		Owner:  emailOwner("a@b.com"),
		Action: "Бег по утрам",
		Time:   "07:00",
	}
	f := newDispatchFixture(h)

	summary, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalHabits)
	assert.Empty(t, f.enqueuer.deliveries)
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "a@b.com", f.email.sent[0].to)
	assert.Contains(t, f.email.sent[0].subject, "Telegram")
	assert.Equal(t, []int64{11}, f.log.recorded)
}

func TestDispatchRun_FaultIsolation(t *testing.T) {
	habits := []*habit.Habit{
		{ID: 1, Owner: botOwner(100), Action: "Первая", Time: "06:00"},
		{ID: 2, Owner: emailOwner("broken@b.com"), Action: "Вторая", Time: "06:30"},
		{ID: 3, Owner: botOwner(300), Action: "Третья", Time: "07:00"},
	}
	f := newDispatchFixture(habits...)
	f.email.failFor["broken@b.com"] = fmt.Errorf("smtp unavailable")

	summary, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalHabits)
	assert.Len(t, f.enqueuer.deliveries, 2)
	// The failed email is dropped for this run and not recorded, so the
	// next run can retry it.
	assert.Equal(t, []int64{1, 3}, f.log.recorded)
}

func TestDispatchRun_SkipsHabitsAlreadySentToday(t *testing.T) {
	habits := []*habit.Habit{
		{ID: 1, Owner: botOwner(100), Action: "Первая", Time: "06:00"},
		{ID: 2, Owner: botOwner(200), Action: "Вторая", Time: "06:30"},
	}
	f := newDispatchFixture(habits...)
	f.log.alreadySent[1] = true

	summary, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalHabits)
	require.Len(t, f.enqueuer.deliveries, 1)
	assert.Equal(t, int64(200), f.enqueuer.deliveries[0].chatID)
}

func TestDispatchRun_PublishesProgressPerHabit(t *testing.T) {
	habits := []*habit.Habit{
		{ID: 1, Owner: botOwner(100), Action: "Первая", Time: "06:00"},
		{ID: 2, Owner: botOwner(200), Action: "Вторая", Time: "06:30"},
	}
	f := newDispatchFixture(habits...)

	_, err := f.svc.Run(context.Background())

	require.NoError(t, err)
	// One update per processed habit plus the terminal one.
	require.Len(t, f.progress.dispatch, 3)
	assert.Equal(t, notification.DispatchProgress{Current: 1, Total: 2, Status: "Обработана привычка 1 из 2"}, f.progress.dispatch[0])
	assert.Equal(t, notification.DispatchProgress{Current: 2, Total: 2, Status: "Обработана привычка 2 из 2"}, f.progress.dispatch[1])
	assert.Equal(t, 2, f.progress.dispatch[2].Current)
	assert.Equal(t, "Завершено", f.progress.dispatch[2].Status)
}
