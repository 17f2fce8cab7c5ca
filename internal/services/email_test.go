package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
)

func TestGenerateCodeRange(t *testing.T) {
	svc := NewEmailService(&fakeMailer{}, newFakeCodes(), nil, quietLog())
	for i := 0; i < 200; i++ {
		n, err := strconv.Atoi(svc.GenerateCode())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestSendVerificationCode(t *testing.T) {
	ctx := context.Background()
	mailer, codes, sent := &fakeMailer{}, newFakeCodes(), &countingCounter{}
	svc := NewEmailService(mailer, codes, sent, quietLog())

	require.NoError(t, svc.SendVerificationCode(ctx, "ana@example.ba"))
	require.Equal(t, 1, mailer.count())
	assert.Equal(t, 1, sent.n)
	assert.Equal(t, VerificationCodeTTL, codes.ttls["ana@example.ba"])

	code, err := svc.GetVerificationCode(ctx, "ana@example.ba")
	require.NoError(t, err)
	assert.Len(t, code, 4)
	assert.Contains(t, mailer.sent[0].HTMLBody, code)
}

func TestVerifyCodeConsumes(t *testing.T) {
	ctx := context.Background()
	svc := NewEmailService(&fakeMailer{}, newFakeCodes(), nil, quietLog())
	require.NoError(t, svc.SaveVerificationCode(ctx, "ana@example.ba", "4821", time.Minute))

	ok, err := svc.VerifyCode(ctx, "ana@example.ba", "1111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyCode(ctx, "ana@example.ba", " 4821 ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyCode(ctx, "ana@example.ba", "4821")
	require.NoError(t, err)
	assert.False(t, ok)

	code, _ := svc.GetVerificationCode(ctx, "nobody@example.ba")
	assert.Equal(t, "", code)
}

func inactiveFixture() (*fakeUsers, *fakeMailer, *InactivityMailJob) {
	users := newFakeUsers()
	users.activity = []models.CustomerActivity{
		{User: models.User{ID: "1", Email: "old@example.ba", FullName: "Old"}, LastPurchase: discountNow.AddDate(0, -2, 0)},
		{User: models.User{ID: "2", Email: "recent@example.ba"}, LastPurchase: discountNow.AddDate(0, 0, -3)},
		{User: models.User{ID: "3", Email: "OLD@example.ba"}, LastPurchase: discountNow.AddDate(0, -3, 0)},
		{User: models.User{ID: "4", Email: "gone@example.ba"}, LastPurchase: discountNow.AddDate(-1, 0, 0)},
	}
	mailer := &fakeMailer{}
	customers := NewCustomerService(users, fixedClock(discountNow), 0)
	emails := NewEmailService(mailer, newFakeCodes(), nil, quietLog())
	job := NewInactivityMailJob(customers, emails, "@every 1h", "https://ayana.ba", quietLog())
	return users, mailer, job
}

func TestGetInactiveCustomers(t *testing.T) {
	users, _, _ := inactiveFixture()
	got, err := NewCustomerService(users, fixedClock(discountNow), 0).GetInactiveCustomers(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)
}

func TestInactivityJobRunOnce(t *testing.T) {
	_, mailer, job := inactiveFixture()
	mailer.fail = map[string]bool{"gone@example.ba": true}

	sent, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Equal(t, 1, mailer.count())
	assert.Equal(t, "old@example.ba", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTMLBody, "https://ayana.ba")
}

func TestInactivityJobStartRunsImmediately(t *testing.T) {
	_, mailer, job := inactiveFixture()
	require.NoError(t, job.Start(context.Background()))
	defer job.Stop()

	assert.Eventually(t, func() bool { return mailer.count() == 2 }, time.Second, 10*time.Millisecond)
}

type slowMailer struct {
	*fakeMailer
	delay time.Duration
}

func (m slowMailer) Send(ctx context.Context, msg Message) error {
	time.Sleep(m.delay)
	return m.fakeMailer.Send(ctx, msg)
}

func TestInactivityJobStopWaitsForFirstPass(t *testing.T) {
	users, _, _ := inactiveFixture()
	mailer := slowMailer{fakeMailer: &fakeMailer{}, delay: 50 * time.Millisecond}
	emails := NewEmailService(mailer, newFakeCodes(), nil, quietLog())
	job := NewInactivityMailJob(NewCustomerService(users, fixedClock(discountNow), 0), emails, "@every 1h", "https://ayana.ba", quietLog())

	require.NoError(t, job.Start(context.Background()))
	job.Stop()

	// le passage initial est terminé au retour de Stop
	assert.Equal(t, 2, mailer.count())
}

func TestInactivityJobBadSchedule(t *testing.T) {
	_, _, job := inactiveFixture()
	job.schedule = "every tuesday"
	assert.Error(t, job.Start(context.Background()))
}
