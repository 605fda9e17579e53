package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/internal/service/mocks"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

const pageURL = "https://example.org/donate"

func TestService_WelcomeRider(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	mailer := mocks.NewMockMailer(t)
	svc, err := NewNotificationService(mailer, nil, pageURL, "admin@example.org")
	require.NoError(t, err)

	r := model.Rider{ID: "abc1234567", FirstName: "Ann", Email: gofakeit.Email()}

	var sent model.Message
	mailer.On("Send", mock.Anything, mock.AnythingOfType("model.Message")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(model.Message) }).
		Return(nil).Once()

	require.NoError(t, svc.WelcomeRider(context.Background(), r))

	assert.Equal(t, r.Email, sent.To)
	assert.Equal(t, "welcome", sent.Template)
	assert.Equal(t, "Triple Crown for Heart: Donation Page", sent.Subject)
	assert.Contains(t, sent.Body, "Hi Ann,")
	assert.Contains(t, sent.Body, pageURL+"#abc1234567")
}

func TestService_ThankDonor(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	d := model.Donation{
		ID:          "d1",
		RecipientID: "rider00001",
		DonorName:   "Bob Smith",
		Amount:      decimal.RequireFromString("10"),
		Currency:    "CAD",
		Message:     "go fast",
	}

	tests := []struct {
		name   string
		email  string
		wantTo string
	}{
		{name: "donor address", email: "bob@example.org", wantTo: "bob@example.org"},
		{name: "falls back to admin", email: "", wantTo: "admin@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mailer := mocks.NewMockMailer(t)
			svc, err := NewNotificationService(mailer, nil, pageURL, "admin@example.org")
			require.NoError(t, err)

			var sent model.Message
			mailer.On("Send", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { sent = args.Get(1).(model.Message) }).
				Return(nil).Once()

			require.NoError(t, svc.ThankDonor(context.Background(), d, tt.email))

			assert.Equal(t, tt.wantTo, sent.To)
			assert.Contains(t, sent.Body, "Hi Bob Smith,")
			assert.Contains(t, sent.Body, "10.00 CAD")
			assert.Contains(t, sent.Body, pageURL+"#rider00001")
			assert.Contains(t, sent.Body, `"go fast"`)
		})
	}
}

func TestService_RegistrationReceipt(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	mailer := mocks.NewMockMailer(t)
	svc, err := NewNotificationService(mailer, nil, pageURL, "")
	require.NoError(t, err)

	p := model.Payment{
		ID:       "p1",
		Item:     "registration",
		Options:  map[string]string{"jersey": "M"},
		Amount:   decimal.RequireFromString("75"),
		Currency: "CAD",
	}

	t.Run("sends receipt", func(t *testing.T) {
		var sent model.Message
		mailer.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(model.Message) }).
			Return(nil).Once()

		require.NoError(t, svc.RegistrationReceipt(context.Background(), p, "payer@example.org"))
		assert.Contains(t, sent.Body, "Hi,")
		assert.Contains(t, sent.Body, "75.00 CAD for registration")
		assert.Contains(t, sent.Body, "jersey: M")
	})

	t.Run("no recipient is skipped", func(t *testing.T) {
		require.NoError(t, svc.RegistrationReceipt(context.Background(), p, ""))
	})

	t.Run("mailer failure is returned", func(t *testing.T) {
		mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		err := svc.RegistrationReceipt(context.Background(), p, "payer@example.org")
		require.Error(t, err)
	})
}

func TestService_Notify(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	tests := []struct {
		name    string
		msg     model.Message
		sendErr error
		sends   bool
		wantErr bool
	}{
		{name: "delivers a plain message", msg: model.Message{To: gofakeit.Email(), Subject: "Hi", Body: "Thanks"}, sends: true},
		{name: "skips a message without recipient", msg: model.Message{Subject: "Hi"}},
		{name: "returns delivery failures", msg: model.Message{To: gofakeit.Email()}, sendErr: errors.New("mailgun down"), sends: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mailer := mocks.NewMockMailer(t)
			svc, err := NewNotificationService(mailer, nil, pageURL, "")
			require.NoError(t, err)

			if tt.sends {
				mailer.On("Send", mock.Anything, tt.msg).Return(tt.sendErr).Once()
			}

			err = svc.Notify(context.Background(), tt.msg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if !tt.sends {
				mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_AlertOperator(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	alerter := mocks.NewMockAlerter(t)
	svc, err := NewNotificationService(mocks.NewMockMailer(t), alerter, pageURL, "")
	require.NoError(t, err)

	alerter.On("Alert", mock.Anything, "ledger write failed").Return(errors.New("telegram down")).Once()

	assert.NotPanics(t, func() { svc.AlertOperator(context.Background(), "ledger write failed") })

	noAlerter, err := NewNotificationService(mocks.NewMockMailer(t), nil, pageURL, "")
	require.NoError(t, err)
	noAlerter.AlertOperator(context.Background(), "ignored")
}
