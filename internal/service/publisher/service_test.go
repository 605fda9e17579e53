package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/internal/service/mocks"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

func TestService_OnCommit(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	rider := model.Rider{ID: "r1", FirstName: "Ann", Email: "ann@example.org"}
	donation := model.Donation{ID: "d1", RecipientID: "r1", Amount: decimal.RequireFromString("10"), Currency: "CAD"}
	payment := model.Payment{ID: "p1", Item: "registration", Amount: decimal.RequireFromString("75")}

	tests := []struct {
		name     string
		appended []model.Entity
		want     []string
	}{
		{name: "rider", appended: []model.Entity{rider}, want: []string{RidersDocument}},
		{name: "donation", appended: []model.Entity{donation}, want: []string{RidersDocument, DonationsDocument}},
		{name: "payment only", appended: []model.Entity{payment}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := model.NewLedger()
			for _, e := range tt.appended {
				require.NoError(t, l.Append(e))
			}

			pub := mocks.NewMockPublisher(t)
			var published []string
			for _, name := range tt.want {
				pub.On("Publish", mock.Anything, name, "application/json", mock.Anything).
					Run(func(args mock.Arguments) {
						published = append(published, args.String(1))
						assert.NotContains(t, string(args.Get(3).([]byte)), "ann@example.org")
					}).
					Return(nil).Once()
			}

			require.NoError(t, NewPublisherService(pub).OnCommit(context.Background(), tt.appended, l))
			assert.Equal(t, tt.want, published)
		})
	}
}

func TestService_OnCommit_PublishError(t *testing.T) {
	t.Parallel()
	logger.SetNopLogger()

	pub := mocks.NewMockPublisher(t)
	pub.On("Publish", mock.Anything, RidersDocument, mock.Anything, mock.Anything).
		Return(errors.New("access denied")).Once()

	r := model.Rider{ID: "r1"}
	l := model.NewLedger()
	require.NoError(t, l.Append(r))

	err := NewPublisherService(pub).OnCommit(context.Background(), []model.Entity{r}, l)
	require.Error(t, err)
}
