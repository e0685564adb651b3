package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/ticket-tournament/models"
)

type prizeFixture struct {
	tournaments *FakeTournamentRepository
	tickets     *FakeTicketRepository
	prizes      *FakePrizeRepository
	players     *FakeAccountRepository
	notifier    *FakeNotifier
	svc         PrizeService
}

func newPrizeFixture(tickets []models.Ticket, prizes ...models.Prize) *prizeFixture {
	f := &prizeFixture{
		tournaments: NewFakeTournamentRepository(models.Tournament{ID: 1, Name: "Spring Cup", Slug: "spring-cup", Status: models.StatusActive}),
		tickets:     NewFakeTicketRepository(tickets...),
		prizes:      NewFakePrizeRepository(prizes...),
		players: NewFakeAccountRepository(models.RolePlayer,
			models.Account{ID: 7, Name: "Ann", Email: "ann@example.com"},
			models.Account{ID: 8, Name: "Bob", Email: "bob@example.com"},
		),
		notifier: &FakeNotifier{},
	}
	f.svc = NewPrizeService(f.tournaments, f.tickets, f.prizes, f.players, f.notifier, nil, discardLogger())
	return f
}

// три билета: 50, 50, 30
func threeTickets() []models.Ticket {
	return []models.Ticket{
		{ID: 1, TournamentID: 1, TicketNumber: "T1", PlayerID: intPtr(7), TotalPoints: 50},
		{ID: 2, TournamentID: 1, TicketNumber: "T2", PlayerID: intPtr(8), TotalPoints: 50},
		{ID: 3, TournamentID: 1, TicketNumber: "T3", TotalPoints: 30},
	}
}

func winnersOf(t *testing.T, repo *FakePrizeRepository) map[models.PrizeType][]int {
	t.Helper()
	prizes, err := repo.ListByTournament(context.Background(), nil, 1)
	require.NoError(t, err)
	out := make(map[models.PrizeType][]int, len(prizes))
	for _, p := range prizes {
		out[p.PrizeType] = p.WinnerTicketIDs
	}
	return out
}

func TestComputePrizes_Rules(t *testing.T) {
	f := newPrizeFixture(threeTickets(),
		models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest},
		models.Prize{TournamentID: 1, PrizeType: models.PrizeSecondHighest},
		models.Prize{TournamentID: 1, PrizeType: models.PrizeLowest},
		models.Prize{TournamentID: 1, PrizeType: "mystery"},
	)

	n, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	want := map[models.PrizeType][]int{
		models.PrizeHighest:       {1, 2},
		models.PrizeSecondHighest: {1, 2},
		models.PrizeLowest:        {3},
		"mystery":                 {1, 2},
	}
	if diff := cmp.Diff(want, winnersOf(t, f.prizes)); diff != "" {
		t.Errorf("winners mismatch (-want +got):\n%s", diff)
	}

	for _, tk := range f.tickets.Snapshot() {
		assert.True(t, tk.IsWinner, "ticket %d", tk.ID)
	}
}

func TestComputePrizes_SecondHighestDistinct(t *testing.T) {
	f := newPrizeFixture([]models.Ticket{
		{ID: 1, TournamentID: 1, TotalPoints: 90},
		{ID: 2, TournamentID: 1, TotalPoints: 40},
		{ID: 3, TournamentID: 1, TotalPoints: 40},
		{ID: 4, TournamentID: 1, TotalPoints: 10},
	}, models.Prize{TournamentID: 1, PrizeType: models.PrizeSecondHighest})

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, winnersOf(t, f.prizes)[models.PrizeSecondHighest])

	snap := f.tickets.Snapshot()
	assert.False(t, snap[0].IsWinner)
	assert.False(t, snap[3].IsWinner)
}

func TestComputePrizes_SingleTicket(t *testing.T) {
	f := newPrizeFixture([]models.Ticket{{ID: 1, TournamentID: 1, TotalPoints: 12}},
		models.Prize{TournamentID: 1, PrizeType: models.PrizeSecondHighest},
		models.Prize{TournamentID: 1, PrizeType: models.PrizeLowest},
	)
	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	got := winnersOf(t, f.prizes)
	assert.Equal(t, []int{1}, got[models.PrizeSecondHighest])
	assert.Equal(t, []int{1}, got[models.PrizeLowest])
}

func TestComputePrizes_NoTickets(t *testing.T) {
	f := newPrizeFixture(nil, models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoTickets)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	assert.Zero(t, f.prizes.count("Save"))
	assert.Zero(t, f.tickets.count("MarkWinner"))
	assert.Empty(t, f.notifier.Sent)
}

func TestComputePrizes_TournamentNotFound(t *testing.T) {
	f := newPrizeFixture(threeTickets())
	_, err := f.svc.ComputePrizes(context.Background(), 42)
	require.ErrorIs(t, err, ErrTournamentNotFound)
	assert.Zero(t, f.tickets.count("ListByTournament"))
}

func TestComputePrizes_NoPrizes(t *testing.T) {
	f := newPrizeFixture(threeTickets())
	n, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, f.tickets.count("MarkWinner"))
}

func TestComputePrizes_NotifiesWinners(t *testing.T) {
	f := newPrizeFixture(threeTickets(), models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest, Amount: floatPtr(100)})

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, f.notifier.Sent, 2)
	assert.Equal(t, "ann@example.com", f.notifier.Sent[0].To)
	assert.Equal(t, "bob@example.com", f.notifier.Sent[1].To)
	assert.Contains(t, f.notifier.Sent[0].Subject, "Spring Cup")
	assert.Contains(t, f.notifier.Sent[0].Body, "T1")
	assert.Contains(t, f.notifier.Sent[0].Body, "<b>100.00</b>")
}

func TestComputePrizes_NotificationFailureIgnored(t *testing.T) {
	f := newPrizeFixture(threeTickets(), models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})
	f.notifier.NotifyFunc = func(context.Context, string, string, string) error {
		return errors.New("smtp: 421 service not available")
	}

	n, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1, 2}, winnersOf(t, f.prizes)[models.PrizeHighest])
}

func TestComputePrizes_KeepsEarlierWinnerFlag(t *testing.T) {
	tickets := threeTickets()
	tickets[2].IsWinner = true
	f := newPrizeFixture(tickets, models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, f.tickets.Snapshot()[2].IsWinner)
}

func TestComputePrizes_Recompute(t *testing.T) {
	f := newPrizeFixture(threeTickets(), models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, f.tickets.UpdateTotalPoints(context.Background(), nil, 3, 70))
	_, err = f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, winnersOf(t, f.prizes)[models.PrizeHighest])
}

func TestComputePrizes_SaveFailure(t *testing.T) {
	f := newPrizeFixture(threeTickets(), models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})
	f.prizes.SaveFunc = func(context.Context, *models.Prize) error { return errors.New("deadlock detected") }

	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Zero(t, f.tickets.count("MarkWinner"))
}

func TestCreatePrize(t *testing.T) {
	tests := []struct {
		name    string
		input   CreatePrizeInput
		wantErr error
	}{
		{"ok amount", CreatePrizeInput{TournamentID: intPtr(1), PrizeType: "highest", Amount: floatPtr(250)}, nil},
		{"ok item", CreatePrizeInput{TournamentID: intPtr(1), PrizeType: "lowest", Item: strPtr("Jersey")}, nil},
		{"missing tournament", CreatePrizeInput{PrizeType: "highest"}, ErrValidationFailed},
		{"blank type", CreatePrizeInput{TournamentID: intPtr(1), PrizeType: "  "}, ErrValidationFailed},
		{"negative amount", CreatePrizeInput{TournamentID: intPtr(1), PrizeType: "highest", Amount: floatPtr(-1)}, ErrValidationFailed},
		{"unknown tournament", CreatePrizeInput{TournamentID: intPtr(9), PrizeType: "highest"}, ErrTournamentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPrizeFixture(nil)
			prize, err := f.svc.CreatePrize(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, f.prizes.count("Create"))
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, prize.ID)
			assert.Empty(t, prize.WinnerTicketIDs)
			assert.NotNil(t, prize.WinnerTicketIDs)
		})
	}
}

func TestListPrizes_ResolvesWinners(t *testing.T) {
	f := newPrizeFixture(threeTickets(),
		models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest},
		models.Prize{TournamentID: 1, PrizeType: models.PrizeLowest},
	)
	_, err := f.svc.ComputePrizes(context.Background(), 1)
	require.NoError(t, err)

	prizes, err := f.svc.ListPrizes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, prizes, 2)

	highest := prizes[0]
	require.Len(t, highest.Winners, 2)
	require.NotNil(t, highest.Winners[0].Player)
	assert.Equal(t, "Ann", highest.Winners[0].Player.Name)
	assert.Empty(t, highest.Winners[0].Player.PasswordHash)

	lowest := prizes[1]
	require.Len(t, lowest.Winners, 1)
	assert.Nil(t, lowest.Winners[0].Player)
}

func TestListPrizes_BeforeCompute(t *testing.T) {
	f := newPrizeFixture(threeTickets(), models.Prize{TournamentID: 1, PrizeType: models.PrizeHighest})
	prizes, err := f.svc.ListPrizes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	assert.NotNil(t, prizes[0].Winners)
	assert.Empty(t, prizes[0].Winners)
	assert.Zero(t, f.tickets.count("GetByIDs"))
}
