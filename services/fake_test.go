package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/repositories"
)

// tracer records the sequence of method calls made to a fake. Safe for concurrent use.
type tracer struct {
	mu    sync.Mutex
	trace []string
}

func (t *tracer) record(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trace = append(t.trace, step)
}

// Trace returns a copy of the recorded calls.
func (t *tracer) Trace() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.trace))
	copy(out, t.trace)
	return out
}

func (t *tracer) count(step string) int {
	n := 0
	for _, s := range t.Trace() {
		if s == step {
			n++
		}
	}
	return n
}

// ------------------------
// Fake Score Repo
// ------------------------

type scoreKey struct{ tournamentID, teamID, round int }

// FakeScoreRepository keeps scores in memory unless a XFunc override is set.
type FakeScoreRepository struct {
	tracer
	mu     sync.Mutex
	nextID int
	scores map[scoreKey]*models.Score

	UpsertFunc       func(ctx context.Context, score *models.Score) error
	SumByTeamFunc    func(ctx context.Context, tournamentID int) ([]models.TeamTotal, error)
	SumByTeamSetFunc func(ctx context.Context, tournamentID int, teamIDs []int) ([]models.TeamTotal, error)
}

func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{scores: make(map[scoreKey]*models.Score)}
}

func (f *FakeScoreRepository) Upsert(ctx context.Context, exec repositories.SQLExecutor, score *models.Score) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, score)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scoreKey{score.TournamentID, score.TeamID, score.RoundNumber}
	if existing, ok := f.scores[key]; ok {
		existing.Points = score.Points
		existing.UpdatedAt = score.UpdatedAt
		score.ID = existing.ID
		return nil
	}
	f.nextID++
	score.ID = f.nextID
	stored := *score
	f.scores[key] = &stored
	return nil
}

func (f *FakeScoreRepository) FindOne(ctx context.Context, exec repositories.SQLExecutor, tournamentID, teamID, roundNumber int) (*models.Score, error) {
	f.record("FindOne")
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.scores[scoreKey{tournamentID, teamID, roundNumber}]
	if !ok {
		return nil, repositories.ErrScoreNotFound
	}
	out := *s
	return &out, nil
}

func (f *FakeScoreRepository) sum(tournamentID int, include func(teamID int) bool) []models.TeamTotal {
	f.mu.Lock()
	defer f.mu.Unlock()
	byTeam := make(map[int]float64)
	for k, s := range f.scores {
		if k.tournamentID == tournamentID && include(k.teamID) {
			byTeam[k.teamID] += s.Points
		}
	}
	totals := make([]models.TeamTotal, 0, len(byTeam))
	for teamID, total := range byTeam {
		totals = append(totals, models.TeamTotal{TeamID: teamID, TotalPoints: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].TeamID < totals[j].TeamID })
	return totals
}

func (f *FakeScoreRepository) SumByTeam(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.TeamTotal, error) {
	f.record("SumByTeam")
	if f.SumByTeamFunc != nil {
		return f.SumByTeamFunc(ctx, tournamentID)
	}
	return f.sum(tournamentID, func(int) bool { return true }), nil
}

func (f *FakeScoreRepository) SumByTeamSet(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, teamIDs []int) ([]models.TeamTotal, error) {
	f.record("SumByTeamSet")
	if f.SumByTeamSetFunc != nil {
		return f.SumByTeamSetFunc(ctx, tournamentID, teamIDs)
	}
	set := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	return f.sum(tournamentID, func(id int) bool { return set[id] }), nil
}

func (f *FakeScoreRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Score, error) {
	f.record("ListByTournament")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Score, 0)
	for k, s := range f.scores {
		if k.tournamentID == tournamentID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoundNumber != out[j].RoundNumber {
			return out[i].RoundNumber < out[j].RoundNumber
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

var _ repositories.ScoreRepository = (*FakeScoreRepository)(nil)

// ------------------------
// Fake Ticket Repo
// ------------------------

type FakeTicketRepository struct {
	tracer
	mu      sync.Mutex
	nextID  int
	tickets []*models.Ticket

	CreateFunc            func(ctx context.Context, ticket *models.Ticket) error
	UpdateTotalPointsFunc func(ctx context.Context, id int, total float64) error
	MarkWinnerFunc        func(ctx context.Context, id int) error
}

func NewFakeTicketRepository(seed ...models.Ticket) *FakeTicketRepository {
	f := &FakeTicketRepository{}
	for _, t := range seed {
		t := t
		if t.ID == 0 {
			f.nextID++
			t.ID = f.nextID
		} else if t.ID > f.nextID {
			f.nextID = t.ID
		}
		f.tickets = append(f.tickets, &t)
	}
	return f
}

func (f *FakeTicketRepository) get(id int) *models.Ticket {
	for _, t := range f.tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Snapshot returns copies of the stored tickets in id order.
func (f *FakeTicketRepository) Snapshot() []models.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Ticket, len(f.tickets))
	for i, t := range f.tickets {
		out[i] = *t
	}
	return out
}

func (f *FakeTicketRepository) Create(ctx context.Context, exec repositories.SQLExecutor, ticket *models.Ticket) error {
	f.record("Create")
	if f.CreateFunc != nil {
		if err := f.CreateFunc(ctx, ticket); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if ticket.PaymentRef != nil && t.PaymentRef != nil && *t.PaymentRef == *ticket.PaymentRef {
			return repositories.ErrTicketPaymentConflict
		}
	}
	f.nextID++
	ticket.ID = f.nextID
	ticket.CreatedAt = time.Now()
	stored := *ticket
	f.tickets = append(f.tickets, &stored)
	return nil
}

func (f *FakeTicketRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Ticket, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.get(id)
	if t == nil {
		return nil, repositories.ErrTicketNotFound
	}
	out := *t
	return &out, nil
}

func (f *FakeTicketRepository) GetByIDs(ctx context.Context, exec repositories.SQLExecutor, ids []int) ([]models.Ticket, error) {
	f.record("GetByIDs")
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.Ticket, 0)
	for _, t := range f.Snapshot() {
		if want[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakeTicketRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.Ticket, error) {
	f.record("ListByTournament")
	out := make([]models.Ticket, 0)
	for _, t := range f.Snapshot() {
		if t.TournamentID == tournamentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakeTicketRepository) List(ctx context.Context, filter repositories.ListTicketsFilter) ([]models.Ticket, error) {
	f.record("List")
	out := make([]models.Ticket, 0)
	for _, t := range f.Snapshot() {
		if filter.TournamentID != nil && t.TournamentID != *filter.TournamentID {
			continue
		}
		if filter.PlayerID != nil && (t.PlayerID == nil || *t.PlayerID != *filter.PlayerID) {
			continue
		}
		out = append(out, t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *FakeTicketRepository) ListRecent(ctx context.Context, limit int) ([]models.Ticket, error) {
	f.record("ListRecent")
	all := f.Snapshot()
	out := make([]models.Ticket, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (f *FakeTicketRepository) UpdateTotalPoints(ctx context.Context, exec repositories.SQLExecutor, id int, totalPoints float64) error {
	f.record("UpdateTotalPoints")
	if f.UpdateTotalPointsFunc != nil {
		if err := f.UpdateTotalPointsFunc(ctx, id, totalPoints); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.get(id)
	if t == nil {
		return repositories.ErrTicketNotFound
	}
	t.TotalPoints = totalPoints
	return nil
}

func (f *FakeTicketRepository) MarkWinner(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	f.record("MarkWinner")
	if f.MarkWinnerFunc != nil {
		if err := f.MarkWinnerFunc(ctx, id); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.get(id)
	if t == nil {
		return repositories.ErrTicketNotFound
	}
	t.IsWinner = true
	return nil
}

var _ repositories.TicketRepository = (*FakeTicketRepository)(nil)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

type FakeLeaderboardRepository struct {
	tracer
	mu      sync.Mutex
	entries map[int][]models.LeaderboardEntry

	DeleteFunc     func(ctx context.Context, tournamentID int) error
	BulkUpsertFunc func(ctx context.Context, entries []*models.LeaderboardEntry) error
}

func NewFakeLeaderboardRepository() *FakeLeaderboardRepository {
	return &FakeLeaderboardRepository{entries: make(map[int][]models.LeaderboardEntry)}
}

func (f *FakeLeaderboardRepository) DeleteByTournamentID(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	f.record("DeleteByTournamentID")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, tournamentID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, tournamentID)
	return nil
}

func (f *FakeLeaderboardRepository) BulkUpsert(ctx context.Context, exec repositories.SQLExecutor, entries []*models.LeaderboardEntry) error {
	f.record("BulkUpsert")
	if f.BulkUpsertFunc != nil {
		return f.BulkUpsertFunc(ctx, entries)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		list := f.entries[e.TournamentID]
		replaced := false
		for i := range list {
			if list[i].TeamID == e.TeamID {
				list[i] = *e
				replaced = true
			}
		}
		if !replaced {
			list = append(list, *e)
		}
		f.entries[e.TournamentID] = list
	}
	return nil
}

func (f *FakeLeaderboardRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.LeaderboardEntry, error) {
	f.record("ListByTournament")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.LeaderboardEntry, 0, len(f.entries[tournamentID]))
	for _, e := range f.entries[tournamentID] {
		e := e
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

var _ repositories.LeaderboardRepository = (*FakeLeaderboardRepository)(nil)

// ------------------------
// Fake Prize Repo
// ------------------------

type FakePrizeRepository struct {
	tracer
	mu     sync.Mutex
	nextID int
	prizes []*models.Prize

	SaveFunc func(ctx context.Context, prize *models.Prize) error
}

func NewFakePrizeRepository(seed ...models.Prize) *FakePrizeRepository {
	f := &FakePrizeRepository{}
	for _, p := range seed {
		p := p
		f.nextID++
		p.ID = f.nextID
		f.prizes = append(f.prizes, &p)
	}
	return f
}

func (f *FakePrizeRepository) Create(ctx context.Context, prize *models.Prize) error {
	f.record("Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	prize.ID = f.nextID
	stored := *prize
	f.prizes = append(f.prizes, &stored)
	return nil
}

func (f *FakePrizeRepository) GetByID(ctx context.Context, id int) (*models.Prize, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.prizes {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, repositories.ErrPrizeNotFound
}

func (f *FakePrizeRepository) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]*models.Prize, error) {
	f.record("ListByTournament")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Prize, 0)
	for _, p := range f.prizes {
		if p.TournamentID == tournamentID {
			cp := *p
			cp.WinnerTicketIDs = append([]int(nil), p.WinnerTicketIDs...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *FakePrizeRepository) Save(ctx context.Context, exec repositories.SQLExecutor, prize *models.Prize) error {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, prize)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.prizes {
		if p.ID == prize.ID {
			stored := *prize
			stored.WinnerTicketIDs = append([]int(nil), prize.WinnerTicketIDs...)
			f.prizes[i] = &stored
			return nil
		}
	}
	return repositories.ErrPrizeNotFound
}

var _ repositories.PrizeRepository = (*FakePrizeRepository)(nil)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepository struct {
	tracer
	mu          sync.Mutex
	nextID      int
	tournaments []*models.Tournament

	GetByIDFunc func(ctx context.Context, id int) (*models.Tournament, error)
	CreateFunc  func(ctx context.Context, t *models.Tournament) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func NewFakeTournamentRepository(seed ...models.Tournament) *FakeTournamentRepository {
	f := &FakeTournamentRepository{}
	for _, t := range seed {
		t := t
		if t.ID == 0 {
			f.nextID++
			t.ID = f.nextID
		} else if t.ID > f.nextID {
			f.nextID = t.ID
		}
		f.tournaments = append(f.tournaments, &t)
	}
	return f
}

func (f *FakeTournamentRepository) find(id int) *models.Tournament {
	for _, t := range f.tournaments {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *FakeTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tournaments {
		if existing.Slug == t.Slug {
			return repositories.ErrTournamentSlugConflict
		}
	}
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	stored := *t
	f.tournaments = append(f.tournaments, &stored)
	return nil
}

func (f *FakeTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.find(id)
	if t == nil {
		return nil, repositories.ErrTournamentNotFound
	}
	out := *t
	return &out, nil
}

func (f *FakeTournamentRepository) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	f.record("List")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Tournament, 0)
	for i := len(f.tournaments) - 1; i >= 0; i-- {
		t := f.tournaments[i]
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *FakeTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	f.record("Update")
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := f.find(t.ID)
	if existing == nil {
		return repositories.ErrTournamentNotFound
	}
	*existing = *t
	return nil
}

func (f *FakeTournamentRepository) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	f.record("UpdateStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := f.find(id)
	if existing == nil {
		return repositories.ErrTournamentNotFound
	}
	existing.Status = status
	return nil
}

func (f *FakeTournamentRepository) Delete(ctx context.Context, id int) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tournaments {
		if t.ID == id {
			f.tournaments = append(f.tournaments[:i], f.tournaments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTournamentNotFound
}

func (f *FakeTournamentRepository) GetTournamentsDueForCompletion(ctx context.Context, exec repositories.SQLExecutor, currentTime time.Time) ([]*models.Tournament, error) {
	f.record("GetTournamentsDueForCompletion")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Tournament
	for _, t := range f.tournaments {
		if t.Status == models.StatusActive && t.AnnouncementDate != nil && !t.AnnouncementDate.After(currentTime) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ repositories.TournamentRepository = (*FakeTournamentRepository)(nil)

// ------------------------
// Fake Team Repo
// ------------------------

type FakeTeamRepository struct {
	tracer
	mu     sync.Mutex
	nextID int
	teams  []*models.Team
}

func NewFakeTeamRepository(seed ...models.Team) *FakeTeamRepository {
	f := &FakeTeamRepository{}
	for _, t := range seed {
		t := t
		if t.ID == 0 {
			f.nextID++
			t.ID = f.nextID
		} else if t.ID > f.nextID {
			f.nextID = t.ID
		}
		f.teams = append(f.teams, &t)
	}
	return f
}

func (f *FakeTeamRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, teams []*models.Team) error {
	f.record("CreateBatch")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range teams {
		for _, existing := range f.teams {
			if existing.TournamentID == t.TournamentID && existing.SeedNumber == t.SeedNumber {
				return repositories.ErrTeamSeedConflict
			}
		}
	}
	for _, t := range teams {
		f.nextID++
		t.ID = f.nextID
		stored := *t
		f.teams = append(f.teams, &stored)
	}
	return nil
}

func (f *FakeTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	f.record("GetByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.teams {
		if t.ID == id {
			out := *t
			return &out, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *FakeTeamRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Team, error) {
	f.record("GetByIDs")
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Team, 0)
	for _, t := range f.teams {
		if want[t.ID] {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *FakeTeamRepository) Update(ctx context.Context, team *models.Team) error {
	f.record("Update")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.teams {
		if t.ID == team.ID {
			*t = *team
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

func (f *FakeTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	f.record("ListByTournament")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Team, 0)
	for _, t := range f.teams {
		if t.TournamentID == tournamentID {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SeedNumber < out[j].SeedNumber })
	return out, nil
}

var _ repositories.TeamRepository = (*FakeTeamRepository)(nil)

// ------------------------
// Fake Account Repo
// ------------------------

type FakeAccountRepository struct {
	tracer
	mu       sync.Mutex
	nextID   int
	role     models.UserRole
	accounts []*models.Account

	GetByIDFunc func(ctx context.Context, id int) (*models.Account, error)
}

func NewFakeAccountRepository(role models.UserRole, seed ...models.Account) *FakeAccountRepository {
	f := &FakeAccountRepository{role: role}
	for _, a := range seed {
		a := a
		if a.ID == 0 {
			f.nextID++
			a.ID = f.nextID
		} else if a.ID > f.nextID {
			f.nextID = a.ID
		}
		a.Role = role
		f.accounts = append(f.accounts, &a)
	}
	return f
}

func (f *FakeAccountRepository) Create(ctx context.Context, account *models.Account) error {
	f.record("Create")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == account.Email {
			return repositories.ErrAccountEmailConflict
		}
	}
	f.nextID++
	account.ID = f.nextID
	account.Role = f.role
	account.CreatedAt = time.Now()
	stored := *account
	f.accounts = append(f.accounts, &stored)
	return nil
}

func (f *FakeAccountRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.record("GetByEmail")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Account, error) {
	f.record("GetByIDs")
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Account, 0)
	for _, a := range f.accounts {
		if want[a.ID] {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *FakeAccountRepository) ListRecent(ctx context.Context, limit int) ([]models.Account, error) {
	f.record("ListRecent")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Account, 0, limit)
	for i := len(f.accounts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.accounts[i])
	}
	return out, nil
}

var _ repositories.AccountRepository = (*FakeAccountRepository)(nil)

// ------------------------
// Fake Notifier
// ------------------------

type sentMail struct {
	To, Subject, Body string
}

type FakeNotifier struct {
	mu   sync.Mutex
	Sent []sentMail

	NotifyFunc func(ctx context.Context, email, subject, body string) error
}

func (f *FakeNotifier) Notify(ctx context.Context, email, subject, body string) error {
	f.mu.Lock()
	f.Sent = append(f.Sent, sentMail{To: email, Subject: subject, Body: body})
	f.mu.Unlock()
	if f.NotifyFunc != nil {
		return f.NotifyFunc(ctx, email, subject, body)
	}
	return nil
}

var _ Notifier = (*FakeNotifier)(nil)
