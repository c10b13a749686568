package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/storage"
	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite
	ctx  context.Context
	repo *Repository
	stop func()
	at   time.Time
}

func (s *RepositorySuite) SetupTest() {
	db, err := storage.Open(storage.DriverSQLite, ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(storage.Migrate(db, storage.DriverSQLite, ":memory:"))
	s.stop = func() { db.Close() }
	s.ctx = context.Background()
	s.repo = NewRepository(db)
	s.at = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) TearDownTest() {
	s.stop()
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) newUser(name string) int64 {
	u := &models.User{Username: name, PasswordHash: "hash", CreatedAt: s.at}
	s.Require().NoError(s.repo.CreateUser(s.ctx, u))
	return u.ID
}

func (s *RepositorySuite) newTransaction(userID int64, amount float64, at time.Time) int64 {
	t := &models.Transaction{UserID: userID, Type: models.TypeExpense, Category: "Food", Amount: amount, Merchant: "Cafe", Date: at.Format("2006-01-02"), CreatedAt: at}
	s.Require().NoError(s.repo.CreateTransaction(s.ctx, t))
	return t.ID
}

func (s *RepositorySuite) TestCreateUserDuplicate() {
	s.newUser("alice")
	err := s.repo.CreateUser(s.ctx, &models.User{Username: "alice", PasswordHash: "x", CreatedAt: s.at})
	s.ErrorIs(err, ErrDuplicate)

	_, err = s.repo.FindUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestListTransactionsNewestFirst() {
	userID := s.newUser("alice")
	first := s.newTransaction(userID, 1, s.at)
	second := s.newTransaction(userID, 2, s.at.Add(time.Hour))
	third := s.newTransaction(userID, 3, s.at)

	txs, err := s.repo.ListTransactions(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal([]int64{second, third, first}, []int64{txs[0].ID, txs[1].ID, txs[2].ID})
	s.True(txs[0].CreatedAt.Equal(s.at.Add(time.Hour)))
}

func (s *RepositorySuite) TestUpdateIsScopedToOwner() {
	alice, bob := s.newUser("alice"), s.newUser("bob")
	id := s.newTransaction(alice, 10, s.at)

	err := s.repo.UpdateTransaction(s.ctx, id, bob, models.TransactionPatch{Amount: models.Some(99.0)})
	s.ErrorIs(err, ErrNotFound)

	owner, err := s.repo.OwnerOf(s.ctx, Transactions, id)
	s.Require().NoError(err)
	s.Equal(alice, owner)

	s.Require().NoError(s.repo.UpdateTransaction(s.ctx, id, alice, models.TransactionPatch{Category: models.Some("Dining")}))
	txs, err := s.repo.ListTransactions(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal("Dining", txs[0].Category)
	s.Equal(10.0, txs[0].Amount)

	s.ErrorIs(s.repo.Delete(s.ctx, Transactions, id, bob), ErrNotFound)
	s.NoError(s.repo.Delete(s.ctx, Transactions, id, alice))
	_, err = s.repo.OwnerOf(s.ctx, Transactions, id)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositorySuite) TestEmptyPatchChecksExistence() {
	alice := s.newUser("alice")
	s.ErrorIs(s.repo.UpdateGoal(s.ctx, 42, alice, models.GoalPatch{}), ErrNotFound)
}

func (s *RepositorySuite) TestProfileNullClears() {
	alice := s.newUser("alice")
	u, err := s.repo.UpdateProfile(s.ctx, alice, models.ProfilePatch{Bio: models.Some("hi"), Email: models.Some("a@b.c")})
	s.Require().NoError(err)
	s.Require().NotNil(u.Bio)
	s.Equal("hi", *u.Bio)

	u, err = s.repo.UpdateProfile(s.ctx, alice, models.ProfilePatch{Bio: models.Null[string]()})
	s.Require().NoError(err)
	s.Nil(u.Bio)
	s.Require().NotNil(u.Email)

	users, err := s.repo.ListUsersWithEmail(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *RepositorySuite) TestBillToggleAndOverdue() {
	alice := s.newUser("alice")
	bill := &models.Bill{UserID: alice, Name: "Water", Amount: 25, DueDate: "2024-04-20", Status: models.BillPending}
	s.Require().NoError(s.repo.CreateBill(s.ctx, bill))
	undated := &models.Bill{UserID: alice, Name: "Misc", DueDate: "soon", Status: models.BillPending}
	s.Require().NoError(s.repo.CreateBill(s.ctx, undated))

	n, err := s.repo.MarkOverdueBills(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.EqualValues(1, n)

	state, err := s.repo.UpdateBill(s.ctx, bill.ID, alice, models.BillPatch{TogglePaid: models.Some(json.RawMessage("true"))})
	s.Require().NoError(err)
	s.Equal(models.BillPaid, state.Status)
	s.False(state.Auto)
}

func (s *RepositorySuite) TestApplyRecurrenceIsGuarded() {
	alice := s.newUser("alice")
	rt := &models.RecurringTransaction{
		UserID: alice, Type: models.TypeExpense, Category: "Rent", Merchant: "Landlord", Amount: 500,
		Frequency: models.FrequencyMonthly, StartDate: "2024-04-01", NextDate: "2024-04-01", Active: true, CreatedAt: s.at,
	}
	s.Require().NoError(s.repo.CreateRecurring(s.ctx, rt))

	due, err := s.repo.ListDueRecurring(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Require().Len(due, 1)

	occ := []models.Transaction{
		{UserID: alice, Type: rt.Type, Category: rt.Category, Merchant: rt.Merchant, Amount: rt.Amount, Date: "2024-04-01", CreatedAt: s.at},
		{UserID: alice, Type: rt.Type, Category: rt.Category, Merchant: rt.Merchant, Amount: rt.Amount, Date: "2024-05-01", CreatedAt: s.at},
	}
	s.Require().NoError(s.repo.ApplyRecurrence(s.ctx, due[0], occ, "2024-06-01", true))
	s.ErrorIs(s.repo.ApplyRecurrence(s.ctx, due[0], occ, "2024-06-01", true), ErrNotFound)

	txs, err := s.repo.ListTransactions(s.ctx, alice)
	s.Require().NoError(err)
	s.Len(txs, 2)

	due, err = s.repo.ListDueRecurring(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Empty(due)
}

func (s *RepositorySuite) TestSnapshotsLatestFirst() {
	alice := s.newUser("alice")
	for _, date := range []string{"2024-04-01", "2024-05-01", "2024-05-01"} {
		s.Require().NoError(s.repo.CreateSnapshot(s.ctx, &models.NetWorthSnapshot{UserID: alice, Date: date, CreatedAt: s.at}))
	}
	snaps, err := s.repo.ListSnapshots(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(snaps, 3)
	s.Equal("2024-05-01", snaps[0].Date)
	s.Greater(snaps[0].ID, snaps[1].ID)
	s.Equal("2024-04-01", snaps[2].Date)
}

func (s *RepositorySuite) TestPublicTemplatesSeeded() {
	templates, err := s.repo.ListPublicTemplates(s.ctx)
	s.Require().NoError(err)
	s.Len(templates, 5)
	for _, t := range templates {
		s.NotEmpty(t.Categories)
	}
}
