package service

import (
	"context"
	"sort"

	"github.com/Dan9191/money-service/internal/analytics"
	"github.com/Dan9191/money-service/internal/models"
	"github.com/Dan9191/money-service/internal/notify"
	"golang.org/x/sync/errgroup"
)

func (s *Service) SpendingTrend(ctx context.Context, user *models.User) ([]models.TrendPoint, error) {
	txs, err := s.repo.ListTransactions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return analytics.SpendingTrend(txs, s.Now()), nil
}

func (s *Service) CategoryBreakdown(ctx context.Context, user *models.User) ([]models.CategorySlice, error) {
	txs, err := s.repo.ListTransactions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryBreakdown(txs), nil
}

// AgeOfMoney matches incomes against expenses in insertion (id) order.
func (s *Service) AgeOfMoney(ctx context.Context, user *models.User) (models.AgeOfMoney, error) {
	txs, err := s.repo.ListTransactions(ctx, user.ID)
	if err != nil {
		return models.AgeOfMoney{}, err
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return analytics.AgeOfMoney(txs), nil
}

func (s *Service) NetWorthHistory(ctx context.Context, user *models.User) ([]models.NetWorthSnapshot, error) {
	return s.repo.ListSnapshots(ctx, user.ID)
}

// RecordNetWorth computes the current position and appends a snapshot dated
// today. Every call appends; same-day snapshots are not merged.
func (s *Service) RecordNetWorth(ctx context.Context, user *models.User) (models.NetWorth, error) {
	var (
		accounts    []models.Account
		investments []models.Investment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.repo.ListAccounts(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		investments, err = s.repo.ListInvestments(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.NetWorth{}, err
	}

	nw := analytics.ComputeNetWorth(accounts, investments)
	snapshot := &models.NetWorthSnapshot{
		UserID:      user.ID,
		Date:        s.Today(),
		Assets:      nw.Assets,
		Liabilities: nw.Liabilities,
		NetWorth:    nw.NetWorth,
		CreatedAt:   s.Now(),
	}
	if err := s.repo.CreateSnapshot(ctx, snapshot); err != nil {
		return models.NetWorth{}, err
	}

	s.log.WithField("user_id", user.ID).Infof("Net worth snapshot recorded: %.2f", nw.NetWorth)
	return nw, nil
}

func (s *Service) Portfolio(ctx context.Context, user *models.User) (models.Portfolio, error) {
	investments, err := s.repo.ListInvestments(ctx, user.ID)
	if err != nil {
		return models.Portfolio{}, err
	}
	return analytics.SummarizeInvestments(investments), nil
}

// Notifications derives bill and budget alerts for today.
func (s *Service) Notifications(ctx context.Context, user *models.User) ([]models.Notification, error) {
	var (
		bills   []models.Bill
		budgets []models.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bills, err = s.repo.ListBills(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.repo.ListBudgets(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return notify.Derive(bills, budgets, s.Now()), nil
}
