package services

import (
	"context"
	"io"
	"strconv"

	"taskoraClient/internal/api"
	"taskoraClient/internal/listview"
	"taskoraClient/internal/models"
)

type WalletService struct {
	API *api.Client
}

func (s *WalletService) Get(ctx context.Context) (models.Wallet, error) {
	var wallet models.Wallet
	if err := s.API.Get(ctx, "/wallet", nil, &wallet); err != nil {
		return models.Wallet{}, err
	}
	return wallet, nil
}

func (s *WalletService) Transactions(ctx context.Context, f listview.Filter) (listview.Page[models.Transaction], error) {
	var page listview.Page[models.Transaction]
	if err := s.API.Get(ctx, "/wallet/transactions", f.Values(), &page); err != nil {
		return listview.Page[models.Transaction]{}, err
	}
	return page, nil
}

func (s *WalletService) Withdraw(ctx context.Context, req models.WithdrawalRequest) (models.Transaction, error) {
	if req.Amount <= 0 || req.BankAccount == "" {
		return models.Transaction{}, models.ErrEmptyField
	}
	var tx models.Transaction
	if err := s.API.Post(ctx, "/wallet/withdraw", req, &tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// UploadReceipt submits a bank-transfer receipt for a manual top-up.
func (s *WalletService) UploadReceipt(ctx context.Context, amount float64, name string, receipt io.Reader) (models.Transaction, error) {
	fields := map[string]string{
		"amount": strconv.FormatFloat(amount, 'f', 2, 64),
	}
	files := []api.File{{Field: "receipt", Name: name, Content: receipt}}

	var tx models.Transaction
	if err := s.API.PostMultipart(ctx, "/wallet/top_up", fields, files, &tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}
