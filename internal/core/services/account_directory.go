package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
)

// staticAccountDirectory serves a fixed chart held in memory.
type staticAccountDirectory struct {
	byCode  map[string]domain.Account
	ordered []domain.Account
}

// NewStaticAccountDirectory creates a directory over a fixed chart of accounts.
func NewStaticAccountDirectory(accounts []domain.Account) portssvc.AccountDirectory {
	d := &staticAccountDirectory{
		byCode:  make(map[string]domain.Account, len(accounts)),
		ordered: slices.Clone(accounts),
	}
	slices.SortFunc(d.ordered, func(a, b domain.Account) int { return strings.Compare(a.Code, b.Code) })
	for _, acc := range accounts {
		d.byCode[acc.Code] = acc
	}
	return d
}

func (d *staticAccountDirectory) Lookup(_ context.Context, code string) (domain.Account, error) {
	acc, ok := d.byCode[code]
	if !ok {
		return domain.Account{}, &apperrors.ConfigurationError{AccountCode: code}
	}
	return acc, nil
}

func (d *staticAccountDirectory) ListAccounts(_ context.Context) ([]domain.Account, error) {
	return slices.Clone(d.ordered), nil
}

// repoAccountDirectory reads the chart from the store and caches resolved accounts.
// Accounts are never edited in place, so cached entries do not go stale.
type repoAccountDirectory struct {
	BaseService
	accountRepo portsrepo.AccountReader

	mu    sync.RWMutex
	cache map[string]domain.Account
}

// NewAccountDirectory creates a directory backed by the account repository.
func NewAccountDirectory(accountRepo portsrepo.AccountReader) portssvc.AccountDirectory {
	return &repoAccountDirectory{
		accountRepo: accountRepo,
		cache:       make(map[string]domain.Account),
	}
}

// Ensure both directories implement the AccountDirectory interface
var (
	_ portssvc.AccountDirectory = (*staticAccountDirectory)(nil)
	_ portssvc.AccountDirectory = (*repoAccountDirectory)(nil)
)

func (d *repoAccountDirectory) Lookup(ctx context.Context, code string) (domain.Account, error) {
	d.mu.RLock()
	acc, ok := d.cache[code]
	d.mu.RUnlock()
	if ok {
		return acc, nil
	}

	found, err := d.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			cfgErr := &apperrors.ConfigurationError{AccountCode: code}
			d.LogError(ctx, cfgErr, "Required account missing from chart", slog.String("account_code", code))
			return domain.Account{}, cfgErr
		}
		d.LogError(ctx, err, "Failed to look up account", slog.String("account_code", code))
		return domain.Account{}, fmt.Errorf("failed to look up account %s: %w", code, err)
	}

	d.mu.Lock()
	d.cache[code] = *found
	d.mu.Unlock()
	return *found, nil
}

func (d *repoAccountDirectory) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := d.accountRepo.ListAccounts(ctx)
	if err != nil {
		d.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// lookupAccounts resolves codes in order, stopping at the first missing one.
func lookupAccounts(ctx context.Context, dir portssvc.AccountDirectory, codes ...string) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(codes))
	for _, code := range codes {
		acc, err := dir.Lookup(ctx, code)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
