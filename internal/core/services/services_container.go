package services

import (
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.LedgerStore, locker portsrepo.InvoiceLocker) *portssvc.ServiceContainer {
	posting := domain.PostingAccounts{
		Receivable: cfg.ReceivableAccountCode,
		Revenue:    cfg.RevenueAccountCode,
		TaxPayable: cfg.TaxPayableAccountCode,
		Cash:       cfg.CashAccountCode,
	}

	directory := NewAccountDirectory(store)
	ledger := NewLedgerService(store, directory, locker, WithPostingAccounts(posting))

	return &portssvc.ServiceContainer{
		Accounts:  directory,
		Invoice:   ledger,
		Payment:   ledger,
		Journal:   ledger,
		Reporting: NewReportingService(portsrepo.NewRepositoryProviderFromStore(store), WithReportingPostingAccounts(posting)),
	}
}
