package repositories

// LedgerStore is the full persistence boundary used by the ledger services.
type LedgerStore interface {
	AccountReader
	InvoiceReader
	PaymentReader
	JournalReader
	TransactionManager
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo AccountReader
	InvoiceRepo InvoiceReader
	PaymentRepo PaymentReader
	JournalRepo JournalReader
	TxManager   TransactionManager
}

// NewRepositoryProviderFromStore exposes every facet of store through the provider.
func NewRepositoryProviderFromStore(store LedgerStore) RepositoryProvider {
	return RepositoryProvider{
		AccountRepo: store,
		InvoiceRepo: store,
		PaymentRepo: store,
		JournalRepo: store,
		TxManager:   store,
	}
}
