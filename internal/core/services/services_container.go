package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Options are applied to every service, so a single clock stamps all of them.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, repos.AccountStructureRepo, repos.JournalEntryRepo, options...),
		JournalEntry: NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, options...),
		AutoJournal:  NewAutoJournalService(repos.PatternRepo, repos.ExecutionLogRepo, repos.AccountRepo, repos.JournalEntryRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)
	_ portssvc.AutoJournalSvcFacade  = (*autoJournalService)(nil)
)
