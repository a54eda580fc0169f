package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

var (
	ErrImbalancedEntry = errors.New("entry debits and credits do not balance")
	ErrNoPostings      = errors.New("entry must have at least one posting")
	ErrMixedPosting    = errors.New("posting must carry exactly one of debit or credit")
	ErrUnknownAccount  = errors.New("posting references unknown account")
	ErrAlreadyVoided   = errors.New("entry is already voided")
)

// journalService is the posting engine: it owns every write into the ledger.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validatePostings runs the posting-level checks in contract order: postings
// non-empty, accounts exist, exactly one side set, totals balanced.
func (s *journalService) validatePostings(ctx context.Context, inputs []dto.PostingInput) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(inputs) == 0 {
		return decimal.Zero, decimal.Zero, ErrNoPostings
	}

	codes := make([]string, 0, len(inputs))
	for _, in := range inputs {
		codes = append(codes, in.AccountCode)
	}
	accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, uniqueStrings(codes))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		if _, found := accountsMap[code]; !found {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownAccount, code)
		}
	}

	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, in := range inputs {
		hasDebit := in.Debit.IsPositive()
		hasCredit := in.Credit.IsPositive()
		if hasDebit == hasCredit || in.Debit.IsNegative() || in.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: account %s debit=%s credit=%s", ErrMixedPosting, in.AccountCode, in.Debit, in.Credit)
		}
		totalDebit = totalDebit.Add(in.Debit)
		totalCredit = totalCredit.Add(in.Credit)
	}

	if !accounting.Balanced(totalDebit, totalCredit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: debits %s, credits %s", ErrImbalancedEntry, totalDebit, totalCredit)
	}

	return totalDebit, totalCredit, nil
}

// PostEntry validates and atomically persists a balanced journal entry with
// its postings. All validation happens before any write; a failed save
// leaves zero rows behind.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totalDebit, totalCredit, err := s.validatePostings(ctx, req.Postings)
	if err != nil {
		return nil, err
	}

	entryType := domain.EntryType(req.Type)
	if req.Type == "" {
		entryType = domain.EntryManual
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        req.Date,
		Type:        entryType,
		Description: req.Description,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		ActorID:     actorID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: actorID,
		},
	}

	postings := make([]domain.Posting, len(req.Postings))
	for i, in := range req.Postings {
		postings[i] = domain.Posting{
			PostingID:    uuid.NewString(),
			EntryID:      entryID,
			AccountCode:  in.AccountCode,
			Detail:       in.Detail,
			Debit:        in.Debit,
			Credit:       in.Credit,
			ThirdPartyID: in.ThirdPartyID,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, postings); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("type", string(entryType)),
		slog.String("total", totalDebit.String()),
	)
	return &entry, nil
}

// GetEntry retrieves the entry header and its postings.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	postings, err := s.journalRepo.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch postings for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve postings for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Postings = postings

	return entry, nil
}

// ListEntries retrieves a date-cursor page of entry headers, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// VoidEntry marks an entry and its postings voided. Voided entries drop out
// of every report; the rows themselves are never deleted.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	err := s.journalRepo.VoidEntry(ctx, entryID, actorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: %s", ErrAlreadyVoided, entryID)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to void entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
