// Package batchservice implements C8, the batch service orchestrator: the
// single entry point that sequences C3 through C7 in the fixed pipeline
// order the specification requires (size gate, per-change validation,
// zone discovery, record-set fetch, contextual validation, assembly,
// conversion) and exposes the three public operations the API layer
// calls through.
package batchservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hydrabatch/hydrabatch/internal/authz"
	"github.com/hydrabatch/hydrabatch/internal/batchassembler"
	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/converter"
	"github.com/hydrabatch/hydrabatch/internal/helpers"
	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/repo"
	"github.com/hydrabatch/hydrabatch/internal/validation"
	"github.com/hydrabatch/hydrabatch/internal/zonediscovery"
)

// Service is the batch change orchestrator.
type Service struct {
	cfg        *config.Config
	zones      repo.ZoneRepository
	recordSets repo.RecordSetRepository
	batches    repo.BatchChangeRepository
	converter  converter.Converter
}

// New builds a Service wired to its collaborators.
func New(
	cfg *config.Config,
	zones repo.ZoneRepository,
	recordSets repo.RecordSetRepository,
	batches repo.BatchChangeRepository,
	conv converter.Converter,
) *Service {
	return &Service{cfg: cfg, zones: zones, recordSets: recordSets, batches: batches, converter: conv}
}

// ApplyBatchChange runs the full pipeline over input and returns either
// the persisted BatchChange or the interleaved InvalidBatchChangeResponses,
// or a BatchError for a batch-level precondition failure (empty/too-large).
func (s *Service) ApplyBatchChange(
	ctx context.Context,
	principal authz.Principal,
	input model.BatchChangeInput,
) (*model.BatchChange, *model.InvalidBatchChangeResponses, error) {
	if len(input.Changes) == 0 {
		return nil, nil, model.BatchChangeIsEmpty()
	}
	if len(input.Changes) > s.cfg.Batch.ChangeLimit {
		return nil, nil, model.BatchChangeIsTooLarge(s.cfg.Batch.ChangeLimit)
	}

	slog.Info("batch change intake started", "user_id", principal.UserID, "change_count", len(input.Changes))

	inputValidated := validation.ValidateInput(s.cfg, input.Changes)
	inputValidated = validation.CheckRecordNameNotUniqueInBatch(inputValidated)

	discovered, existingZones, err := zonediscovery.Discover(ctx, s.zones, inputValidated)
	if err != nil {
		slog.Error("zone discovery failed", "user_id", principal.UserID, "error", err)
		return nil, nil, fmt.Errorf("batchservice: zone discovery: %w", err)
	}

	existingRecordSets, err := s.fetchExistingRecordSets(ctx, discovered)
	if err != nil {
		slog.Error("record set fetch failed", "user_id", principal.UserID, "error", err)
		return nil, nil, fmt.Errorf("batchservice: record set fetch: %w", err)
	}

	contextValidated := validation.ValidateContext(s.cfg, principal, discovered, existingRecordSets)

	batchChange, invalid := batchassembler.Assemble(contextValidated, input.Changes, principal.UserID, principal.UserName, input.Comments)
	if invalid != nil {
		slog.Warn("batch change rejected", "user_id", principal.UserID, "change_count", len(input.Changes))
		return nil, invalid, nil
	}

	result, err := s.converter.SendBatchForProcessing(ctx, batchChange, existingZones, existingRecordSets)
	if err != nil {
		slog.Error("batch conversion failed", "batch_id", batchChange.ID, "user_id", principal.UserID, "error", err)
		return nil, nil, fmt.Errorf("batchservice: conversion: %w", err)
	}

	slog.Info("batch change accepted", "batch_id", result.BatchChange.ID, "user_id", principal.UserID, "change_count", result.Enqueued)
	return &result.BatchChange, nil, nil
}

// fetchExistingRecordSets computes the deduplicated set of (zoneId, name)
// pairs across every successfully discovered change and fetches each
// concurrently, per §5's "(b) the per-(zoneId, name) record-set lookups
// run concurrently across the deduplicated set."
func (s *Service) fetchExistingRecordSets(
	ctx context.Context,
	discovered model.ValidatedBatch[model.ChangeForValidation],
) (repo.ExistingRecordSets, error) {
	keys := make(map[model.RecordSetKey]bool)
	for _, r := range discovered.Results {
		cfv, ok := r.Value()
		if !ok {
			continue
		}
		keys[model.RecordSetKey{ZoneID: cfv.Zone.ID, Name: cfv.RelativeName}] = true
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type fetchResult struct {
		key  model.RecordSetKey
		sets []model.RecordSet
		err  error
	}
	resultsCh := make(chan fetchResult, len(keys))

	for key := range keys {
		key := key
		go func() {
			sets, err := s.recordSets.GetRecordSetsByName(ctx, key.ZoneID, key.Name)
			resultsCh <- fetchResult{key: key, sets: sets, err: err}
		}()
	}

	fetched := make(map[model.RecordSetKey][]model.RecordSet, len(keys))
	for range keys {
		r := <-resultsCh
		if r.err != nil {
			cancel()
			return repo.ExistingRecordSets{}, r.err
		}
		fetched[r.key] = r.sets
	}

	return repo.NewExistingRecordSets(fetched), nil
}

// GetBatchChange loads a batch change by id, enforcing view authorization.
func (s *Service) GetBatchChange(ctx context.Context, principal authz.Principal, id string) (model.BatchChange, error) {
	batch, found, err := s.batches.GetBatchChange(ctx, id)
	if err != nil {
		return model.BatchChange{}, fmt.Errorf("batchservice: get batch change %s: %w", id, err)
	}
	if !found {
		return model.BatchChange{}, model.BatchChangeNotFound(id)
	}
	if !authz.CanViewBatchChange(principal, batch.UserID) {
		return model.BatchChange{}, model.UserNotAuthorizedToView()
	}
	return batch, nil
}

// ListBatchChangeSummaries lists the caller's batches, clamping maxItems
// to the configured ceiling via the teacher's helpers.ClampInt.
func (s *Service) ListBatchChangeSummaries(
	ctx context.Context,
	principal authz.Principal,
	startFrom, maxItems int,
) (model.BatchChangeSummaryList, error) {
	if maxItems <= 0 {
		maxItems = 100
	}
	maxItems = helpers.ClampInt(maxItems, 1, s.cfg.Batch.MaxSummaryPageSize)

	list, err := s.batches.GetBatchChangeSummariesByUserID(ctx, principal.UserID, startFrom, maxItems)
	if err != nil {
		return model.BatchChangeSummaryList{}, fmt.Errorf("batchservice: list batch change summaries: %w", err)
	}
	return list, nil
}
