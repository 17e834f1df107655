package batchservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrabatch/hydrabatch/internal/authz"
	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/converter"
	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/repo"
)

type fakeZoneRepo struct {
	byName map[string]model.Zone
}

func (f *fakeZoneRepo) GetZonesByNames(_ context.Context, names []string) ([]model.Zone, error) {
	var out []model.Zone
	for _, n := range names {
		if z, ok := f.byName[n]; ok {
			out = append(out, z)
		}
	}
	return out, nil
}

func (f *fakeZoneRepo) GetZonesByFilters(_ context.Context, _ []string) ([]model.Zone, error) {
	return nil, nil
}

type fakeRecordSetRepo struct{}

func (f *fakeRecordSetRepo) GetRecordSetsByName(_ context.Context, zoneID, name string) ([]model.RecordSet, error) {
	return nil, nil
}

type fakeBatchRepo struct {
	saved map[string]model.BatchChange
}

func newFakeBatchRepo() *fakeBatchRepo { return &fakeBatchRepo{saved: map[string]model.BatchChange{}} }

func (f *fakeBatchRepo) Save(_ context.Context, b model.BatchChange) (model.BatchChange, error) {
	f.saved[b.ID] = b
	return b, nil
}

func (f *fakeBatchRepo) GetBatchChange(_ context.Context, id string) (model.BatchChange, bool, error) {
	b, ok := f.saved[id]
	return b, ok, nil
}

func (f *fakeBatchRepo) GetBatchChangeSummariesByUserID(_ context.Context, userID string, startFrom, maxItems int) (model.BatchChangeSummaryList, error) {
	return model.BatchChangeSummaryList{StartFrom: startFrom, MaxItems: maxItems}, nil
}

type fakeConverter struct {
	sent []model.BatchChange
}

func (f *fakeConverter) SendBatchForProcessing(_ context.Context, b model.BatchChange, _ repo.ExistingZones, _ repo.ExistingRecordSets) (converter.ConversionResult, error) {
	f.sent = append(f.sent, b)
	return converter.ConversionResult{BatchChange: b, Enqueued: len(b.Changes)}, nil
}

var _ converter.Converter = (*fakeConverter)(nil)

func newService(zones *fakeZoneRepo, batches *fakeBatchRepo, conv *fakeConverter) *Service {
	cfg := &config.Config{}
	_ = cfg.Validate()
	return New(cfg, zones, &fakeRecordSetRepo{}, batches, conv)
}

func TestApplyBatchChangeRejectsEmptyBatch(t *testing.T) {
	svc := newService(&fakeZoneRepo{}, newFakeBatchRepo(), &fakeConverter{})
	_, _, err := svc.ApplyBatchChange(context.Background(), authz.Principal{UserID: "u1"}, model.BatchChangeInput{})
	require.Error(t, err)
}

func TestApplyBatchChangeRejectsTooLargeBatch(t *testing.T) {
	cfg := &config.Config{Batch: config.BatchConfig{ChangeLimit: 1}}
	require.NoError(t, cfg.Validate())
	svc := New(cfg, &fakeZoneRepo{}, &fakeRecordSetRepo{}, newFakeBatchRepo(), &fakeConverter{})

	ttl := 300
	input := model.BatchChangeInput{Changes: []model.ChangeInput{
		{InputName: "a.example.com.", Type: model.RecordTypeA, TTL: &ttl, ChangeType: model.ChangeTypeAdd, Record: model.RecordData{Address: "1.2.3.4"}},
		{InputName: "b.example.com.", Type: model.RecordTypeA, TTL: &ttl, ChangeType: model.ChangeTypeAdd, Record: model.RecordData{Address: "1.2.3.5"}},
	}}
	_, _, err := svc.ApplyBatchChange(context.Background(), authz.Principal{UserID: "u1"}, input)
	require.Error(t, err)
}

func TestGetBatchChangeEnforcesOwnership(t *testing.T) {
	batches := newFakeBatchRepo()
	batches.saved["b1"] = model.BatchChange{ID: "b1", UserID: "owner"}
	svc := newService(&fakeZoneRepo{}, batches, &fakeConverter{})

	_, err := svc.GetBatchChange(context.Background(), authz.Principal{UserID: "someone-else"}, "b1")
	require.Error(t, err)

	got, err := svc.GetBatchChange(context.Background(), authz.Principal{UserID: "owner"}, "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)
}

func TestGetBatchChangeNotFound(t *testing.T) {
	svc := newService(&fakeZoneRepo{}, newFakeBatchRepo(), &fakeConverter{})
	_, err := svc.GetBatchChange(context.Background(), authz.Principal{UserID: "u1"}, "missing")
	require.Error(t, err)
}

func TestListBatchChangeSummariesClampsMaxItems(t *testing.T) {
	svc := newService(&fakeZoneRepo{}, newFakeBatchRepo(), &fakeConverter{})
	list, err := svc.ListBatchChangeSummaries(context.Background(), authz.Principal{UserID: "u1"}, 0, 99999)
	require.NoError(t, err)
	assert.LessOrEqual(t, list.MaxItems, 100)
}
