package converter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrabatch/hydrabatch/internal/model"
	"github.com/hydrabatch/hydrabatch/internal/repo"
)

type fakeBatchRepo struct {
	saveErr error
	saved   []model.BatchChange
}

func (f *fakeBatchRepo) Save(_ context.Context, b model.BatchChange) (model.BatchChange, error) {
	if f.saveErr != nil {
		return model.BatchChange{}, f.saveErr
	}
	f.saved = append(f.saved, b)
	return b, nil
}

func (f *fakeBatchRepo) GetBatchChange(_ context.Context, id string) (model.BatchChange, bool, error) {
	for _, b := range f.saved {
		if b.ID == id {
			return b, true, nil
		}
	}
	return model.BatchChange{}, false, nil
}

func (f *fakeBatchRepo) GetBatchChangeSummariesByUserID(_ context.Context, userID string, startFrom, maxItems int) (model.BatchChangeSummaryList, error) {
	return model.BatchChangeSummaryList{}, nil
}

var _ repo.BatchChangeRepository = (*fakeBatchRepo)(nil)

func TestSendBatchForProcessingPersistsAndEnqueuesEveryChange(t *testing.T) {
	batches := &fakeBatchRepo{}
	conv := NewAsyncConverter(batches, 2)

	batch := model.BatchChange{
		ID: "b1",
		Changes: []model.SingleChange{
			{ZoneID: "z1", RelativeName: "www", Input: model.ChangeInput{Type: model.RecordTypeA}},
			{ZoneID: "z1", RelativeName: "api", Input: model.ChangeInput{Type: model.RecordTypeA}},
		},
	}
	zones := repo.NewExistingZones([]model.Zone{{ID: "z1", Name: "example.com."}})

	result, err := conv.SendBatchForProcessing(context.Background(), batch, zones, repo.ExistingRecordSets{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Enqueued)
	assert.Len(t, batches.saved, 1)
}

func TestSendBatchForProcessingPropagatesSaveError(t *testing.T) {
	batches := &fakeBatchRepo{saveErr: errors.New("disk full")}
	conv := NewAsyncConverter(batches, 2)

	_, err := conv.SendBatchForProcessing(context.Background(), model.BatchChange{ID: "b1"}, repo.ExistingZones{}, repo.ExistingRecordSets{})
	require.Error(t, err)
}
