package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/model"
)

func testCfg() *config.Config {
	return &config.Config{Batch: config.BatchConfig{MinTTL: 30, MaxTTL: 86400}}
}

func addA(name, address string, ttl int) model.ChangeInput {
	return model.ChangeInput{
		InputName:  name,
		Type:       model.RecordTypeA,
		TTL:        &ttl,
		ChangeType: model.ChangeTypeAdd,
		Record:     model.RecordData{Address: address},
	}
}

func TestValidateInputAcceptsWellFormedAdd(t *testing.T) {
	result := ValidateInput(testCfg(), []model.ChangeInput{addA("www.example.com.", "1.2.3.4", 300)})

	require.True(t, result.Results[0].IsValid())
}

func TestValidateInputRejectsInvalidIPAddress(t *testing.T) {
	result := ValidateInput(testCfg(), []model.ChangeInput{addA("www.example.com.", "not-an-ip", 300)})

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidIPAddress, result.Results[0].Errors()[0].Type)
}

func TestValidateInputRejectsInvalidDomainName(t *testing.T) {
	result := ValidateInput(testCfg(), []model.ChangeInput{addA("not a domain", "1.2.3.4", 300)})

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidDomainName, result.Results[0].Errors()[0].Type)
}

func TestValidateInputRejectsTTLOutOfRange(t *testing.T) {
	result := ValidateInput(testCfg(), []model.ChangeInput{addA("www.example.com.", "1.2.3.4", 10)})

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidTTL, result.Results[0].Errors()[0].Type)
}

func TestValidateInputRequiresTTLOnAdd(t *testing.T) {
	c := model.ChangeInput{
		InputName:  "www.example.com.",
		Type:       model.RecordTypeA,
		ChangeType: model.ChangeTypeAdd,
		Record:     model.RecordData{Address: "1.2.3.4"},
	}
	result := ValidateInput(testCfg(), []model.ChangeInput{c})

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidInputField, result.Results[0].Errors()[0].Type)
}

func TestValidateInputDeleteDoesNotRequireTTLOrPayload(t *testing.T) {
	c := model.ChangeInput{
		InputName:  "www.example.com.",
		Type:       model.RecordTypeA,
		ChangeType: model.ChangeTypeDeleteRecordSet,
	}
	result := ValidateInput(testCfg(), []model.ChangeInput{c})

	assert.True(t, result.Results[0].IsValid())
}

func TestValidateInputRejectsUnknownChangeType(t *testing.T) {
	c := addA("www.example.com.", "1.2.3.4", 300)
	c.ChangeType = model.ChangeType("Bogus")
	result := ValidateInput(testCfg(), []model.ChangeInput{c})

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidInputField, result.Results[0].Errors()[0].Type)
}

func TestValidateInputPTRUsesAddressNotFQDNSyntax(t *testing.T) {
	ttl := 300
	c := model.ChangeInput{
		InputName:  "10.1.2.3",
		Type:       model.RecordTypePTR,
		TTL:        &ttl,
		ChangeType: model.ChangeTypeAdd,
		Record:     model.RecordData{PTRDName: "host.example.com."},
	}
	result := ValidateInput(testCfg(), []model.ChangeInput{c})

	assert.True(t, result.Results[0].IsValid())
}

// Scenario 5 (§8): a batch with two positions that share the same
// (name, type) Add is rejected with RecordNameNotUniqueInBatch attached
// to both positions, not just the second.
func TestCheckRecordNameNotUniqueInBatchFlagsBothPositions(t *testing.T) {
	batch := ValidateInput(testCfg(), []model.ChangeInput{
		addA("www.example.com.", "1.2.3.4", 300),
		addA("www.example.com.", "5.6.7.8", 300),
	})
	require.True(t, batch.IsValid())

	result := CheckRecordNameNotUniqueInBatch(batch)

	require.Len(t, result.Results, 2)
	for _, r := range result.Results {
		require.False(t, r.IsValid())
		assert.Equal(t, model.ErrRecordNameNotUniqueInBatch, r.Errors()[0].Type)
	}
}

func TestCheckRecordNameNotUniqueInBatchIgnoresDifferentTypes(t *testing.T) {
	ttl := 300
	cname := model.ChangeInput{
		InputName:  "www.example.com.",
		Type:       model.RecordTypeCNAME,
		TTL:        &ttl,
		ChangeType: model.ChangeTypeAdd,
		Record:     model.RecordData{CName: "other.example.com."},
	}
	batch := ValidateInput(testCfg(), []model.ChangeInput{
		addA("www.example.com.", "1.2.3.4", 300),
		cname,
	})
	require.True(t, batch.IsValid())

	result := CheckRecordNameNotUniqueInBatch(batch)

	for _, r := range result.Results {
		assert.True(t, r.IsValid())
	}
}

func TestCheckRecordNameNotUniqueInBatchIgnoresDeletes(t *testing.T) {
	del := model.ChangeInput{
		InputName:  "www.example.com.",
		Type:       model.RecordTypeA,
		ChangeType: model.ChangeTypeDeleteRecordSet,
	}
	batch := ValidateInput(testCfg(), []model.ChangeInput{
		addA("www.example.com.", "1.2.3.4", 300),
		del,
	})
	require.True(t, batch.IsValid())

	result := CheckRecordNameNotUniqueInBatch(batch)

	for _, r := range result.Results {
		assert.True(t, r.IsValid())
	}
}

func TestCheckRecordNameNotUniqueInBatchPreservesInvalidPositions(t *testing.T) {
	results := []model.ValidationResult[model.ChangeInput]{
		model.Invalid[model.ChangeInput](model.NewInvalidInputField("inputName", "bad")),
		model.Valid(addA("www.example.com.", "1.2.3.4", 300)),
	}
	batch := model.NewValidatedBatch(results)

	result := CheckRecordNameNotUniqueInBatch(batch)

	require.False(t, result.Results[0].IsValid())
	assert.Equal(t, model.ErrInvalidInputField, result.Results[0].Errors()[0].Type)
	assert.True(t, result.Results[1].IsValid())
}
