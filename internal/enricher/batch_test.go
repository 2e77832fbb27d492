package enricher

import (
	"context"
	"fmt"
	"testing"

	"leadgrab/internal/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(n int) *records.ResultSet {
	rs := &records.ResultSet{}
	for i := 0; i < n; i++ {
		rs.Append(records.Record{
			BusinessName: fmt.Sprintf("Business %d", i),
			PhoneNumber:  records.PhoneNotAvailable,
		})
	}
	return rs
}

func TestBatchWritesBackInOrder(t *testing.T) {
	rs := setOf(3)

	b := &Batch{Lookup: func(_ context.Context, name string) string {
		return "contact@" + name[len(name)-1:] + ".example"
	}}
	saves := 0
	require.NoError(t, b.Run(context.Background(), rs, func() error {
		saves++
		return nil
	}))

	assert.True(t, rs.HasEmailColumn)
	assert.Equal(t, "contact@0.example", rs.Records[0].Email)
	assert.Equal(t, "contact@2.example", rs.Records[2].Email)
	// Fewer records than the cadence: only the final save fires.
	assert.Equal(t, 1, saves)
}

func TestBatchSkipsEnrichedRecordsWithoutLookups(t *testing.T) {
	rs := setOf(4)
	for i := range rs.Records {
		rs.Records[i].Email = fmt.Sprintf("done%d@biz.example", i)
	}

	lookups := 0
	b := &Batch{Lookup: func(_ context.Context, _ string) string {
		lookups++
		return records.EmailUnknown
	}}
	require.NoError(t, b.Run(context.Background(), rs, func() error { return nil }))

	// A fully enriched table incurs zero lookups and is left unchanged.
	assert.Zero(t, lookups)
	for i, r := range rs.Records {
		assert.Equal(t, fmt.Sprintf("done%d@biz.example", i), r.Email)
	}
}

func TestBatchSentinelRowsAreRetried(t *testing.T) {
	rs := setOf(2)
	rs.Records[0].Email = records.EmailUnknown
	rs.Records[1].Email = "kept@biz.example"

	lookups := 0
	b := &Batch{Lookup: func(_ context.Context, _ string) string {
		lookups++
		return "found@biz.example"
	}}
	require.NoError(t, b.Run(context.Background(), rs, func() error { return nil }))

	assert.Equal(t, 1, lookups)
	assert.Equal(t, "found@biz.example", rs.Records[0].Email)
	assert.Equal(t, "kept@biz.example", rs.Records[1].Email)
}

func TestBatchSaveCadence(t *testing.T) {
	rs := setOf(35)

	var savedAfter []int
	processed := 0
	b := &Batch{Lookup: func(_ context.Context, _ string) string {
		processed++
		return records.EmailUnknown
	}}
	require.NoError(t, b.Run(context.Background(), rs, func() error {
		savedAfter = append(savedAfter, processed)
		return nil
	}))

	assert.Equal(t, []int{10, 20, 30, 35}, savedAfter)
}

func TestBatchCancelledStillSaves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rs := setOf(5)
	saves := 0
	b := &Batch{Lookup: func(_ context.Context, _ string) string {
		return records.EmailUnknown
	}}
	err := b.Run(ctx, rs, func() error {
		saves++
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	// The unconditional final save still happens on interruption.
	assert.Equal(t, 1, saves)
}
