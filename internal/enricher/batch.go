package enricher

import (
	"context"
	"fmt"
	"os"

	"leadgrab/internal/records"
)

// saveEvery is the persistence cadence of the batch driver: an external
// interruption loses at most the last partial batch of this size.
const saveEvery = 10

// LookupFunc resolves a business name to an email or the sentinel.
type LookupFunc func(ctx context.Context, businessName string) string

// Batch iterates an existing result set and fills in missing emails.
type Batch struct {
	Lookup LookupFunc
}

// Run processes every record in order, writing outcomes back by position.
// Records that already carry a real email are skipped without any network
// activity, so re-running against a finished table is a no-op apart from
// the final save. The set is persisted every saveEvery processed records
// and unconditionally at the end, including on context cancellation.
func (b *Batch) Run(ctx context.Context, rs *records.ResultSet, save records.SaveFunc) error {
	rs.HasEmailColumn = true
	saver := records.NewCadenceSaver(saveEvery, save)
	total := rs.Len()

	var runErr error
	for i := range rs.Records {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "[enricher] interrupted after %d processed records\n", saver.Processed())
			runErr = err
			break
		}

		rec := &rs.Records[i]
		if rec.HasEmail() {
			fmt.Fprintf(os.Stderr, "[enricher] %d/%d: %s - already has email, skipping\n", i+1, total, rec.BusinessName)
			continue
		}

		fmt.Fprintf(os.Stderr, "[enricher] %d/%d: %s\n", i+1, total, rec.BusinessName)
		rec.Email = b.Lookup(ctx, rec.BusinessName)

		if err := saver.Tick(); err != nil {
			fmt.Fprintf(os.Stderr, "[enricher] interim save failed: %v\n", err)
		}
	}

	if err := saver.Flush(); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return runErr
}
