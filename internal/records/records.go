// Package records holds the shared record table produced by the collector
// and enriched in place by the enricher.
package records

// Sentinel values distinct from the empty string. A field carrying one was
// looked for and not found; an empty field was never processed.
const (
	PhoneNotAvailable = "Not Available"
	EmailUnknown      = "NaN"
)

// Column headers, in the order the fields are first introduced.
const (
	ColBusinessName = "Business Name"
	ColPhoneNumber  = "Phone Number"
	ColEmail        = "Email"
)

// Record is one business listing. BusinessName is always non-empty;
// listings without a discoverable name are never recorded.
type Record struct {
	BusinessName string
	PhoneNumber  string
	Email        string
}

// HasPhone reports whether a real phone number was found.
func (r Record) HasPhone() bool {
	return r.PhoneNumber != "" && r.PhoneNumber != PhoneNotAvailable
}

// HasEmail reports whether a real email was found. Re-runs of the enricher
// skip records for which this is true.
func (r Record) HasEmail() bool {
	return r.Email != "" && r.Email != EmailUnknown
}

// ResultSet is an ordered, append-only sequence of records. Insertion order
// is discovery order and duplicates are kept: the same business appearing on
// two pages yields two records.
type ResultSet struct {
	Records []Record

	// HasEmailColumn tracks whether the persisted table carries the Email
	// column. It becomes true when a table that already has the column is
	// loaded, or once enrichment starts.
	HasEmailColumn bool
}

// Append adds a record at the end of the set.
func (rs *ResultSet) Append(r Record) {
	rs.Records = append(rs.Records, r)
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	return len(rs.Records)
}
