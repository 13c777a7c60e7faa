package model

// Record is a single product row keyed by column name.
// A missing key means the field was absent from the source; an empty string
// is a real (empty) value.
type Record map[string]string

// Well-known uStore helper columns carried through the pipeline.
const (
	ColProductID = "uStore_ProductID"
	ColStoreID   = "uStore_StoreID"
	ColStoreName = "uStore_StoreName"
)

// ID returns the source product identifier used for asset lookups and
// report correlation.
func (r Record) ID() string {
	return r[ColProductID]
}

// Get reports the field value and whether the field is present at all.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns an independent copy of the record. Stages never mutate
// their input records; they clone and write the copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RecordSet is an ordered sequence of records together with the ordered
// union of columns seen across them.
type RecordSet struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// NewRecordSet creates an empty record set with the given column layout.
func NewRecordSet(columns []string) *RecordSet {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RecordSet{Columns: cols, Records: make([]Record, 0)}
}

// HasColumn reports whether the column is part of the set's layout.
func (rs *RecordSet) HasColumn(name string) bool {
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends the column to the layout if it is not already there.
func (rs *RecordSet) EnsureColumn(name string) {
	if !rs.HasColumn(name) {
		rs.Columns = append(rs.Columns, name)
	}
}

// Append adds a record to the set.
func (rs *RecordSet) Append(rec Record) {
	rs.Records = append(rs.Records, rec)
}

// Len returns the number of records in the set.
func (rs *RecordSet) Len() int {
	return len(rs.Records)
}

// Truncate limits the set to the first n records, preserving order.
func (rs *RecordSet) Truncate(n int) {
	if n >= 0 && n < len(rs.Records) {
		rs.Records = rs.Records[:n]
	}
}
