package filter

import "encoding/json"

// TagSet is a multi-select set of tags. Membership is set semantics;
// iteration follows insertion order so the UI can echo selections back.
type TagSet struct {
	values []string
}

// NewTagSet builds a set from values, dropping duplicates and empty strings
func NewTagSet(values ...string) TagSet {
	var t TagSet
	for _, v := range values {
		t.Add(v)
	}
	return t
}

// Contains reports whether v is in the set
func (t TagSet) Contains(v string) bool {
	for _, x := range t.values {
		if x == v {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is selected. An empty set matches everything.
func (t TagSet) Empty() bool { return len(t.values) == 0 }

// Len returns the number of selected tags
func (t TagSet) Len() int { return len(t.values) }

// Values returns a copy of the selected tags in insertion order
func (t TagSet) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Matches reports whether v passes this filter dimension
func (t TagSet) Matches(v string) bool {
	return t.Empty() || t.Contains(v)
}

// Add inserts v if it is not already present
func (t *TagSet) Add(v string) {
	if v == "" || t.Contains(v) {
		return
	}
	t.values = append(t.values, v)
}

// Remove deletes v if present
func (t *TagSet) Remove(v string) {
	for i, x := range t.values {
		if x == v {
			t.values = append(t.values[:i:i], t.values[i+1:]...)
			return
		}
	}
}

// Toggle adds v when absent and removes it when present
func (t *TagSet) Toggle(v string) {
	if t.Contains(v) {
		t.Remove(v)
		return
	}
	t.Add(v)
}

// MarshalJSON encodes the set as a JSON array
func (t TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Values())
}

// UnmarshalJSON decodes a JSON array into the set
func (t *TagSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*t = NewTagSet(values...)
	return nil
}
