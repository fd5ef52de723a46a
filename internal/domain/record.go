package domain

// Record is an upstream record that can name itself for the audit trail.
type Record interface {
	Validator
	RecordID() string
}

func (r Restaurant) RecordID() string { return r.ID.String() }
func (b Branch) RecordID() string     { return b.ID.String() }
func (m MenuItem) RecordID() string   { return m.ID.String() }
func (r Recipe) RecordID() string     { return r.ID.String() }
func (p Permission) RecordID() string { return p.ID.String() }
func (r Role) RecordID() string       { return r.ID.String() }
func (u User) RecordID() string       { return u.ID.String() }
func (o Order) RecordID() string      { return o.ID.String() }
func (p Payment) RecordID() string    { return p.ID.String() }

// RecordID falls back to the key; some deployments address settings by key.
func (s Setting) RecordID() string {
	if !s.ID.IsZero() {
		return s.ID.String()
	}
	return s.Key
}
