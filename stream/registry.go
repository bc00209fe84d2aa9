package stream

import "slices"

// Registry maps table names to the appliers that consume their streams.
type Registry struct {
	tables  []string
	byTable map[string]Applier
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tables:  []string{},
		byTable: make(map[string]Applier),
	}
}

// Register routes records from table to a.
// Registering a table again replaces its applier.
func (r *Registry) Register(table string, a Applier) {
	if _, ok := r.byTable[table]; !ok {
		r.tables = append(r.tables, table)
	}
	r.byTable[table] = a
}

// For returns the applier registered for table, or nil.
func (r *Registry) For(table string) Applier {
	return r.byTable[table]
}

// Tables returns a copy of the registered table names in registration order.
func (r *Registry) Tables() []string {
	return slices.Clone(r.tables)
}

// Has returns true if table has a registered applier.
func (r *Registry) Has(table string) bool {
	_, ok := r.byTable[table]
	return ok
}
