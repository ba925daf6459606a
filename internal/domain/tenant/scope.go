package tenant

// Scope is the authorization filter applied uniformly by the storage layer.
// Every read and write is scoped to the caller's tenant; the distinguished
// master tenant may read across tenants but never write outside its own.
type Scope struct {
	callerTenantID string
	master         bool
}

func NewScope(callerTenantID, masterTenantID string) Scope {
	return Scope{
		callerTenantID: callerTenantID,
		master:         masterTenantID != "" && callerTenantID == masterTenantID,
	}
}

// ForRead returns the tenant id to filter reads by. all is true only for the
// master tenant, in which case tenantID is empty and no filter applies.
func (s Scope) ForRead() (tenantID string, all bool) {
	if s.master {
		return "", true
	}
	return s.callerTenantID, false
}

// ForWrite returns the tenant id every write is attributed to. The master
// bypass never applies to writes.
func (s Scope) ForWrite() string {
	return s.callerTenantID
}

// TenantID returns the caller's own tenant id.
func (s Scope) TenantID() string {
	return s.callerTenantID
}
