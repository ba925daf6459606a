package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeForRead(t *testing.T) {
	t.Run("regular tenant reads are filtered", func(t *testing.T) {
		scope := NewScope("tenant-a", "master-tenant")
		tenantID, all := scope.ForRead()
		assert.False(t, all)
		assert.Equal(t, "tenant-a", tenantID)
	})

	t.Run("master tenant reads everything", func(t *testing.T) {
		scope := NewScope("master-tenant", "master-tenant")
		tenantID, all := scope.ForRead()
		assert.True(t, all)
		assert.Empty(t, tenantID)
	})

	t.Run("empty master config never grants bypass", func(t *testing.T) {
		scope := NewScope("", "")
		_, all := scope.ForRead()
		assert.False(t, all)
	})
}

func TestScopeForWrite(t *testing.T) {
	t.Run("writes stay in the caller tenant", func(t *testing.T) {
		scope := NewScope("tenant-a", "master-tenant")
		assert.Equal(t, "tenant-a", scope.ForWrite())
	})

	t.Run("master bypass does not apply to writes", func(t *testing.T) {
		scope := NewScope("master-tenant", "master-tenant")
		assert.Equal(t, "master-tenant", scope.ForWrite())
	})
}
