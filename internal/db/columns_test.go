package db

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func TestUpdateNeverRewritesImmutableColumns(t *testing.T) {
	q := devicesTable.update()
	assert.True(t, strings.HasSuffix(q, "WHERE id = :id"))
	set := strings.TrimSuffix(q, " WHERE id = :id")
	assert.NotContains(t, set, "tenant_id =")
	assert.NotContains(t, set, "created_at =")
	assert.Contains(t, set, "updated_at = :updated_at")
}

func TestOptionalReferencesAreNull(t *testing.T) {
	row, err := zoneToRow(model.Zone{ID: "z", LayoutID: "l", MediaID: "m1"})
	require.NoError(t, err)
	assert.True(t, row.MediaID.Valid)
	assert.False(t, row.PlaylistID.Valid)
	assert.False(t, row.WidgetInstanceID.Valid)
	assert.JSONEq(t, `{}`, string(row.Settings))

	back, err := zoneFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "m1", back.MediaID)
	assert.Empty(t, back.PlaylistID)
	assert.Nil(t, back.Settings)
}

func TestTenantBrandingIsNested(t *testing.T) {
	row, err := tenantToRow(model.Tenant{
		ID:       "t1",
		Name:     "Acme",
		Branding: model.Branding{PrimaryColor: "#123456", FontFamily: "Inter"},
		Settings: model.JSON{"timezone": "UTC"},
	})
	require.NoError(t, err)
	assert.False(t, row.Domain.Valid)
	assert.JSONEq(t, `{"primaryColor":"#123456","fontFamily":"Inter"}`, string(row.Branding))

	back, err := tenantFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "Inter", back.Branding.FontFamily)
	assert.Equal(t, "UTC", back.Settings["timezone"])
}

func TestAuditTimestampMapsToCreatedAt(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row, err := auditLogToRow(model.AuditLog{ID: "a", TenantID: "t", Action: "login", Resource: "user", Timestamp: ts})
	require.NoError(t, err)
	assert.Equal(t, ts, row.CreatedAt)
	assert.False(t, row.UserID.Valid)
}
