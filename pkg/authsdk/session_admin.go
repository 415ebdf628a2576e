package authsdk

import (
	"context"
	"net/http"
)

// PlatformAuditTrail retrieves every recorded action on the platform, newest
// first. Requires the admin:view_all_audit_logs system permission, which only
// superadmins hold.
func (s *Session) PlatformAuditTrail(ctx context.Context, limit, offset int64) ([]AuditEntry, error) {
	path := "/v1/admin/audit" + auditQuery(limit, offset)

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var entries []AuditEntry
	if err := decodeJSON(resp, &entries, http.StatusOK); err != nil {
		return nil, err
	}

	return entries, nil
}
