package planscmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

func TestParseEntitlement(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw     string
		want    persistence.Entitlement
		wantErr string
	}{
		{raw: "max_users=LIMIT:25", want: persistence.Entitlement{FeatureSlug: "max_users", Type: "LIMIT", Value: 25}},
		{raw: "records=meter:10000", want: persistence.Entitlement{FeatureSlug: "records", Type: "METER", Value: 10000}},
		{raw: "reports=FLAG", want: persistence.Entitlement{FeatureSlug: "reports", Type: "FLAG", Value: 1}},
		{raw: "reports=FLAG:0", want: persistence.Entitlement{FeatureSlug: "reports", Type: "FLAG", Value: 0}},
		{raw: "max_users", wantErr: "expected slug=TYPE:value"},
		{raw: "=LIMIT:3", wantErr: "expected slug=TYPE:value"},
		{raw: "max_users=QUOTA:3", wantErr: "type must be"},
		{raw: "records=METER", wantErr: "requires a value"},
		{raw: "records=METER:-5", wantErr: "non-negative"},
		{raw: "max_widgets=LIMIT:3", wantErr: "no counter is registered"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()

			got, err := parseEntitlement(tc.raw)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFormatEntitlements(t *testing.T) {
	t.Parallel()

	got := formatEntitlements([]persistence.Entitlement{
		{FeatureSlug: "max_users", Type: "LIMIT", Value: 5},
		{FeatureSlug: "records", Type: "METER", Value: 100},
	})
	require.Equal(t, "max_users=LIMIT:5,records=METER:100", got)
}
