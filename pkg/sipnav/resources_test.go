package sipnav_test

import (
	"net/url"
	"testing"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestListOptions_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *sipnav.ListOptions
		expected url.Values
	}{
		{
			name:     "nil options default to external",
			opts:     nil,
			expected: url.Values{"external": []string{"1"}},
		},
		{
			name:     "zero options default to external",
			opts:     &sipnav.ListOptions{},
			expected: url.Values{"external": []string{"1"}},
		},
		{
			name: "explicit internal flag",
			opts: &sipnav.ListOptions{External: intPtr(0)},
			expected: url.Values{"external": []string{"0"}},
		},
		{
			name: "pagination and filters",
			opts: &sipnav.ListOptions{
				PerPage:        25,
				Page:           3,
				CompanyID:      17,
				PlatformFilter: []int{1, 4},
			},
			expected: url.Values{
				"external":        []string{"1"},
				"per_page":        []string{"25"},
				"page":            []string{"3"},
				"company_id":      []string{"17"},
				"platform_filter": []string{"1,4"},
			},
		},
		{
			name: "platform scoping",
			opts: &sipnav.ListOptions{PlatformID: 9},
			expected: url.Values{
				"external":    []string{"1"},
				"platform_id": []string{"9"},
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.opts.ToValues())
		})
	}
}

func TestCDRSearchOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := &sipnav.CDRSearchOptions{
		AccountID:   "204",
		SrcNumber:   "15551230001",
		DstNumber:   "15559870002",
		StartDate:   "2025-02-27 01:02:03",
		EndTime:     "2025-02-28 01:02:03",
		MinDuration: intPtr(0),
		Limit:       500,
	}

	values := opts.ToValues()
	assert.Equal(t, "204", values.Get("account_id"))
	assert.Equal(t, "15551230001", values.Get("src_number"))
	assert.Equal(t, "2025-02-27 01:02:03", values.Get("start_date"))
	assert.Equal(t, "0", values.Get("min_duration"))
	assert.Equal(t, "500", values.Get("limit"))
	assert.False(t, values.Has("max_duration"))
	assert.False(t, values.Has("carrier_id"))

	assert.Empty(t, (*sipnav.CDRSearchOptions)(nil).ToValues())
}

func TestRestrictionListOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := &sipnav.RestrictionListOptions{
		CarrierID: 3,
		PageToken: "tok-2",
	}

	values := opts.ToValues()
	assert.Equal(t, "100", values.Get("per_page"))
	assert.Equal(t, "tok-2", values.Get("page_token"))
	assert.Equal(t, "3", values.Get("carrier_id"))
	assert.False(t, values.Has("account_id"))
}

func TestRateDeckListOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := &sipnav.RateDeckListOptions{
		Local:     intPtr(1),
		Enabled:   intPtr(0),
		AccountID: 88,
	}

	values := opts.ToValues()
	assert.Equal(t, "1", values.Get("local"))
	assert.Equal(t, "0", values.Get("enabled"))
	assert.Equal(t, "88", values.Get("account_id"))
	assert.False(t, values.Has("carrier_id"))
}
